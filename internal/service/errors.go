package service

import "errors"

var (
	// ErrUnauthorized is returned when the caller lacks the capability a
	// mutation needs, or when the store rejected the caller.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrQueryUnsupported means the store cannot serve the preferred
	// ordering for a query.
	ErrQueryUnsupported = errors.New("query unsupported")
	// ErrNetworkFailure wraps any I/O level failure talking to the store.
	ErrNetworkFailure = errors.New("network failure")
	// ErrSyncFailure marks a read path failure the engine recovered from by
	// degrading: push subscription errors and failed ordered-query fallbacks.
	ErrSyncFailure = errors.New("sync failure")

	ErrOffline        = errors.New("you are offline")
	ErrNotFound       = errors.New("not found")
	ErrDecode         = errors.New("malformed document")
	ErrInvalidPost    = errors.New("invalid post")
	ErrInvalidComment = errors.New("invalid comment")

	ErrEngineNotStarted = errors.New("sync engine is not started")
	ErrEngineClosed     = errors.New("sync engine is closed")
)
