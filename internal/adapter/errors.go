package adapter

import "errors"

// Sentinel errors returned (wrapped) by [RemoteGateway] implementations.
var (
	// ErrNetworkFailure covers transport failures and gateway statuses
	// (502, 503, 504) as well as push streams that end unexpectedly.
	ErrNetworkFailure = errors.New("network failure")
	// ErrUnauthorized is returned on 401/403 and permission-denied frames.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrQueryUnsupported is returned when the store cannot serve the
	// requested ordering (412, or an error that mentions a missing index).
	ErrQueryUnsupported = errors.New("query unsupported by the store")
	// ErrNotFound is returned on 404.
	ErrNotFound = errors.New("document not found")
	// ErrBadRequest is returned on 400.
	ErrBadRequest = errors.New("bad request")
	// ErrInternalServerError is returned on 500.
	ErrInternalServerError = errors.New("internal server error")
	// ErrStream is returned for stream error frames with an unknown code.
	ErrStream = errors.New("subscription error")
	// ErrDecode is returned by the decode step for documents with missing
	// or mistyped fields.
	ErrDecode = errors.New("malformed document")
)
