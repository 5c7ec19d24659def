package docstore

import "errors"

// Sentinel errors returned by [Store]. The HTTP surface maps each of them to
// a status code and a stream error code.
var (
	ErrNotFound         = errors.New("document not found")
	ErrUnauthenticated  = errors.New("request is not authenticated")
	ErrPermissionDenied = errors.New("missing or insufficient permissions")
	ErrIndexRequired    = errors.New("the query requires an index")
	ErrInvalidWrite     = errors.New("invalid write")
	ErrInvalidIndex     = errors.New("invalid index definition")
	ErrStoreClosed      = errors.New("store is closed")
)
