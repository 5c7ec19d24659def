package store

import "errors"

// Low-level database operation errors returned (wrapped) by the SQLite cache.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the cache fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT/UPSERT fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when a cache row cannot be scanned.
	ErrScanningRow = errors.New("failed to scan cache row")
)
