package types

import "errors"

// Standard errors returned by the store. Callers match with errors.Is.
var (
	// ErrNotFound reports that a point lookup matched no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate reports a unique-constraint violation, e.g. inserting a
	// product whose SKU already exists.
	ErrDuplicate = errors.New("duplicate")

	// ErrReferenced reports that a row cannot be deleted because other rows
	// still reference it.
	ErrReferenced = errors.New("still referenced")

	// ErrUnknownTable reports an operation against a table the store does
	// not own.
	ErrUnknownTable = errors.New("unknown table")

	// ErrNoUploader reports that a remote upload was requested but no
	// Uploader was configured at construction.
	ErrNoUploader = errors.New("no uploader configured")
)

// Config validation errors.
var (
	ErrPathEmpty        = errors.New("database path must not be empty")
	ErrTTLInvalid       = errors.New("default TTL must be positive")
	ErrCacheSizeInvalid = errors.New("max cache entries must be positive")
)
