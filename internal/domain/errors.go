package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidSchema signals a card that fails validation.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrInvalidRequest signals search parameters that cannot be clamped into shape.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSearchFailed is the only error a search surfaces: every retrieval path failed.
	ErrSearchFailed = errors.New("search failed")
	// ErrStoreUnavailable signals that the card store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
