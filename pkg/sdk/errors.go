package cardex

import "github.com/kailas-cloud/cardex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrInvalidSchema  = domain.ErrInvalidSchema
	ErrInvalidRequest = domain.ErrInvalidRequest
	ErrSearchFailed   = domain.ErrSearchFailed
)
