package facetdex

import "github.com/kailas-cloud/facetdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest   = domain.ErrInvalidRequest
	ErrSearchEngine     = domain.ErrSearchEngine
	ErrUnsupportedFacet = domain.ErrUnsupportedFacet
)
