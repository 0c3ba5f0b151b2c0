package search

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	"github.com/kailas-cloud/facetdex/internal/domain/search/result"
)

// Repository defines the engine contract for search operations.
type Repository interface {
	Search(ctx context.Context, req request.Search) (*result.Response, error)
	Suggest(ctx context.Context, req request.Suggest) (*result.Response, error)
	Raw(ctx context.Context, raw request.Raw) (json.RawMessage, error)
}
