package search

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/domain/search/facet"
	"github.com/kailas-cloud/facetdex/internal/domain/search/order"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	"github.com/kailas-cloud/facetdex/internal/domain/search/result"
	"github.com/kailas-cloud/facetdex/internal/logger"
	"github.com/kailas-cloud/facetdex/internal/metrics"
)

// Input is one end-user query. Facets are resolved only when non-empty.
// Filters, when set, are already decoded facets and take precedence over
// Facets and Params.
type Input struct {
	Query   string
	Facets  []string
	Params  facet.Params
	Filters []facet.Param
	Sort    order.Spec
}

// Output is everything needed to render a result page.
type Output struct {
	Query          string
	Sort           order.Spec
	Response       *result.Response
	DisplayFilters []string
	AppliedFilters facet.Fragment
	Unsupported    []*facet.UnsupportedFacet

	// Suggestions and SuggestResponse are set only when the query had no hits.
	Suggestions     []result.SuggestOption
	SuggestResponse *result.Response
}

// Service runs faceted queries and raw passthrough searches.
type Service struct {
	repo    Repository
	builder *Builder
}

// New creates a search service.
func New(repo Repository, builder *Builder) *Service {
	if builder == nil {
		builder = NewBuilder()
	}
	return &Service{repo: repo, builder: builder}
}

// Query resolves facets, searches, and on zero hits asks once for spelling suggestions.
func (s *Service) Query(ctx context.Context, in Input) (*Output, error) {
	plan := s.builder.Prepare(in)
	log := logger.FromContext(ctx)

	for _, u := range plan.Resolution.Unsupported {
		log.Warn("unsupported facet type",
			zap.String("facet", u.Name),
			zap.String("type", string(u.Type)),
		)
		metrics.UnsupportedFacetsTotal.Inc()
	}

	resp, err := s.repo.Search(ctx, plan.Request)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	out := &Output{
		Query:          plan.Query,
		Sort:           plan.Sort,
		Response:       resp,
		DisplayFilters: plan.Resolution.Display,
		AppliedFilters: plan.Resolution.Applied,
		Unsupported:    plan.Resolution.Unsupported,
	}
	if resp.HitCount() > 0 {
		return out, nil
	}

	metrics.SuggestFallbacksTotal.Inc()
	suggest, err := s.repo.Suggest(ctx, s.builder.BuildSuggestion(plan.Query))
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	out.SuggestResponse = suggest
	out.Suggestions = suggest.SuggestionOptions(request.SuggestionName)

	log.Debug("zero hits, suggestions fetched",
		zap.String("query", plan.Query),
		zap.Int("suggestions", len(out.Suggestions)),
	)
	return out, nil
}

// Passthrough forwards a raw search to the engine unmodified.
func (s *Service) Passthrough(ctx context.Context, raw request.Raw) (json.RawMessage, error) {
	body, err := s.repo.Raw(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("passthrough: %w", err)
	}
	return body, nil
}
