package facetdex

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kailas-cloud/facetdex/internal/domain/search/facet"
	"github.com/kailas-cloud/facetdex/internal/domain/search/order"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	"github.com/kailas-cloud/facetdex/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/facetdex/internal/usecase/search"
)

const defaultPassthroughSize = 10

// SearchService runs queries against the product index.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Query runs a faceted query.
func (s *SearchService) Query(ctx context.Context, opts QueryOptions) (res *QueryResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("query", start, err) }()

	filters, err := facet.Decode(opts.Filters)
	if err != nil {
		return nil, err
	}

	out, err := s.svc.Query(ctx, searchuc.Input{
		Query:   opts.Query,
		Filters: filters,
		Sort:    order.New(opts.Sort, order.Direction(opts.SortDir)),
	})
	if err != nil {
		return nil, err
	}
	return toQueryResult(out), nil
}

// Passthrough forwards a raw search and returns the engine response body.
func (s *SearchService) Passthrough(ctx context.Context, req PassthroughRequest) (body json.RawMessage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("passthrough", start, err) }()

	size := defaultPassthroughSize
	if req.Size != nil {
		size = *req.Size
	}
	return s.svc.Passthrough(ctx, request.Raw{
		From:    req.From,
		Size:    size,
		Explain: req.Explain,
		Source:  req.Source,
		Query:   req.Query,
		Q:       req.Q,
	})
}

func toQueryResult(out *searchuc.Output) *QueryResult {
	resp := out.Response
	res := &QueryResult{
		Query:          out.Query,
		Sort:           out.Sort.Field(),
		SortDir:        SortDirection(out.Sort.Direction()),
		Total:          resp.Hits.Total.Value,
		Hits:           make([]Hit, 0, len(resp.Hits.Hits)),
		DisplayFilters: out.DisplayFilters,
		AppliedFilters: out.AppliedFilters.Encode(),
		Raw:            resp.Raw(),
	}
	for _, h := range resp.Hits.Hits {
		res.Hits = append(res.Hits, Hit{
			ID:        h.ID,
			Score:     h.Score,
			Source:    h.Source,
			Highlight: h.Highlight,
		})
	}

	if r, ok := resp.Aggregations[searchuc.AggPrice].(result.RangeResult); ok {
		for _, b := range r.Buckets {
			res.PriceRanges = append(res.PriceRanges, RangeBucket(b))
		}
	}
	if t, ok := resp.Aggregations[searchuc.AggDepartment].(result.TermsResult); ok {
		for _, b := range t.Buckets {
			res.Departments = append(res.Departments, TermsBucket(b))
		}
	}
	if m, ok := resp.Aggregations[searchuc.AggMissingImages].(result.MissingResult); ok {
		res.MissingImages = m.DocCount
	}

	for _, u := range out.Unsupported {
		res.Unsupported = append(res.Unsupported, UnsupportedFacet{Name: u.Name, Type: string(u.Type)})
	}
	for _, o := range out.Suggestions {
		res.Suggestions = append(res.Suggestions, Suggestion(o))
	}
	return res
}
