package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/facetdex/internal/db"
	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	"github.com/kailas-cloud/facetdex/internal/domain/search/result"
	"github.com/kailas-cloud/facetdex/internal/metrics"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository against one index.
type Repo struct {
	store store
	index string
}

// New creates a search repository bound to index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Index returns the index name.
func (r *Repo) Index() string { return r.index }

// Search runs a scored query and decodes its typed aggregations.
func (r *Repo) Search(ctx context.Context, req request.Search) (*result.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	sr, err := r.do(ctx, metrics.KindQuery, &db.SearchQuery{Index: r.index, Body: body})
	if err != nil {
		return nil, err
	}

	resp, err := result.Parse(sr.Body, req.Aggs.Kinds())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchEngine, err)
	}
	return resp, nil
}

// Suggest runs a spelling-suggestion request.
func (r *Repo) Suggest(ctx context.Context, req request.Suggest) (*result.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode suggest request: %w", err)
	}

	sr, err := r.do(ctx, metrics.KindSuggest, &db.SearchQuery{Index: r.index, Body: body})
	if err != nil {
		return nil, err
	}

	resp, err := result.Parse(sr.Body, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchEngine, err)
	}
	return resp, nil
}

// Raw forwards a passthrough search and returns the engine response body verbatim.
func (r *Repo) Raw(ctx context.Context, raw request.Raw) (json.RawMessage, error) {
	from, size, explain := raw.From, raw.Size, raw.Explain
	q := &db.SearchQuery{
		Index:   r.index,
		Body:    raw.Body(),
		From:    &from,
		Size:    &size,
		Explain: &explain,
		Source:  raw.Source,
		Q:       raw.Q,
	}

	sr, err := r.do(ctx, metrics.KindPassthrough, q)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(sr.Body), nil
}

func (r *Repo) do(ctx context.Context, kind string, q *db.SearchQuery) (*db.SearchResult, error) {
	start := time.Now()
	sr, err := r.store.Search(ctx, q)
	metrics.ObserveEngineRequest(kind, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("search %s %s: %w: %w", kind, r.index, domain.ErrSearchEngine, err)
	}
	return sr, nil
}
