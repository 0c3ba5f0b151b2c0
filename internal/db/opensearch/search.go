package opensearch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/db"
)

// Search runs POST /<index>/_search with the query body and URL parameters.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	req := opensearchapi.SearchRequest{
		Index:   []string{q.Index},
		From:    q.From,
		Size:    q.Size,
		Explain: q.Explain,
		Source:  q.Source,
		Query:   q.Q,
	}
	if len(q.Body) > 0 {
		req.Body = bytes.NewReader(q.Body)
	}

	start := time.Now()
	res, err := req.Do(ctx, s.client)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Warn("search request failed",
			zap.String("index", q.Index),
			zap.Int64("elapsed_ms", elapsed.Milliseconds()),
			zap.Error(err),
		)
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("read body: %w", err)}
	}

	if res.IsError() {
		s.logger.Warn("search engine error response",
			zap.String("index", q.Index),
			zap.Int("status", res.StatusCode),
			zap.Int64("elapsed_ms", elapsed.Milliseconds()),
		)
		return nil, &db.Error{Op: db.OpSearch, Err: &db.ResponseError{Status: res.StatusCode, Body: body}}
	}

	s.logger.Debug("search request",
		zap.String("index", q.Index),
		zap.Int("status", res.StatusCode),
		zap.Int64("elapsed_ms", elapsed.Milliseconds()),
	)
	return &db.SearchResult{Status: res.StatusCode, Body: body, Took: elapsed}, nil
}
