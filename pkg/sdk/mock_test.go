package facetdex

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/facetdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/facetdex/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	queryFn       func(ctx context.Context, in searchuc.Input) (*searchuc.Output, error)
	passthroughFn func(ctx context.Context, raw request.Raw) (json.RawMessage, error)
}

func (m *mockSearchUC) Query(ctx context.Context, in searchuc.Input) (*searchuc.Output, error) {
	return m.queryFn(ctx, in)
}

func (m *mockSearchUC) Passthrough(ctx context.Context, raw request.Raw) (json.RawMessage, error) {
	return m.passthroughFn(ctx, raw)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(searchSvc searchUseCase, healthSvc healthUseCase) *Client {
	return &Client{
		searchSvc: searchSvc,
		healthSvc: healthSvc,
	}
}
