package facetdex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/db"
	dbOpenSearch "github.com/kailas-cloud/facetdex/internal/db/opensearch"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	searchrepo "github.com/kailas-cloud/facetdex/internal/repository/search"
	healthuc "github.com/kailas-cloud/facetdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/facetdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultIndex            = "bbuy_products"
)

// Internal interfaces, replaced in tests.
type searchUseCase interface {
	Query(ctx context.Context, in searchuc.Input) (*searchuc.Output, error)
	Passthrough(ctx context.Context, raw request.Raw) (json.RawMessage, error)
}

// Client is the facetdex SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a facetdex Client and connects to the search engine.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{index: defaultIndex}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("facetdex: search engine address required (use WithOpenSearch)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbOpenSearch.NewStore(dbOpenSearch.Config{
		Addresses:          cfg.addrs,
		Username:           cfg.username,
		Password:           cfg.password,
		InsecureSkipVerify: cfg.insecureSkipVerify,
		Logger:             zap.NewNop(),
	})
	if err != nil {
		return nil, fmt.Errorf("facetdex: create opensearch store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("facetdex: search engine not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	builder := searchuc.NewBuilder().WithPageSize(cfg.pageSize)

	return &Client{
		store:     store,
		searchSvc: searchuc.New(searchrepo.New(store, cfg.index), builder),
		healthSvc: healthuc.New(store, 0),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks search engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}
