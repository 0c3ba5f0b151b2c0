package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/search/facet"
	"github.com/kailas-cloud/facetdex/internal/domain/search/order"
	"github.com/kailas-cloud/facetdex/internal/logger"
	healthuc "github.com/kailas-cloud/facetdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/facetdex/internal/usecase/search"
)

const maxBodyBytes = 1 << 20

// Passthrough window defaults when the body omits them.
const (
	defaultRawFrom = 0
	defaultRawSize = 10
)

// ErrorResponseCode is the machine-readable error code in error bodies.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeSearchEngineError ErrorResponseCode = "search_engine_error"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search HTTP API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeBadRequest),
		sentinelHandler(domain.ErrSearchEngine, http.StatusBadGateway, ErrorResponseCodeSearchEngineError),
	}
	return s
}

// Routes mounts all endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Route("/search", func(r chi.Router) {
		r.Get("/query", s.QueryRead)
		r.Post("/query", s.QuerySubmit)
		r.Post("/quepid", s.Quepid)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// QueryRead handles GET /search/query: a query with optional facets, as
// produced by facet and pagination links.
func (s *Server) QueryRead(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var (
		query, sort, sortDir string
		facets               []string
	)
	binds := []struct {
		name string
		dest any
	}{
		{"query", &query},
		{"sort", &sort},
		{"sortDir", &sortDir},
		{facet.NameKey, &facets},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, params, b.dest); err != nil {
			s.handleDomainError(w, fmt.Errorf("%w: parameter %s: %w", domain.ErrInvalidRequest, b.name, err))
			return
		}
	}

	s.runQuery(w, r, searchuc.Input{
		Query:  query,
		Facets: facets,
		Params: facet.Values(params),
		Sort:   order.New(sort, order.Direction(sortDir)),
	})
}

// QuerySubmit handles POST /search/query from the search box. Facets are not applied.
func (s *Server) QuerySubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.handleDomainError(w, fmt.Errorf("%w: form: %w", domain.ErrInvalidRequest, err))
		return
	}

	s.runQuery(w, r, searchuc.Input{
		Query: r.PostForm.Get("query"),
		Sort:  order.New(r.PostForm.Get("sort"), order.Direction(r.PostForm.Get("sortDir"))),
	})
}

func (s *Server) runQuery(w http.ResponseWriter, r *http.Request, in searchuc.Input) {
	ctx := logger.With(r.Context(), zap.String("query", in.Query), zap.Int("facets", len(in.Facets)))

	out, err := s.search.Query(ctx, in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponseFrom(out))
}

// Quepid handles POST /search/quepid: a raw passthrough search.
func (s *Server) Quepid(w http.ResponseWriter, r *http.Request) {
	var req quepidRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.handleDomainError(w, fmt.Errorf("%w: body: %w", domain.ErrInvalidRequest, err))
		return
	}

	raw, err := req.toRaw()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	body, err := s.search.Passthrough(r.Context(), raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client message without exposing internals.
// Invalid-request errors describe the caller's own input and are returned in full.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	if errors.Is(err, domain.ErrSearchEngine) {
		return domain.ErrSearchEngine.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

// sourceFields decodes _source given as a list, a comma-separated string, or a boolean.
func sourceFields(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "true" || trimmed == "false" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var csv string
	if err := json.Unmarshal(raw, &csv); err != nil {
		return nil, fmt.Errorf("%w: _source must be a list or a string", domain.ErrInvalidRequest)
	}
	if csv == "" {
		return nil, nil
	}
	return strings.Split(csv, ","), nil
}
