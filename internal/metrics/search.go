package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine Prometheus metrics.
var (
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_requests_total",
			Help:      "Total number of search engine requests",
		},
		[]string{"kind", "status"},
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	SuggestFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggest_fallbacks_total",
			Help:      "Total number of zero-hit queries answered with spelling suggestions",
		},
	)

	// UnsupportedFacetsTotal carries no type label: facet types come from
	// request parameters.
	UnsupportedFacetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unsupported_facets_total",
			Help:      "Total facets skipped because of an unsupported type",
		},
	)
)

// Engine request kinds.
const (
	KindQuery       = "query"
	KindSuggest     = "suggest"
	KindPassthrough = "passthrough"
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineRequestsTotal)
	prometheus.MustRegister(EngineRequestDuration)
	prometheus.MustRegister(SuggestFallbacksTotal)
	prometheus.MustRegister(UnsupportedFacetsTotal)
	searchMetricsRegistered = true
}

// ObserveEngineRequest records one engine call of the given kind.
func ObserveEngineRequest(kind string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	EngineRequestsTotal.WithLabelValues(kind, status).Inc()
	EngineRequestDuration.WithLabelValues(kind).Observe(seconds)
}
