package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BackendRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quantaroute_backend_requests_total",
		Help: "Backend calls by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	BackendDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quantaroute_backend_duration_ms",
		Help:    "Backend call duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"endpoint"})
	RouteCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quantaroute_route_cache_hits_total",
		Help: "Route response cache hits",
	})
	RouteCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quantaroute_route_cache_misses_total",
		Help: "Route response cache misses",
	})
	SimulatedRoutesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quantaroute_simulated_routes_total",
		Help: "Calculations that fell back to a simulated straight-line route",
	})
	StaleResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quantaroute_stale_results_total",
		Help: "Calculation results dropped because a newer calculation had started",
	})
	NormalizeWarningsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quantaroute_normalize_warnings_total",
		Help: "Data-shape warnings raised while normalizing backend responses",
	}, []string{"component"})
)

func init() {
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendDurationMs)
	prometheus.MustRegister(RouteCacheHitsTotal)
	prometheus.MustRegister(RouteCacheMissesTotal)
	prometheus.MustRegister(SimulatedRoutesTotal)
	prometheus.MustRegister(StaleResultsTotal)
	prometheus.MustRegister(NormalizeWarningsTotal)
}

// Handler serves the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
