package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_stats_requests_total",
		Help: "Stats API requests by period and response status.",
	}, []string{"period", "status"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_stats_cache_hits_total",
		Help: "Stats served from the preload cache.",
	}, []string{"period"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_stats_cache_misses_total",
		Help: "Cache lookups that fell back to on-demand aggregation.",
	}, []string{"period"})

	PreloadRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_stats_preload_runs_total",
		Help: "Completed preload job invocations.",
	})

	PreloadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_stats_preload_failures_total",
		Help: "Preload failures by period.",
	}, []string{"period"})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
