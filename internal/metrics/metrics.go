package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockhub_cache_hits_total",
			Help: "Cache hits by store",
		},
		[]string{"store"},
	)

	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockhub_cache_misses_total",
			Help: "Cache misses by store",
		},
		[]string{"store"},
	)

	cacheEvictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockhub_cache_evictions_total",
			Help: "Least-recently-used evictions by store",
		},
		[]string{"store"},
	)

	providerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockhub_provider_requests_total",
			Help: "Market data provider requests by outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	forecastRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockhub_forecast_runs_total",
			Help: "Forecast pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	forecastDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockhub_forecast_duration_seconds",
			Help:    "End-to-end forecast pipeline latency",
			Buckets: prometheus.DefBuckets,
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockhub_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		cacheHits,
		cacheMisses,
		cacheEvictions,
		providerRequests,
		forecastRuns,
		forecastDuration,
		httpRequests,
	)
}

func RecordCacheHit(store string)      { cacheHits.WithLabelValues(store).Inc() }
func RecordCacheMiss(store string)     { cacheMisses.WithLabelValues(store).Inc() }
func RecordCacheEviction(store string) { cacheEvictions.WithLabelValues(store).Inc() }

func RecordProviderRequest(endpoint, outcome string) {
	providerRequests.WithLabelValues(endpoint, outcome).Inc()
}

func RecordForecastRun(outcome string, seconds float64) {
	forecastRuns.WithLabelValues(outcome).Inc()
	forecastDuration.Observe(seconds)
}

func RecordHTTPRequest(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}
