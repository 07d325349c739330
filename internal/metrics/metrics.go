package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tracks outbound fetches to secret backends.
	SecretFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secret_fetches_total",
			Help: "Total number of secret backend fetches (by engine, region and status).",
		},
		[]string{"engine", "region", "status"},
	)

	// Measures duration of secret backend fetches.
	SecretFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "secret_fetch_duration_seconds",
			Help:    "Duration of secret backend fetches in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"engine", "region"},
	)

	ParseCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secret_parse_cache_hits_total",
			Help: "Number of keyed-mode lookups served from the parse cache.",
		},
		[]string{"engine"},
	)

	ParseCacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secret_parse_cache_misses_total",
			Help: "Number of keyed-mode lookups that required a backend fetch.",
		},
		[]string{"engine"},
	)
)

func IncFetch(engine, region, status string) {
	SecretFetchesTotal.WithLabelValues(engine, region, status).Inc()
}

// ObserveFetchDuration records the elapsed time of one backend fetch.
func ObserveFetchDuration(engine, region string, start time.Time) {
	SecretFetchDuration.WithLabelValues(engine, region).Observe(time.Since(start).Seconds())
}

func IncCacheHit(engine string)  { ParseCacheHitsTotal.WithLabelValues(engine).Inc() }
func IncCacheMiss(engine string) { ParseCacheMissesTotal.WithLabelValues(engine).Inc() }

func StartServer(addr string) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.ListenAndServe(addr, nil) //nolint:errcheck
	}()
}
