package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Catalog cache lookups by outcome
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Catalog cache lookups partitioned by outcome",
		},
		[]string{"result"}, // result: hit, miss
	)

	// Requests rejected by admission control
	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Project store query latency (seconds)
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Project store query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)

	// Contact email deliveries by outcome
	ContactSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_sends_total",
			Help: "Contact email delivery attempts partitioned by outcome",
		},
		[]string{"status"}, // status: success, failed
	)
)

// RecordHTTPRequestDuration records one served HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementCacheLookup counts one cache hit or miss.
func IncrementCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}

// IncrementRateLimited counts one rejected request.
func IncrementRateLimited() {
	RateLimitedRequests.Inc()
}

// RecordStoreQueryDuration records one project store round-trip.
func RecordStoreQueryDuration(operation string, duration time.Duration) {
	StoreQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncrementContactSend counts one contact delivery attempt.
func IncrementContactSend(status string) {
	ContactSends.WithLabelValues(status).Inc()
}
