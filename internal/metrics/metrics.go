// Package metrics exposes Prometheus instrumentation for the catalog store,
// the recommendation engine and the HTTP layer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogLoads counts catalog loads by where the data came from: store, memory or fallback.
	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "librero_catalog_loads_total",
			Help: "Total number of catalog loads by source",
		},
		[]string{"source"},
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "librero_catalog_load_duration_seconds",
			Help:    "Duration of catalog loads in seconds, fallbacks included",
			Buckets: prometheus.DefBuckets,
		},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "librero_recommendations_total",
			Help: "Total number of recommendation results by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "librero_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Catalog load sources.
const (
	SourceStore    = "store"
	SourceMemory   = "memory"
	SourceFallback = "fallback"
)

// RecordCatalogLoad records one catalog load.
func RecordCatalogLoad(source string, duration time.Duration) {
	CatalogLoads.WithLabelValues(source).Inc()
	CatalogLoadDuration.Observe(duration.Seconds())
}

// RecordRecommendation records one engine result.
func RecordRecommendation(outcome string) {
	Recommendations.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
