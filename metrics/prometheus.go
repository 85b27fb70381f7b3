package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	remoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_requests_total",
			Help: "Total number of requests issued to the remote resource API.",
		},
		[]string{"method", "endpoint", "status"},
	)
	remoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_request_duration_seconds",
			Help:    "Histogram of remote request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	catalogSyncsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_syncs_total",
			Help: "Total number of catalog sync runs by outcome.",
		},
		[]string{"outcome"},
	)
	assetCleanupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_cleanup_failures_total",
			Help: "Disposable resources left behind after a failed cleanup delete.",
		},
	)
)

func init() {
	prometheus.MustRegister(remoteRequestsTotal)
	prometheus.MustRegister(remoteRequestDuration)
	prometheus.MustRegister(catalogSyncsTotal)
	prometheus.MustRegister(assetCleanupFailuresTotal)
}

// RecordRequest records metrics for a single remote API request.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	remoteRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	remoteRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordSync records the outcome of one catalog sync run ("ok", "empty", "error").
func RecordSync(outcome string) {
	catalogSyncsTotal.WithLabelValues(outcome).Inc()
}

// RecordAssetCleanupFailure counts a disposable resource the uploader
// failed to delete. The failure itself is never propagated.
func RecordAssetCleanupFailure() {
	assetCleanupFailuresTotal.Inc()
}

func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler returns the HTTP handler exporting Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
