package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "mis_backend"

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of failed login attempts",
		},
	)

	// Row operation metrics
	RowOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_row_operations_total",
			Help: "Total number of MIS row operations",
		},
		[]string{"company", "operation"},
	)

	// Export metrics
	ExportsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_exports_total",
			Help: "Total number of export renders",
		},
		[]string{"company", "format"},
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_export_duration_seconds",
			Help:    "Duration of export renders in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// Audit outbox metrics
	OutboxPublishCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_outbox_publish_total",
			Help: "Total number of audit outbox publish results",
		},
		[]string{"result"},
	)
)

// TrackExport returns a function that records the duration of an export render
func TrackExport(format string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		ExportDuration.WithLabelValues(format).Observe(duration)
	}
}

// RecordRowOperation increments the counter for MIS row operations
func RecordRowOperation(company string, operation string) {
	RowOperationsCounter.WithLabelValues(company, operation).Inc()
}

// RecordExport increments the counter for export renders
func RecordExport(company string, format string) {
	ExportsCounter.WithLabelValues(company, format).Inc()
}
