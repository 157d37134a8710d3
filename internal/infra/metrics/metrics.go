package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Total number of accepted contact form submissions",
		},
		[]string{"channel"},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_validation_failures_total",
			Help: "Total number of rejected submissions by field",
		},
		[]string{"field"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of email notifications attempted",
		},
		[]string{"kind", "status"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the submission rate limit",
		},
	)

	quickCalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quick_call_requests_total",
			Help: "Total number of accepted quick call requests",
		},
	)
)

func ConnectionOpened() { activeConnections.Inc() }
func ConnectionClosed() { activeConnections.Dec() }

func ObserveHTTPRequest(method, path, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordLeadSubmitted counts an accepted lead; channel is "form" or "api".
func RecordLeadSubmitted(channel string) {
	leadsSubmitted.WithLabelValues(channel).Inc()
}

func RecordValidationFailure(field string) {
	validationFailures.WithLabelValues(field).Inc()
}

func RecordNotification(kind string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	notifications.WithLabelValues(kind, status).Inc()
}

func RecordRateLimited() {
	rateLimited.Inc()
}

func RecordQuickCall() {
	quickCalls.Inc()
}
