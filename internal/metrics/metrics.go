// Package metrics provides Prometheus metrics for the assistant service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec

	// Gateway metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayDurationSeconds *prometheus.HistogramVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
	RateLimiterUsers   prometheus.Gauge

	// Singleflight metrics
	SingleflightDedupTotal *prometheus.CounterVec

	// Knowledge base metrics
	KnowledgeSnippetsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusai_chat_requests_total",
				Help: "Total number of chat requests by detected intent and caller role",
			},
			[]string{"intent", "role"},
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campusai_chat_duration_seconds",
				Help:    "Chat request processing duration in seconds by intent",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10}, // Bounded by backend timeout
			},
			[]string{"intent"},
		),

		GatewayRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusai_gateway_requests_total",
				Help: "Total number of campus backend queries by query and status",
			},
			[]string{"query", "status"}, // status: success, error, absent
		),

		GatewayDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campusai_gateway_duration_seconds",
				Help:    "Campus backend query duration in seconds by query",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5}, // Matches 5s backend timeout
			},
			[]string{"query"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusai_http_errors_total",
				Help: "Total number of HTTP errors by type and endpoint",
			},
			[]string{"type", "endpoint"}, // type: validation, rate_limited, internal
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusai_ratelimiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter"},
		),

		RateLimiterUsers: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "campusai_ratelimiter_active_users",
				Help: "Number of users with active rate limiter state",
			},
		),

		SingleflightDedupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusai_singleflight_dedup_total",
				Help: "Total number of backend queries deduplicated by singleflight",
			},
			[]string{"query"},
		),

		KnowledgeSnippetsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusai_knowledge_snippets_total",
				Help: "Total number of knowledge base snippet lookups by intent and outcome",
			},
			[]string{"intent", "outcome"}, // outcome: hit, miss
		),
	}
}

// RecordChat records a completed chat request.
func (m *Metrics) RecordChat(intent, role string, duration float64) {
	m.ChatRequestsTotal.WithLabelValues(intent, role).Inc()
	m.ChatDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordGatewayRequest records a campus backend query.
func (m *Metrics) RecordGatewayRequest(query, status string, duration float64) {
	m.GatewayRequestsTotal.WithLabelValues(query, status).Inc()
	m.GatewayDurationSeconds.WithLabelValues(query).Observe(duration)
}

// RecordHTTPError records an HTTP error.
func (m *Metrics) RecordHTTPError(errorType, endpoint string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordRateLimiterDrop records a request dropped due to rate limiting.
func (m *Metrics) RecordRateLimiterDrop(limiter string) {
	m.RateLimiterDropped.WithLabelValues(limiter).Inc()
}

// SetRateLimiterUsers updates the active rate limiter user count.
func (m *Metrics) SetRateLimiterUsers(count int) {
	m.RateLimiterUsers.Set(float64(count))
}

// RecordSingleflightDedup records a deduplicated backend query.
func (m *Metrics) RecordSingleflightDedup(query string) {
	m.SingleflightDedupTotal.WithLabelValues(query).Inc()
}

// RecordKnowledgeSnippet records a knowledge base snippet lookup.
func (m *Metrics) RecordKnowledgeSnippet(intent, outcome string) {
	m.KnowledgeSnippetsTotal.WithLabelValues(intent, outcome).Inc()
}
