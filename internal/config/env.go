// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "CAMPUSAI_PORT"
	EnvLogLevel        = "CAMPUSAI_LOG_LEVEL"
	EnvShutdownTimeout = "CAMPUSAI_SHUTDOWN_TIMEOUT"

	// Campus backend
	EnvBackendURL     = "CAMPUSAI_BACKEND_URL"
	EnvBackendTimeout = "CAMPUSAI_BACKEND_TIMEOUT"

	// Knowledge base
	EnvKnowledgeBasePath = "CAMPUSAI_KNOWLEDGE_BASE_PATH"

	// Rate Limits
	EnvUserRateBurst  = "CAMPUSAI_USER_RATE_BURST"
	EnvUserRateRefill = "CAMPUSAI_USER_RATE_REFILL"

	// CORS
	EnvCORSAllowOrigins = "CAMPUSAI_CORS_ALLOW_ORIGINS"

	// Metrics Basic Auth
	EnvMetricsUsername = "CAMPUSAI_METRICS_USERNAME"
	EnvMetricsPassword = "CAMPUSAI_METRICS_PASSWORD"

	// Sentry Feature
	EnvSentryEnabled     = "CAMPUSAI_SENTRY_ENABLED"
	EnvSentryDSN         = "CAMPUSAI_SENTRY_DSN"
	EnvSentryEnvironment = "CAMPUSAI_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "CAMPUSAI_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "CAMPUSAI_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "CAMPUSAI_BETTERSTACK_ENDPOINT"
)
