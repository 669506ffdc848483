// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the campus backend gateway, and optional observability
// integrations.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Campus Backend Configuration
	BackendURL     string        // Base URL of the campus data service
	BackendTimeout time.Duration // Per-request timeout, no retries

	// Knowledge Base Configuration
	KnowledgeBasePath string // Path to the reference document; embedded fallback used when unreadable

	// Chat Rate Limits (Token Bucket Algorithm)
	UserRateBurst  float64 // Maximum burst tokens per user (0 = limiter disabled)
	UserRateRefill float64 // Tokens refilled per second

	// CORS
	CORSAllowOrigins []string // Allowed origins; empty = allow all

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Sentry Configuration
	SentryEnabled     bool
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables.
// It attempts to load .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "8000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 10*time.Second),

		BackendURL:     getEnv(EnvBackendURL, "http://localhost:5000"),
		BackendTimeout: getDurationEnv(EnvBackendTimeout, BackendRequest),

		KnowledgeBasePath: getEnv(EnvKnowledgeBasePath, "KNOWLEDGE_BASE.md"),

		UserRateBurst:  getFloatEnv(EnvUserRateBurst, 20),
		UserRateRefill: getFloatEnv(EnvUserRateRefill, 0.5),

		CORSAllowOrigins: splitNonEmpty(getEnv(EnvCORSAllowOrigins, "")),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		SentryEnabled:     getBoolEnv(EnvSentryEnabled, false),
		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.BackendURL == "" {
		errs = append(errs, errors.New("backend URL is required"))
	} else if _, err := url.Parse(c.BackendURL); err != nil {
		errs = append(errs, fmt.Errorf("backend URL is invalid: %w", err))
	}
	if c.BackendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("backend timeout must be positive, got %v", c.BackendTimeout))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout))
	}
	if c.UserRateBurst < 0 {
		errs = append(errs, fmt.Errorf("user rate burst cannot be negative, got %v", c.UserRateBurst))
	}
	if c.SentryEnabled && c.SentryDSN == "" {
		errs = append(errs, errors.New("sentry DSN is required when sentry is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RateLimitEnabled reports whether the per-user chat limiter is active.
func (c *Config) RateLimitEnabled() bool {
	return c.UserRateBurst > 0 && c.UserRateRefill > 0
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// splitNonEmpty splits a comma-separated list, dropping empty entries.
func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
