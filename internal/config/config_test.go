package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Equal(t, BackendRequest, cfg.BackendTimeout)
	assert.Equal(t, "KNOWLEDGE_BASE.md", cfg.KnowledgeBasePath)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.RateLimitEnabled())
	assert.Empty(t, cfg.CORSAllowOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvBackendURL, "http://backend:5000")
	t.Setenv(EnvBackendTimeout, "2s")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvCORSAllowOrigins, "http://localhost:3000, https://campus.example.edu")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://backend:5000", cfg.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000", "https://campus.example.edu"}, cfg.CORSAllowOrigins)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv(EnvBackendTimeout, "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRequest, cfg.BackendTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"missing backend URL", func(c *Config) { c.BackendURL = "" }, true},
		{"zero backend timeout", func(c *Config) { c.BackendTimeout = 0 }, true},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, true},
		{"negative rate burst", func(c *Config) { c.UserRateBurst = -1 }, true},
		{"sentry enabled without DSN", func(c *Config) { c.SentryEnabled = true }, true},
		{
			"sentry enabled with DSN",
			func(c *Config) { c.SentryEnabled = true; c.SentryDSN = "https://key@sentry.example/1" },
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateLimitEnabled(t *testing.T) {
	cfg := &Config{UserRateBurst: 0, UserRateRefill: 0.5}
	assert.False(t, cfg.RateLimitEnabled())

	cfg.UserRateBurst = 10
	assert.True(t, cfg.RateLimitEnabled())

	cfg.UserRateRefill = 0
	assert.False(t, cfg.RateLimitEnabled())
}
