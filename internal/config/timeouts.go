// Package config provides centralized timeout constants for the application.
package config

import "time"

// Chat request timeouts
const (
	// ChatProcessing is the timeout for processing a single chat request.
	// This covers intent classification, one or two backend queries, and
	// response rendering. Backend queries are bounded separately by
	// BackendRequest, so one slow query cannot consume the whole budget.
	ChatProcessing = 15 * time.Second

	// HTTPRead is the HTTP server read timeout.
	// Chat payloads are small JSON bodies.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the HTTP server write timeout.
	// Should accommodate ChatProcessing + response serialization.
	HTTPWrite = 20 * time.Second

	// HTTPIdle is the HTTP server idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second
)

// Backend timeouts
const (
	// BackendRequest is the timeout for a single query to the campus data
	// service. Queries are read-only and never retried; a slow backend
	// degrades to the "data unavailable" reply path instead of blocking.
	BackendRequest = 5 * time.Second

	// ReadinessProbe is the timeout for the backend reachability check
	// performed by the /ready endpoint.
	ReadinessProbe = 3 * time.Second
)

// Rate limiter maintenance
const (
	// RateLimiterCleanupInterval controls how often inactive per-user
	// limiters are evicted.
	RateLimiterCleanupInterval = 5 * time.Minute
)
