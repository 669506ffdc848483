// Package ratelimit implements a token bucket rate limiter with per-key
// tracking, used to throttle chat requests per user.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket. Tokens refill at refillRate per second up to
// burst capacity; each request consumes one token. Safe for concurrent use.
type Limiter struct {
	mu         sync.Mutex
	tokens     float64
	burst      float64
	refillRate float64
	lastRefill time.Time
}

// New creates a full bucket with the given burst capacity and refill rate
// in tokens per second.
func New(burst, refillRate float64) *Limiter {
	return &Limiter{
		tokens:     burst,
		burst:      burst,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// refill must be called with mu held.
func (l *Limiter) refill() {
	now := time.Now()
	l.tokens += now.Sub(l.lastRefill).Seconds() * l.refillRate
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.lastRefill = now
}

// Allow consumes one token if available. Non-blocking.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}

// Available returns the current token count.
func (l *Limiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens
}

// IsFull reports whether the bucket is back at capacity, meaning the key
// has been inactive long enough to be forgotten.
func (l *Limiter) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens >= l.burst
}
