package ratelimit

import (
	"sync"
	"time"

	"github.com/smartcampus/campusai-go/internal/metrics"
)

// KeyedConfig configures a KeyedLimiter.
type KeyedConfig struct {
	// Name identifies this limiter in metrics labels.
	Name string

	Burst      float64
	RefillRate float64 // tokens per second

	// CleanupPeriod controls how often inactive buckets are dropped.
	CleanupPeriod time.Duration

	Metrics *metrics.Metrics
}

// KeyedLimiter maintains one token bucket per key and forgets buckets that
// have refilled to capacity. An empty key is never limited.
type KeyedLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*Limiter
	config  KeyedConfig
	stopCh  chan struct{}
	stop    sync.Once
}

// NewKeyedLimiter creates a per-key limiter and starts its cleanup loop.
// Call Stop when done.
func NewKeyedLimiter(cfg KeyedConfig) *KeyedLimiter {
	kl := &KeyedLimiter{
		buckets: make(map[string]*Limiter),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}
	go kl.cleanupLoop()
	return kl
}

// Allow reports whether a request for key may proceed, consuming a token
// when it does.
func (kl *KeyedLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	if kl.bucket(key).Allow() {
		return true
	}
	if kl.config.Metrics != nil {
		kl.config.Metrics.RecordRateLimiterDrop(kl.config.Name)
	}
	return false
}

// Available returns the token count for a key, or the burst capacity when
// the key has no bucket yet.
func (kl *KeyedLimiter) Available(key string) float64 {
	kl.mu.RLock()
	b, ok := kl.buckets[key]
	kl.mu.RUnlock()

	if !ok {
		return kl.config.Burst
	}
	return b.Available()
}

// ActiveCount returns the number of tracked keys.
func (kl *KeyedLimiter) ActiveCount() int {
	kl.mu.RLock()
	defer kl.mu.RUnlock()
	return len(kl.buckets)
}

func (kl *KeyedLimiter) bucket(key string) *Limiter {
	kl.mu.RLock()
	b, ok := kl.buckets[key]
	kl.mu.RUnlock()
	if ok {
		return b
	}

	kl.mu.Lock()
	defer kl.mu.Unlock()
	if b, ok = kl.buckets[key]; ok {
		return b
	}
	b = New(kl.config.Burst, kl.config.RefillRate)
	kl.buckets[key] = b
	return b
}

func (kl *KeyedLimiter) cleanupLoop() {
	ticker := time.NewTicker(kl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-kl.stopCh:
			return
		case <-ticker.C:
			kl.mu.Lock()
			for key, b := range kl.buckets {
				if b.IsFull() {
					delete(kl.buckets, key)
				}
			}
			active := len(kl.buckets)
			kl.mu.Unlock()

			if kl.config.Metrics != nil {
				kl.config.Metrics.SetRateLimiterUsers(active)
			}
		}
	}
}

// Stop terminates the cleanup loop. Safe to call multiple times.
func (kl *KeyedLimiter) Stop() {
	kl.stop.Do(func() {
		close(kl.stopCh)
	})
}
