package ai

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"traductor/backend/internal/logger"
)

// DefaultRateLimit is the default QPS limit.
const DefaultRateLimit = 10

// RateLimiter caps the rate of provider calls across all concurrent requests.
// It only delays calls; it never retries them.
type RateLimiter struct {
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// NewRateLimiter creates a new rate limiter with the given QPS.
// A negative qps disables limiting; zero selects DefaultRateLimit.
func NewRateLimiter(qps int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(limitFor(qps))}
}

func limitFor(qps int) (rate.Limit, int) {
	switch {
	case qps < 0:
		return rate.Inf, 0
	case qps == 0:
		return rate.Limit(DefaultRateLimit), DefaultRateLimit
	default:
		return rate.Limit(qps), qps // burst = qps
	}
}

// Wait blocks until a token is available or context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.RLock()
	limiter := r.limiter
	r.mu.RUnlock()
	return limiter.Wait(ctx)
}

// SetLimit updates the rate limit dynamically.
func (r *RateLimiter) SetLimit(qps int) {
	limit, burst := limitFor(qps)
	r.mu.Lock()
	r.limiter.SetLimit(limit)
	r.limiter.SetBurst(burst)
	r.mu.Unlock()
	logger.Info("ai rate limit updated", "module", "ai", "action", "update", "resource", "ai", "result", "ok", "qps", qps)
}

// Limit returns the current rate limit in requests per second.
func (r *RateLimiter) Limit() rate.Limit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.limiter.Limit()
}
