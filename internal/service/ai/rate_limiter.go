package ai

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"tscat/internal/logger"
)

// DefaultRateLimit is the default number of provider requests per minute.
const DefaultRateLimit = 60

// RateLimiter spaces provider calls so that all suggestions together stay
// under a per-minute quota.
type RateLimiter struct {
	mu        sync.RWMutex
	limiter   *rate.Limiter
	perMinute int
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = DefaultRateLimit
	}
	return &RateLimiter{
		limiter:   rate.NewLimiter(every(perMinute), burst(perMinute)),
		perMinute: perMinute,
	}
}

func every(perMinute int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(perMinute))
}

// burst lets a tenth of the quota through at once, at least one request.
func burst(perMinute int) int {
	return max(1, perMinute/10)
}

// Wait blocks until the next request may be sent or ctx ends.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.RLock()
	limiter := r.limiter
	r.mu.RUnlock()

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		return err
	}
	if waited := time.Since(start); waited > time.Second {
		logger.Debug("ai request delayed", "module", "ai", "action", "wait", "resource", "suggestion", "result", "ok", "waited", waited)
	}
	return nil
}

func (r *RateLimiter) SetLimit(perMinute int) {
	if perMinute <= 0 {
		perMinute = DefaultRateLimit
	}
	r.mu.Lock()
	r.limiter.SetLimit(every(perMinute))
	r.limiter.SetBurst(burst(perMinute))
	r.perMinute = perMinute
	r.mu.Unlock()
	logger.Info("ai rate limit updated", "module", "ai", "action", "update", "resource", "suggestion", "result", "ok", "per_minute", perMinute)
}

// Limit returns the current requests-per-minute quota.
func (r *RateLimiter) Limit() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.perMinute
}
