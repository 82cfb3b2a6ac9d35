package ratelimit

import (
	"sync"
	"time"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"golang.org/x/time/rate"
)

// Limiter throttles actions per caller key
type Limiter interface {
	Allow(key string) bool
}

// InMemoryLimiter keeps one token bucket per key
type InMemoryLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(1, 5*time.Second, 3) -> one request every 5 seconds, bursts of 3
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	if requests <= 0 {
		requests = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &InMemoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Every(per / time.Duration(requests)),
		b:        burst,
	}
}

func NewFromConfig(cfg *config.Config) Limiter {
	return NewInMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Per, cfg.RateLimit.Burst)
}

// Allow reports whether key may act now and consumes a token if so
func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}

	return limiter.Allow()
}
