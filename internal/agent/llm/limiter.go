package llm

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

// NewLimiter builds the call budget shared by every model-backed adapter.
// A non-positive rate means unlimited.
func NewLimiter(cfg model.RateLimitConfig) *rate.Limiter {
	if cfg.PerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.PerSecond), burst)
}

func wait(ctx context.Context, l *rate.Limiter) error {
	if l == nil {
		return nil
	}
	return l.Wait(ctx)
}
