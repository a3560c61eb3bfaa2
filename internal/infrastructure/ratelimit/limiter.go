package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// IntervalPacer enforces a fixed minimum interval between permits using a
// token bucket with burst 1. The first Wait passes immediately; every
// later Wait blocks until the interval has elapsed since the previous
// permit or the context ends.
type IntervalPacer struct {
	limiter *rate.Limiter
}

func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	return &IntervalPacer{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the next permit is available.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
