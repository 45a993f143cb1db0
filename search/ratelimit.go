package search

import (
	"context"
	"sync"

	"github.com/fwojciec/snapsearch"
	"golang.org/x/time/rate"
)

var _ snapsearch.Limiter = (*RegionLimiter)(nil)

// RegionLimiter paces page requests with one token bucket per region.
// It only spaces requests out; a page is still fetched exactly once.
type RegionLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewRegionLimiter creates a RegionLimiter allowing rps requests per second
// for each region, with no bursting.
func NewRegionLimiter(rps float64) *RegionLimiter {
	return &RegionLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the region's bucket allows another request.
func (l *RegionLimiter) Wait(ctx context.Context, region string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[region]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[region] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
