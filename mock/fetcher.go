package mock

import (
	"context"

	"github.com/fwojciec/snapsearch"
)

var _ snapsearch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of snapsearch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ snapsearch.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of snapsearch.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, key string) error
}

func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.WaitFn(ctx, key)
}
