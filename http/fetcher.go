// Package http serves snapshot pages over HTTP: a snapsearch.Fetcher for
// remote snapshot sets and the search server with its host page.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/snapsearch"
)

// Ensure Fetcher implements snapsearch.Fetcher at compile time.
var _ snapsearch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves snapshot pages with plain GET requests. Every request
// asks intermediaries to bypass their caches and is attempted exactly once.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each request. By default there is no client-side
// timeout and a request waits until it resolves or ctx is done.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. Any non-2xx status returns ENOTFOUND;
// a request or body read that cannot complete returns EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "request failed for %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", snapsearch.Errorf(snapsearch.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "reading body of %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
