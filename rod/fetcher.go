// Package rod fetches snapshot pages through a headless Chrome browser, for
// snapshot hosts that build their listing cards with client-side scripts.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/snapsearch"
	"github.com/go-rod/rod/lib/proto"
)

var _ snapsearch.Fetcher = (*Fetcher)(nil)

// navigationStatus reads the HTTP status of the document the tab loaded.
// Zero means the browser did not report one.
const navigationStatus = `() => {
	const nav = performance.getEntriesByType("navigation")[0];
	return nav && nav.responseStatus ? nav.responseStatus : 0;
}`

// Fetcher returns the rendered markup of snapshot pages. Safe for
// concurrent use.
type Fetcher struct {
	pool    *browserPool
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*options)

type options struct {
	timeout         time.Duration
	pagesPerBrowser int
}

// WithFetchTimeout bounds each page render. Renders are unbounded by
// default, like the HTTP fetcher.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithPagesPerBrowser sets how many pages a browser renders before it is
// replaced.
func WithPagesPerBrowser(n int) Option {
	return func(o *options) { o.pagesPerBrowser = n }
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	o := options{pagesPerBrowser: DefaultPagesPerBrowser}
	for _, opt := range opts {
		opt(&o)
	}

	pool, err := newBrowserPool(o.pagesPerBrowser, launchChrome)
	if err != nil {
		return nil, snapsearch.Errorf(snapsearch.EUNAVAILABLE, "%v", err)
	}
	return &Fetcher{pool: pool, timeout: o.timeout}, nil
}

// Fetch renders the page at url and returns its markup. A document served
// with status 400 or above returns ENOTFOUND; every other failure returns
// EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "rendering %s: %v", url, err)
	}

	inst, ok := f.pool.acquire()
	if !ok {
		return "", snapsearch.Errorf(snapsearch.EINVALID, "fetcher closed")
	}
	defer f.pool.release(inst)

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := inst.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "opening tab: %v", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "rendering %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "rendering %s: %v", url, err)
	}

	res, err := page.Eval(navigationStatus)
	if err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "rendering %s: %v", url, err)
	}
	if status := res.Value.Int(); status >= 400 {
		return "", snapsearch.Errorf(snapsearch.ENOTFOUND, "page not found: %s (status %d)", url, status)
	}

	html, err := page.HTML()
	if err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "rendering %s: %v", url, err)
	}
	return html, nil
}

// Close releases browser resources. Safe to call more than once.
func (f *Fetcher) Close() error {
	return f.pool.close()
}
