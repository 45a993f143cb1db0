package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultPagesPerBrowser is how many snapshot pages one browser renders
// before it is replaced. Chrome's memory baseline creeps up with every
// page even when pages are closed.
const DefaultPagesPerBrowser = 75

// instance is one launched browser and the renders still running on it.
type instance struct {
	browser  *rod.Browser
	stop     func() error
	inflight int
	retired  bool
}

// browserPool hands out a headless browser and replaces it after a fixed
// number of rendered pages. A replaced browser keeps running until its
// last in-flight render is released. Safe for concurrent use.
type browserPool struct {
	mu       sync.Mutex
	launch   func() (*instance, error)
	current  *instance
	rendered int
	limit    int
	closed   bool
}

func newBrowserPool(limit int, launch func() (*instance, error)) (*browserPool, error) {
	if limit <= 0 {
		limit = DefaultPagesPerBrowser
	}
	current, err := launch()
	if err != nil {
		return nil, err
	}
	return &browserPool{launch: launch, current: current, limit: limit}, nil
}

// acquire returns the current browser, replacing it first when it has
// rendered its share of pages. Every acquired instance must be passed to
// release. ok is false once the pool is closed.
func (p *browserPool) acquire() (inst *instance, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, false
	}
	if p.rendered >= p.limit {
		p.replace()
	}
	p.rendered++
	p.current.inflight++
	return p.current, true
}

// release ends one render on inst and stops inst if it was retired and
// this was its last render.
func (p *browserPool) release(inst *instance) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst.inflight--
	if inst.retired && inst.inflight == 0 {
		_ = inst.stop()
	}
}

// close retires the current browser. Safe to call more than once.
func (p *browserPool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.retire(p.current)
}

// replace swaps in a fresh browser. When the new launch fails the old
// browser stays in service. Must be called with mu held.
func (p *browserPool) replace() {
	next, err := p.launch()
	if err != nil {
		return
	}
	old := p.current
	p.current = next
	p.rendered = 0
	_ = p.retire(old)
}

// retire stops inst now when nothing renders on it, or marks it for the
// last release otherwise. Must be called with mu held.
func (p *browserPool) retire(inst *instance) error {
	inst.retired = true
	if inst.inflight == 0 {
		return inst.stop()
	}
	return nil
}

// launchChrome starts a headless browser with flags that keep background
// tabs from being throttled.
func launchChrome() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &instance{
		browser: browser,
		stop: func() error {
			err := browser.Close()
			l.Kill()
			return err
		},
	}, nil
}
