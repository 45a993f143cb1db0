package rod

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLauncher hands out instances without starting Chrome and records
// which of them were stopped.
type fakeLauncher struct {
	mu        sync.Mutex
	launched  []*instance
	stopped   map[*instance]int
	failAfter int
}

func newFakeLauncher() *fakeLauncher {
	return &fakeLauncher{stopped: map[*instance]int{}, failAfter: -1}
}

func (f *fakeLauncher) launch() (*instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter >= 0 && len(f.launched) >= f.failAfter {
		return nil, errors.New("no chrome")
	}
	inst := &instance{}
	inst.stop = func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.stopped[inst]++
		return nil
	}
	f.launched = append(f.launched, inst)
	return inst, nil
}

func (f *fakeLauncher) stops(inst *instance) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped[inst]
}

func TestBrowserPool(t *testing.T) {
	t.Parallel()

	t.Run("replaces the browser after its page limit", func(t *testing.T) {
		t.Parallel()

		l := newFakeLauncher()
		p, err := newBrowserPool(2, l.launch)
		require.NoError(t, err)

		first, _ := p.acquire()
		p.release(first)
		second, _ := p.acquire()
		p.release(second)
		assert.Same(t, first, second)

		third, ok := p.acquire()
		require.True(t, ok)
		p.release(third)
		assert.NotSame(t, first, third)
		assert.Equal(t, 1, l.stops(first))
	})

	t.Run("keeps a replaced browser alive until its renders finish", func(t *testing.T) {
		t.Parallel()

		l := newFakeLauncher()
		p, err := newBrowserPool(1, l.launch)
		require.NoError(t, err)

		inFlight, _ := p.acquire()
		next, _ := p.acquire()
		require.NotSame(t, inFlight, next)
		assert.Equal(t, 0, l.stops(inFlight))

		p.release(inFlight)
		assert.Equal(t, 1, l.stops(inFlight))

		p.release(next)
		assert.Equal(t, 0, l.stops(next))
	})

	t.Run("keeps the old browser when a replacement fails to launch", func(t *testing.T) {
		t.Parallel()

		l := newFakeLauncher()
		l.failAfter = 1
		p, err := newBrowserPool(1, l.launch)
		require.NoError(t, err)

		first, _ := p.acquire()
		p.release(first)
		again, ok := p.acquire()
		require.True(t, ok)
		p.release(again)

		assert.Same(t, first, again)
		assert.Equal(t, 0, l.stops(first))
	})

	t.Run("close waits for in-flight renders", func(t *testing.T) {
		t.Parallel()

		l := newFakeLauncher()
		p, err := newBrowserPool(0, l.launch)
		require.NoError(t, err)

		inst, _ := p.acquire()
		require.NoError(t, p.close())
		assert.Equal(t, 0, l.stops(inst))

		_, ok := p.acquire()
		assert.False(t, ok)

		p.release(inst)
		assert.Equal(t, 1, l.stops(inst))
		require.NoError(t, p.close())
		assert.Equal(t, 1, l.stops(inst))
	})

	t.Run("stops each browser once under concurrent renders", func(t *testing.T) {
		t.Parallel()

		l := newFakeLauncher()
		p, err := newBrowserPool(3, l.launch)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 40; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				inst, ok := p.acquire()
				if !ok {
					return
				}
				p.release(inst)
			}()
		}
		wg.Wait()
		require.NoError(t, p.close())

		l.mu.Lock()
		defer l.mu.Unlock()
		for _, inst := range l.launched {
			assert.Equal(t, 1, l.stopped[inst])
			assert.Zero(t, inst.inflight)
		}
	})
}
