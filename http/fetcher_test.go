package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/snapsearch"
	snaphttp "github.com/fwojciec/snapsearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><article class="box_offer">Hola</article></body></html>`))
		}))
		defer server.Close()

		fetcher := snaphttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL+"/cordoba/cordoba_p1.html")
		require.NoError(t, err)
		assert.Equal(t, `<html><body><article class="box_offer">Hola</article></body></html>`, html)
	})

	t.Run("asks caches to be bypassed", func(t *testing.T) {
		t.Parallel()

		headers := make(chan http.Header, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers <- r.Header.Clone()
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		_, err := snaphttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		h := <-headers
		assert.Contains(t, h.Get("Cache-Control"), "no-store")
		assert.Equal(t, "no-cache", h.Get("Pragma"))
	})

	t.Run("makes a single attempt", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := snaphttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("returns ENOTFOUND for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))

			_, err := snaphttp.NewFetcher().Fetch(context.Background(), server.URL)
			server.Close()

			assert.Equal(t, snapsearch.ENOTFOUND, snapsearch.ErrorCode(err), status)
		}
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer server.Close()

		html, err := snaphttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
	})

	t.Run("returns EUNAVAILABLE for non-existent host", func(t *testing.T) {
		t.Parallel()

		_, err := snaphttp.NewFetcher().Fetch(context.Background(), "http://this-domain-does-not-exist.invalid")

		assert.Equal(t, snapsearch.EUNAVAILABLE, snapsearch.ErrorCode(err))
	})

	t.Run("returns EUNAVAILABLE for malformed URLs", func(t *testing.T) {
		t.Parallel()

		_, err := snaphttp.NewFetcher().Fetch(context.Background(), "http://[::1")

		assert.Equal(t, snapsearch.EUNAVAILABLE, snapsearch.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := snaphttp.NewFetcher(snaphttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		assert.Equal(t, snapsearch.EUNAVAILABLE, snapsearch.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := snaphttp.NewFetcher().Fetch(ctx, server.URL)
		require.Error(t, err)
	})
}
