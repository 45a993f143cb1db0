//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/snapsearch"
	"github.com/fwojciec/snapsearch/goquery"
	"github.com/fwojciec/snapsearch/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPage builds its listing card after load, the way some snapshot
// hosts do.
const scriptedPage = `<!DOCTYPE html>
<html><body>
<div id="listado">Cargando...</div>
<script>
document.getElementById("listado").innerHTML =
  '<article class="box_offer"><h2><a href="/ofertas-de-trabajo/backend">Backend Developer</a></h2><p>Acme</p></article>';
</script>
</body></html>`

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns markup built by scripts", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(scriptedPage))
		}))
		defer srv.Close()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), srv.URL+"/cordoba/cordoba_p1.html")
		require.NoError(t, err)
		assert.NotContains(t, html, "Cargando...</div>")

		records, err := goquery.NewExtractor().Extract(html, snapsearch.SourceRegion{Name: "Córdoba", Slug: "cordoba"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Backend Developer", records[0].Title)
	})

	t.Run("returns not found for error statuses", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		_, err = fetcher.Fetch(context.Background(), srv.URL+"/cordoba/cordoba_p9.html")

		require.Error(t, err)
		assert.Equal(t, snapsearch.ENOTFOUND, snapsearch.ErrorCode(err))
	})

	t.Run("returns unavailable when the render times out", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`<html><body>tarde</body></html>`))
		}))
		defer srv.Close()

		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
		require.NoError(t, err)
		defer fetcher.Close()

		_, err = fetcher.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, snapsearch.EUNAVAILABLE, snapsearch.ErrorCode(err))
	})

	t.Run("returns unavailable for a cancelled context", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = fetcher.Fetch(ctx, "http://example.com")

		require.Error(t, err)
		assert.Equal(t, snapsearch.EUNAVAILABLE, snapsearch.ErrorCode(err))
	})

	t.Run("keeps rendering across browser replacements", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body><article class="box_offer"><h2>Uno</h2></article></body></html>`))
		}))
		defer srv.Close()

		fetcher, err := rod.NewFetcher(rod.WithPagesPerBrowser(2))
		require.NoError(t, err)
		defer fetcher.Close()

		for i := 0; i < 5; i++ {
			html, err := fetcher.Fetch(context.Background(), srv.URL)
			require.NoError(t, err)
			assert.Contains(t, html, "Uno")
		}
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)

		require.NoError(t, fetcher.Close())
		require.NoError(t, fetcher.Close())
	})

	t.Run("rejects fetches after close", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		require.NoError(t, fetcher.Close())

		_, err = fetcher.Fetch(context.Background(), "http://example.com")

		require.Error(t, err)
		assert.Equal(t, snapsearch.EINVALID, snapsearch.ErrorCode(err))
		assert.Contains(t, snapsearch.ErrorMessage(err), "closed")
	})
}
