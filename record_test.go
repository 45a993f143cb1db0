package snapsearch_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/snapsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	t.Parallel()

	rec := snapsearch.ListingRecord{
		Title: "Senior Backend Engineer",
		Text:  "Senior Backend Engineer Acme S.A. Buenos Aires Hace 2 horas",
	}

	assert.True(t, snapsearch.Matches(rec, "backend"))
	assert.True(t, snapsearch.Matches(rec, "senior backend"))
	assert.True(t, snapsearch.Matches(rec, "acme s.a."))
	assert.False(t, snapsearch.Matches(rec, "backendx-engine"))
	assert.False(t, snapsearch.Matches(rec, "frontend"))

	t.Run("upper-case query matches after normalization", func(t *testing.T) {
		t.Parallel()

		q, err := snapsearch.NormalizeQuery("BACKEND")
		require.NoError(t, err)
		assert.True(t, snapsearch.Matches(rec, q.Match))
	})

	t.Run("falls back to joined fields without fragment text", func(t *testing.T) {
		t.Parallel()

		r := snapsearch.ListingRecord{Title: "Cocinero", Company: "Parrilla Don Julio", Place: "Palermo"}
		assert.True(t, snapsearch.Matches(r, "don julio"))
		assert.True(t, snapsearch.Matches(r, "palermo"))
	})

	t.Run("fallback ignores description markup", func(t *testing.T) {
		t.Parallel()

		r := snapsearch.ListingRecord{Title: "Cocinero", DescriptionMarkup: `<p class="fwB">Turno noche</p>`}
		assert.False(t, snapsearch.Matches(r, "p>"))
		assert.False(t, snapsearch.Matches(r, "fwb"))
		assert.True(t, snapsearch.Matches(r, "cocinero"))
	})
}

func TestNeutralizeLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want string
	}{
		{"root-relative path is scoped to the region", "/ofertas-de-trabajo/123", "buenos_aires/ofertas-de-trabajo/123"},
		{"relative path is scoped to the region", "ofertas-de-trabajo/123#lc=1", "buenos_aires/ofertas-de-trabajo/123#lc=1"},
		{"absolute URL is untouched", "https://ar.computrabajo.com/ofertas-de-trabajo/123", "https://ar.computrabajo.com/ofertas-de-trabajo/123"},
		{"protocol-relative URL is untouched", "//cdn.example.com/a.css", "//cdn.example.com/a.css"},
		{"in-page anchor is untouched", "#detalle", "#detalle"},
		{"already scoped target is untouched", "buenos_aires/ofertas-de-trabajo/123", "buenos_aires/ofertas-de-trabajo/123"},
		{"dot-scoped target is untouched", "./buenos_aires/x.html", "./buenos_aires/x.html"},
		{"mailto is untouched", "mailto:rrhh@example.com", "mailto:rrhh@example.com"},
		{"empty target is untouched", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, snapsearch.NeutralizeLink(tt.href, "buenos_aires"))
		})
	}
}

func TestDecodeRecordPayload(t *testing.T) {
	t.Parallel()

	t.Run("recovers an encoded record", func(t *testing.T) {
		t.Parallel()

		rec := snapsearch.ListingRecord{
			ID:                "abc123",
			Title:             `Analista "Sr" <QA> & Testing`,
			Company:           "O'Higgins SRL",
			Place:             "Mendoza",
			PostedAt:          "Ayer",
			URL:               "mendoza/ofertas-de-trabajo/9",
			DescriptionMarkup: "<p>- Inglés avanzado</p>",
			SourceRegionSlug:  "mendoza",
			Text:              "not serialized",
		}

		got, err := snapsearch.DecodeRecordPayload(snapsearch.EncodeRecordPayload(rec))

		require.NoError(t, err)
		rec.Text = ""
		assert.Equal(t, rec, got)
	})

	t.Run("fails closed on malformed input", func(t *testing.T) {
		t.Parallel()

		inputs := map[string]string{
			"bad percent escape": "%zz",
			"not JSON":           url.QueryEscape("<p>hi</p>"),
			"unknown field":      url.QueryEscape(`{"v":1,"id":"x","extra":true}`),
			"trailing data":      url.QueryEscape(`{"v":1,"id":"x"} {"v":1}`),
			"wrong version":      url.QueryEscape(`{"v":2,"id":"x"}`),
			"missing ID":         url.QueryEscape(`{"v":1,"title":"x"}`),
			"empty":              "",
		}

		for name, in := range inputs {
			_, err := snapsearch.DecodeRecordPayload(in)
			assert.Equal(t, snapsearch.EMALFORMED, snapsearch.ErrorCode(err), name)
		}
	})
}
