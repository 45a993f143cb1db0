package yaml_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/snapsearch"
	"github.com/fwojciec/snapsearch/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads regions in order", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ParseConfig(strings.NewReader(`
base: https://example.com/data/
max_pages: 10
regions:
  - name: Mendoza
    slug: mendoza
  - name: Córdoba
    slug: cordoba
`))

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/data/", cfg.Base)
		assert.Equal(t, 10, cfg.MaxPages)
		assert.Equal(t, []snapsearch.SourceRegion{
			{Name: "Mendoza", Slug: "mendoza"},
			{Name: "Córdoba", Slug: "cordoba"},
		}, cfg.Regions)
	})

	t.Run("fills in defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ParseConfig(strings.NewReader("base: data\n"))

		require.NoError(t, err)
		assert.Equal(t, "data", cfg.Base)
		assert.Equal(t, snapsearch.DefaultMaxPages, cfg.MaxPages)
		assert.Equal(t, snapsearch.DefaultRegions(), cfg.Regions)
	})

	t.Run("accepts an empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ParseConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, snapsearch.DefaultConfig(), cfg)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseConfig(strings.NewReader("max_paginas: 3\n"))

		assert.Equal(t, snapsearch.EINVALID, snapsearch.ErrorCode(err))
	})

	t.Run("rejects duplicate slugs", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseConfig(strings.NewReader(`
regions:
  - {name: A, slug: a}
  - {name: B, slug: a}
`))

		assert.Equal(t, snapsearch.EINVALID, snapsearch.ErrorCode(err))
	})

	t.Run("rejects negative max pages", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseConfig(strings.NewReader("max_pages: -1\n"))

		assert.Equal(t, snapsearch.EINVALID, snapsearch.ErrorCode(err))
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseConfig(strings.NewReader("regions: [\n"))

		assert.Equal(t, snapsearch.EINVALID, snapsearch.ErrorCode(err))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "regions.yml")
		require.NoError(t, os.WriteFile(path, []byte("regions:\n  - {name: Salta, slug: salta}\n"), 0644))

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, []snapsearch.SourceRegion{{Name: "Salta", Slug: "salta"}}, cfg.Regions)
	})

	t.Run("returns ENOTFOUND for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))

		assert.Equal(t, snapsearch.ENOTFOUND, snapsearch.ErrorCode(err))
	})
}

func TestEncodeConfig(t *testing.T) {
	t.Parallel()

	t.Run("writes a catalogue ParseConfig reads back", func(t *testing.T) {
		t.Parallel()

		cfg := snapsearch.DefaultConfig()
		cfg.Base = "data"

		var buf bytes.Buffer
		require.NoError(t, yaml.EncodeConfig(&buf, cfg))

		assert.Contains(t, buf.String(), "slug: buenos_aires")
		got, err := yaml.ParseConfig(&buf)
		require.NoError(t, err)
		assert.Equal(t, cfg, got)
	})
}
