package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/snapsearch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicFile(t *testing.T) {
	t.Parallel()

	t.Run("commit replaces the destination", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "resultados.html")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		f, err := fs.CreateFile(path)
		require.NoError(t, err)
		_, err = f.Write([]byte("new"))
		require.NoError(t, err)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(got), "destination unchanged before commit")

		require.NoError(t, f.Commit())

		got, err = os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "page.html")

		f, err := fs.CreateFile(path)
		require.NoError(t, err)
		_, err = f.Write([]byte("x"))
		require.NoError(t, err)
		require.NoError(t, f.Commit())

		assert.FileExists(t, path)
	})

	t.Run("abort leaves no files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")

		f, err := fs.CreateFile(path)
		require.NoError(t, err)
		_, err = f.Write([]byte("partial"))
		require.NoError(t, err)
		require.NoError(t, f.Abort())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("abort after commit is a no-op", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")

		f, err := fs.CreateFile(path)
		require.NoError(t, err)
		require.NoError(t, f.Commit())
		require.NoError(t, f.Abort())

		assert.FileExists(t, path)
	})
}
