package fs

import (
	"io"
	"os"
	"path/filepath"
)

// AtomicFile writes to a temporary file next to its destination and
// replaces the destination only on Commit, so readers never observe a
// partially written file.
type AtomicFile struct {
	f    *os.File
	path string
	done bool
}

var _ io.Writer = (*AtomicFile)(nil)

// CreateFile starts an atomic write of path, creating parent directories.
func CreateFile(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{f: f, path: path}, nil
}

func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

// Commit flushes the temporary file and renames it over the destination.
func (a *AtomicFile) Commit() error {
	if a.done {
		return nil
	}
	a.done = true

	if err := a.f.Sync(); err != nil {
		a.cleanup()
		return err
	}
	if err := a.f.Close(); err != nil {
		_ = os.Remove(a.f.Name())
		return err
	}
	if err := os.Chmod(a.f.Name(), 0644); err != nil {
		_ = os.Remove(a.f.Name())
		return err
	}
	if err := os.Rename(a.f.Name(), a.path); err != nil {
		_ = os.Remove(a.f.Name())
		return err
	}
	return nil
}

// Abort discards the temporary file and leaves the destination untouched.
// Calling Abort after Commit is a no-op.
func (a *AtomicFile) Abort() error {
	if a.done {
		return nil
	}
	a.done = true
	return a.cleanup()
}

func (a *AtomicFile) cleanup() error {
	_ = a.f.Close()
	return os.Remove(a.f.Name())
}
