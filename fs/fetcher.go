// Package fs reads snapshot sets from the local filesystem and writes
// rendered output files.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/snapsearch"
)

// Ensure Fetcher implements snapsearch.Fetcher at compile time.
var _ snapsearch.Fetcher = (*Fetcher)(nil)

// Fetcher reads snapshot pages from disk. Addresses are plain paths or
// file:// URLs.
type Fetcher struct{}

// NewFetcher creates a filesystem Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch reads the page at addr. A missing file returns ENOTFOUND; any other
// read failure returns EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, addr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "reading %s: %v", addr, err)
	}

	path := filepath.FromSlash(strings.TrimPrefix(addr, "file://"))
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", snapsearch.Errorf(snapsearch.ENOTFOUND, "page not found: %s", addr)
	} else if err != nil {
		return "", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "reading %s: %v", addr, err)
	}
	return string(b), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
