package snapsearch

import (
	"context"
	"strings"
)

// Fetcher retrieves the raw markup of one snapshot page.
type Fetcher interface {
	// Fetch makes a single, uncached attempt to retrieve the page at url.
	// A missing page or failure status returns ENOTFOUND; a request that
	// cannot complete returns EUNAVAILABLE.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}

// FetchOutcome classifies the result of one page retrieval.
type FetchOutcome int

// Fetch outcomes. Every outcome except FetchContent ends a region's walk.
const (
	FetchContent FetchOutcome = iota
	FetchEmpty
	FetchNotFound
	FetchTransportError
)

// String returns the outcome name used in logs.
func (o FetchOutcome) String() string {
	switch o {
	case FetchContent:
		return "content"
	case FetchEmpty:
		return "empty"
	case FetchNotFound:
		return "not_found"
	case FetchTransportError:
		return "transport_error"
	}
	return "unknown"
}

// Unavailable reports whether the outcome means "no more pages".
// Not-found, empty and transport failures are deliberately not told apart:
// the snapshot sequence is gapless, so any of them ends the region.
func (o FetchOutcome) Unavailable() bool {
	return o != FetchContent
}

// ClassifyFetch maps a Fetcher result onto a FetchOutcome. A blank body is
// FetchEmpty; a body that parses to zero records is classified as empty by
// the caller after extraction.
func ClassifyFetch(html string, err error) FetchOutcome {
	switch {
	case err == nil && strings.TrimSpace(html) == "":
		return FetchEmpty
	case err == nil:
		return FetchContent
	case ErrorCode(err) == ENOTFOUND:
		return FetchNotFound
	default:
		return FetchTransportError
	}
}

// Limiter paces page requests per key.
type Limiter interface {
	// Wait blocks until a request for key may proceed. It returns an error
	// if ctx is canceled first.
	Wait(ctx context.Context, key string) error
}
