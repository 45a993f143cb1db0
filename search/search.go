// Package search walks the snapshot pages of every source region and
// aggregates the matching listings into a search session.
package search

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/snapsearch"
)

// ProgressEvent reports progress during a search.
type ProgressEvent struct {
	Type    ProgressType
	Region  snapsearch.SourceRegion
	Page    int
	Records int
	Matched int
	Stop    StopReason
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressRegionStarted ProgressType = iota
	ProgressPageMatched
	ProgressRegionStopped
	ProgressFinished
)

// ProgressFunc is a callback for reporting search progress.
type ProgressFunc func(event ProgressEvent)

// StopReason tells why a region's walk ended.
type StopReason int

const (
	StopEmpty StopReason = iota
	StopNotFound
	StopTransportError
	StopMaxPages
)

// String returns the reason name used in logs.
func (r StopReason) String() string {
	switch r {
	case StopEmpty:
		return "empty"
	case StopNotFound:
		return "not_found"
	case StopTransportError:
		return "transport_error"
	case StopMaxPages:
		return "max_pages"
	}
	return "unknown"
}

// stopReasonFor maps an unavailable fetch outcome onto a StopReason.
func stopReasonFor(o snapsearch.FetchOutcome) StopReason {
	switch o {
	case snapsearch.FetchEmpty:
		return StopEmpty
	case snapsearch.FetchNotFound:
		return StopNotFound
	default:
		return StopTransportError
	}
}

// RecordID derives a stable identifier for the index-th record on a page.
// The same snapshot always yields the same IDs.
func RecordID(regionSlug string, page, index int, title string) string {
	key := fmt.Sprintf("%s\x00%d\x00%d\x00%s", regionSlug, page, index, title)
	return fmt.Sprintf("%016x", xxhash.Sum64String(key))
}
