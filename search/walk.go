package search

import (
	"context"

	"github.com/fwojciec/snapsearch"
)

// Walker drives the fetcher across one region's pages, from page 1 up to
// MaxPages, and stops at the first page that is unavailable or holds no
// listings.
type Walker struct {
	Fetcher   snapsearch.Fetcher
	Extractor snapsearch.RecordExtractor
	Base      string
	MaxPages  int
	Limiter   snapsearch.Limiter // optional

	// Progress, if set, receives region, page and completion events.
	Progress ProgressFunc
}

// WalkResult summarizes one region's walk.
type WalkResult struct {
	Region   snapsearch.SourceRegion
	Requests int
	Pages    int // pages that held listings
	Matched  int
	Stop     StopReason
	Err      error // fetch or parse error behind a transport stop
}

// Walk fetches region's pages in ascending order, one at a time, and
// passes every record matching q to emit in page order and in-page order.
// Unavailable pages are never surfaced as errors; they end the walk.
func (w *Walker) Walk(ctx context.Context, region snapsearch.SourceRegion, q snapsearch.Query, emit func(snapsearch.ListingRecord)) WalkResult {
	result := WalkResult{Region: region, Stop: StopMaxPages}

	for page := 1; page <= w.maxPages(); page++ {
		if w.Limiter != nil {
			if err := w.Limiter.Wait(ctx, region.Slug); err != nil {
				result.Stop, result.Err = StopTransportError, err
				break
			}
		}

		addr := snapsearch.PageAddress{Base: w.Base, Region: region.Slug, Page: page}
		html, err := w.Fetcher.Fetch(ctx, addr.String())
		result.Requests++

		if outcome := snapsearch.ClassifyFetch(html, err); outcome.Unavailable() {
			result.Stop, result.Err = stopReasonFor(outcome), err
			break
		}

		records, err := w.Extractor.Extract(html, region)
		if err != nil {
			result.Stop, result.Err = StopTransportError, err
			break
		}
		if len(records) == 0 {
			result.Stop = StopEmpty
			break
		}

		matched := 0
		for i, r := range records {
			r.ID = RecordID(region.Slug, page, i, r.Title)
			r.SourceRegionSlug = region.Slug
			if !snapsearch.Matches(r, q.Match) {
				continue
			}
			matched++
			emit(r)
		}
		result.Pages++
		result.Matched += matched

		w.report(ProgressEvent{
			Type:    ProgressPageMatched,
			Region:  region,
			Page:    page,
			Records: len(records),
			Matched: matched,
		})
	}

	w.report(ProgressEvent{
		Type:    ProgressRegionStopped,
		Region:  region,
		Page:    result.Requests,
		Matched: result.Matched,
		Stop:    result.Stop,
		Error:   result.Err,
	})
	return result
}

func (w *Walker) maxPages() int {
	if w.MaxPages <= 0 {
		return snapsearch.DefaultMaxPages
	}
	return w.MaxPages
}

func (w *Walker) report(event ProgressEvent) {
	if w.Progress != nil {
		w.Progress(event)
	}
}
