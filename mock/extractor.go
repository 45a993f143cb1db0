package mock

import "github.com/fwojciec/snapsearch"

var _ snapsearch.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of snapsearch.RecordExtractor.
type RecordExtractor struct {
	ExtractFn func(html string, region snapsearch.SourceRegion) ([]snapsearch.ListingRecord, error)
}

func (e *RecordExtractor) Extract(html string, region snapsearch.SourceRegion) ([]snapsearch.ListingRecord, error) {
	return e.ExtractFn(html, region)
}
