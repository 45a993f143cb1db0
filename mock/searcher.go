package mock

import (
	"context"

	"github.com/fwojciec/snapsearch"
)

var _ snapsearch.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of snapsearch.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, rawQuery string, view snapsearch.ResultsView) (*snapsearch.SearchSession, *snapsearch.SelectionController, error)
}

func (s *Searcher) Search(ctx context.Context, rawQuery string, view snapsearch.ResultsView) (*snapsearch.SearchSession, *snapsearch.SelectionController, error) {
	return s.SearchFn(ctx, rawQuery, view)
}
