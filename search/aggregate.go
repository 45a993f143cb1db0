package search

import (
	"context"
	"fmt"

	"github.com/fwojciec/snapsearch"
	"github.com/google/uuid"
)

var _ snapsearch.Searcher = (*Aggregator)(nil)

// Aggregator runs a search across all regions, strictly one region after
// another, and owns the resulting session.
type Aggregator struct {
	Regions  []snapsearch.SourceRegion
	Walker   *Walker
	Messages snapsearch.Messages

	// AutoSelect activates the first result when the view has a detail
	// container.
	AutoSelect bool
}

// NewAggregator creates an Aggregator with the default messages and
// auto-selection enabled.
func NewAggregator(regions []snapsearch.SourceRegion, walker *Walker) *Aggregator {
	return &Aggregator{
		Regions:    regions,
		Walker:     walker,
		Messages:   snapsearch.DefaultMessages(),
		AutoSelect: true,
	}
}

// Search normalizes rawQuery and renders the matches of every region into
// view as they are found. A blank query renders the neutral prompt and
// returns EEMPTYQUERY without fetching anything.
func (a *Aggregator) Search(ctx context.Context, rawQuery string, view snapsearch.ResultsView) (*snapsearch.SearchSession, *snapsearch.SelectionController, error) {
	msgs := a.Messages
	if msgs == (snapsearch.Messages{}) {
		msgs = snapsearch.DefaultMessages()
	}

	q, err := snapsearch.NormalizeQuery(rawQuery)
	if err != nil {
		view.SetHeading(msgs.NoQueryHeading)
		view.SetStatus(msgs.NoQueryPrompt)
		return nil, nil, err
	}

	session := snapsearch.NewSearchSession(uuid.NewString(), q)
	controller := snapsearch.NewSelectionController(session, view)

	view.SetHeading(fmt.Sprintf(msgs.HeadingFormat, q.Display))
	view.SetStatus(msgs.Searching)

	for _, region := range a.Regions {
		a.Walker.report(ProgressEvent{Type: ProgressRegionStarted, Region: region})
		a.Walker.Walk(ctx, region, q, func(r snapsearch.ListingRecord) {
			session.Append(r)
			view.AppendResult(r)
		})
	}

	if session.Empty() {
		view.ShowNoResults()
	}
	view.SetStatus(fmt.Sprintf(msgs.StatusFormat, session.TotalMatched()))

	if a.AutoSelect && view.HasDetail() {
		controller.ActivateFirst()
	}

	a.Walker.report(ProgressEvent{Type: ProgressFinished, Matched: session.TotalMatched()})
	return session, controller, nil
}
