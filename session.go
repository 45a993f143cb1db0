package snapsearch

import "context"

// SearchSession holds the state of one search run. It is owned by the
// aggregator that created it and only grows by Append, so the match count
// and the result list can never disagree.
type SearchSession struct {
	ID    string
	Query Query

	results []ListingRecord
	index   map[string]int
}

// NewSearchSession returns an empty session for q.
func NewSearchSession(id string, q Query) *SearchSession {
	return &SearchSession{
		ID:    id,
		Query: q,
		index: make(map[string]int),
	}
}

// Append adds a matched record in first-found order.
func (s *SearchSession) Append(r ListingRecord) {
	if _, ok := s.index[r.ID]; !ok {
		s.index[r.ID] = len(s.results)
	}
	s.results = append(s.results, r)
}

// TotalMatched returns the number of matched records.
func (s *SearchSession) TotalMatched() int {
	return len(s.results)
}

// Empty reports whether the search found no matches.
func (s *SearchSession) Empty() bool {
	return len(s.results) == 0
}

// Results returns a copy of the matched records in order.
func (s *SearchSession) Results() []ListingRecord {
	out := make([]ListingRecord, len(s.results))
	copy(out, s.results)
	return out
}

// Record returns the matched record with the given ID.
func (s *SearchSession) Record(id string) (ListingRecord, bool) {
	i, ok := s.index[id]
	if !ok {
		return ListingRecord{}, false
	}
	return s.results[i], true
}

// ResultsView is the host page a search renders into: a heading bound to
// the query, a status line, a results container and an optional detail
// container.
type ResultsView interface {
	SelectionView

	SetHeading(text string)
	SetStatus(text string)

	// AppendResult renders one card at the end of the results container.
	AppendResult(r ListingRecord)

	// ShowNoResults replaces the results container with the single
	// "no results" placeholder and, when a detail container exists, puts
	// the matching placeholder there.
	ShowNoResults()

	// HasDetail reports whether the page has a detail container.
	HasDetail() bool
}

// Searcher runs a federated search over all configured regions.
type Searcher interface {
	// Search normalizes rawQuery, walks every region and renders the
	// matches into view. A blank query renders the neutral prompt, fetches
	// nothing and returns EEMPTYQUERY.
	Search(ctx context.Context, rawQuery string, view ResultsView) (*SearchSession, *SelectionController, error)
}
