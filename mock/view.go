package mock

import "github.com/fwojciec/snapsearch"

var _ snapsearch.ResultsView = (*ResultsView)(nil)

// ResultsView is a mock implementation of snapsearch.ResultsView.
// Nil functions are no-ops, and HasDetail defaults to false.
type ResultsView struct {
	SetHeadingFn    func(text string)
	SetStatusFn     func(text string)
	AppendResultFn  func(r snapsearch.ListingRecord)
	ShowNoResultsFn func()
	HasDetailFn     func() bool
	SetActiveFn     func(id string, active bool)
	ShowDetailFn    func(r snapsearch.ListingRecord)
}

func (v *ResultsView) SetHeading(text string) {
	if v.SetHeadingFn != nil {
		v.SetHeadingFn(text)
	}
}

func (v *ResultsView) SetStatus(text string) {
	if v.SetStatusFn != nil {
		v.SetStatusFn(text)
	}
}

func (v *ResultsView) AppendResult(r snapsearch.ListingRecord) {
	if v.AppendResultFn != nil {
		v.AppendResultFn(r)
	}
}

func (v *ResultsView) ShowNoResults() {
	if v.ShowNoResultsFn != nil {
		v.ShowNoResultsFn()
	}
}

func (v *ResultsView) HasDetail() bool {
	if v.HasDetailFn != nil {
		return v.HasDetailFn()
	}
	return false
}

func (v *ResultsView) SetActive(id string, active bool) {
	if v.SetActiveFn != nil {
		v.SetActiveFn(id, active)
	}
}

func (v *ResultsView) ShowDetail(r snapsearch.ListingRecord) {
	if v.ShowDetailFn != nil {
		v.ShowDetailFn(r)
	}
}
