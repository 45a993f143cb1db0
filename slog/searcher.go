package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/snapsearch"
)

// Ensure LoggingSearcher implements snapsearch.Searcher.
var _ snapsearch.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   snapsearch.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next snapsearch.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the match count.
func (s *LoggingSearcher) Search(ctx context.Context, rawQuery string, view snapsearch.ResultsView) (session *snapsearch.SearchSession, controller *snapsearch.SelectionController, err error) {
	defer func(begin time.Time) {
		matched := 0
		if session != nil {
			matched = session.TotalMatched()
		}
		s.logger.Info("search",
			"query", rawQuery,
			"matched", matched,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, rawQuery, view)
}
