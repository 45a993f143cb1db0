package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/snapsearch"
)

// Ensure LoggingExtractor implements snapsearch.RecordExtractor.
var _ snapsearch.RecordExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecordExtractor with logging.
type LoggingExtractor struct {
	next   snapsearch.RecordExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next snapsearch.RecordExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the record count.
func (e *LoggingExtractor) Extract(html string, region snapsearch.SourceRegion) (records []snapsearch.ListingRecord, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"region", region.Slug,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, region)
}
