package snapsearch

// RecordExtractor parses a snapshot page into listing records.
type RecordExtractor interface {
	// Extract locates every listing fragment in html and derives a record
	// from each, in document order. Links inside the fragments are
	// neutralized against region. Missing fields are empty strings, never
	// errors; an error means the markup could not be parsed at all.
	// The returned records carry no ID and no region slug yet.
	Extract(html string, region SourceRegion) ([]ListingRecord, error)
}
