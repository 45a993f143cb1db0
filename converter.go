package snapsearch

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)

	// ConvertRecord renders one listing as a Markdown section.
	ConvertRecord(r ListingRecord) (string, error)
}
