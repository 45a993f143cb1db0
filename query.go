package snapsearch

import "strings"

// Query is a normalized search term.
type Query struct {
	// Display is the trimmed term in its original case, echoed in headings.
	Display string

	// Match is the lower-cased term used by Matches.
	Match string
}

// NormalizeQuery trims the raw term and derives its display and matching
// forms. A blank term returns EEMPTYQUERY; callers must then show the
// neutral prompt and issue no fetches.
func NormalizeQuery(raw string) (Query, error) {
	display := strings.TrimSpace(raw)
	if display == "" {
		return Query{}, Errorf(EEMPTYQUERY, "search term required")
	}
	return Query{
		Display: display,
		Match:   strings.ToLower(display),
	}, nil
}
