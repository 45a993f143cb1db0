package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTitle is the title of a listing without any heading.
const DefaultTitle = "Listing"

// shortTextMax is the longest text block still treated as a descriptive
// line (company, place) rather than body copy.
const shortTextMax = 120

// Field marker selectors.
const (
	headingSelector     = "h1, h2, h3, h4"
	headingLinkSelector = "h1 a, h2 a, h3 a, h4 a"
	companySelector     = "[offer-grid-article-company-url], [itemprop='hiringOrganization'], [data-company], [class*='company'], [class*='empresa']"
	placeSelector       = "[itemprop='jobLocation'], [data-location], [class*='location'], [class*='ubicacion']"
	auxSelector         = ".fc_aux, small"
)

// relativeTime matches relative-time phrases such as "Hace 3 días",
// "ayer" or "2 hours ago".
var relativeTime = regexp.MustCompile(`(?i)\b(hace\s+(?:\d+|un|una|unos|unas)\s+(?:segundos?|minutos?|horas?|d[ií]as?|semanas?|mes(?:es)?)|ayer|hoy|\d+\s+(?:minutes?|hours?|days?|weeks?|months?)\s+ago|yesterday|today)\b`)

// FieldStrategy tries to locate one field inside a listing card.
// It reports false when its source is absent.
type FieldStrategy func(card *goquery.Selection) (string, bool)

// Strategies holds the ordered fallback chain of every field. Support for
// a new capture variant is added by appending a strategy.
type Strategies struct {
	Title    []FieldStrategy
	Company  []FieldStrategy
	Place    []FieldStrategy
	PostedAt []FieldStrategy
}

// DefaultStrategies returns the fallback chains for the known captures.
func DefaultStrategies() Strategies {
	return Strategies{
		Title:    []FieldStrategy{HeadingLink, Heading, Constant(DefaultTitle)},
		Company:  []FieldStrategy{Marked(companySelector), ShortText(0)},
		Place:    []FieldStrategy{Marked(placeSelector), ShortText(1)},
		PostedAt: []FieldStrategy{TimeElement, Marked(auxSelector), RelativeTime},
	}
}

// First runs strategies in order and returns the first non-empty value,
// or "" when none finds one.
func First(card *goquery.Selection, strategies []FieldStrategy) string {
	for _, strategy := range strategies {
		if v, ok := strategy(card); ok && v != "" {
			return v
		}
	}
	return ""
}

// HeadingLink returns the text of the link inside the card's heading.
func HeadingLink(card *goquery.Selection) (string, bool) {
	return textOf(outsideDescription(card.Find(headingLinkSelector)).First())
}

// Heading returns the bare heading text.
func Heading(card *goquery.Selection) (string, bool) {
	return textOf(outsideDescription(card.Find(headingSelector)).First())
}

// Constant always returns v.
func Constant(v string) FieldStrategy {
	return func(*goquery.Selection) (string, bool) {
		return v, true
	}
}

// Marked returns the text of the first element matching selector.
func Marked(selector string) FieldStrategy {
	return func(card *goquery.Selection) (string, bool) {
		return textOf(outsideDescription(card.Find(selector)).First())
	}
}

// ShortText returns the n-th (zero-based) short descriptive text block
// following the card's heading.
func ShortText(n int) FieldStrategy {
	return func(card *goquery.Selection) (string, bool) {
		blocks := shortBlocks(card)
		if n >= len(blocks) {
			return "", false
		}
		return blocks[n], true
	}
}

// TimeElement returns the text of a <time> element, or its datetime
// attribute when the element is empty.
func TimeElement(card *goquery.Selection) (string, bool) {
	t := outsideDescription(card.Find("time")).First()
	if t.Length() == 0 {
		return "", false
	}
	if v, ok := textOf(t); ok {
		return v, true
	}
	v, ok := t.Attr("datetime")
	return cleanText(v), ok && cleanText(v) != ""
}

// RelativeTime scans the card's flattened text for a relative-time phrase.
func RelativeTime(card *goquery.Selection) (string, bool) {
	m := relativeTime.FindString(flatText(card))
	return m, m != ""
}

// shortBlocks returns the text of paragraph blocks after the heading that
// are short enough to be descriptive lines. Auxiliary and temporal
// elements are skipped. Without a sibling heading every paragraph counts.
func shortBlocks(card *goquery.Selection) []string {
	var candidates *goquery.Selection
	if heading := outsideDescription(card.Find(headingSelector)).First(); heading.Length() > 0 {
		after := heading.NextAll()
		candidates = card.Find("p").FilterFunction(func(_ int, p *goquery.Selection) bool {
			return p.IsSelection(after) || p.Parents().IsSelection(after)
		})
	}
	if candidates == nil || candidates.Length() == 0 {
		candidates = card.Find("p")
	}

	var blocks []string
	outsideDescription(candidates).Each(func(_ int, p *goquery.Selection) {
		if p.Is(auxSelector) || p.Find("time").Length() > 0 {
			return
		}
		text := cleanText(p.Text())
		if text == "" || len([]rune(text)) > shortTextMax {
			return
		}
		blocks = append(blocks, text)
	})
	return blocks
}

// textOf returns the normalized text of sel, reporting false when sel is
// empty or has no text.
func textOf(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	text := cleanText(sel.Text())
	return text, text != ""
}
