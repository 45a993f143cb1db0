// Package goquery implements snapsearch.RecordExtractor using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/snapsearch"
)

// Ensure Extractor implements snapsearch.RecordExtractor at compile time.
var _ snapsearch.RecordExtractor = (*Extractor)(nil)

// DescriptionSelector marks the scraped description injected into a card
// by the snapshot enrichment step.
const DescriptionSelector = ".descripcion_scrapeada"

// DefaultMarkers returns the listing-card selectors in priority order.
// Captures from different dates use different conventions; the first
// marker matching at least one element wins.
func DefaultMarkers() []string {
	return []string{
		"article.box_offer",
		".box_offer",
		"article",
	}
}

// Extractor derives listing records from snapshot pages.
type Extractor struct {
	Markers    []string
	Strategies Strategies
}

// NewExtractor creates an Extractor with the default markers and
// strategies.
func NewExtractor() *Extractor {
	return &Extractor{
		Markers:    DefaultMarkers(),
		Strategies: DefaultStrategies(),
	}
}

// Extract parses html and returns one record per listing card in document
// order. Links in every card are rewritten against region's folder before
// any field is read, so URL and DescriptionMarkup carry neutralized targets.
func (e *Extractor) Extract(html string, region snapsearch.SourceRegion) ([]snapsearch.ListingRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, snapsearch.Errorf(snapsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	cards := e.locate(doc)
	records := make([]snapsearch.ListingRecord, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		records = append(records, e.record(card, region))
	})
	return records, nil
}

// locate returns the cards of the first marker that matches anything.
// Cards nested inside another card of the same marker are dropped.
func (e *Extractor) locate(doc *goquery.Document) *goquery.Selection {
	for _, marker := range e.Markers {
		cards := doc.Find(marker).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.ParentsFiltered(marker).Length() == 0
		})
		if cards.Length() > 0 {
			return cards
		}
	}
	return doc.Selection.Slice(0, 0)
}

func (e *Extractor) record(card *goquery.Selection, region snapsearch.SourceRegion) snapsearch.ListingRecord {
	NeutralizeLinks(card, region.Slug)

	return snapsearch.ListingRecord{
		Title:             First(card, e.Strategies.Title),
		Company:           First(card, e.Strategies.Company),
		Place:             First(card, e.Strategies.Place),
		PostedAt:          First(card, e.Strategies.PostedAt),
		URL:               listingURL(card),
		DescriptionMarkup: descriptionMarkup(card),
		Text:              flatText(card),
	}
}

// NeutralizeLinks rewrites every href inside sel with
// snapsearch.NeutralizeLink.
func NeutralizeLinks(sel *goquery.Selection, regionSlug string) {
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		a.SetAttr("href", snapsearch.NeutralizeLink(href, regionSlug))
	})
}

// listingURL returns the title link target, falling back to the first link
// outside the description.
func listingURL(card *goquery.Selection) string {
	for _, selector := range []string{headingLinkSelector, "a[href]"} {
		if href, ok := outsideDescription(card.Find(selector)).First().Attr("href"); ok {
			return strings.TrimSpace(href)
		}
	}
	return ""
}

// descriptionMarkup returns the inner markup of the scraped description.
func descriptionMarkup(card *goquery.Selection) string {
	desc := card.Find(DescriptionSelector).First()
	if desc.Length() == 0 {
		return ""
	}
	markup, err := desc.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(markup)
}

// flatText returns the whitespace-normalized text of the card, without
// script and style contents.
func flatText(card *goquery.Selection) string {
	clone := card.Clone()
	clone.Find("script, style, noscript").Remove()
	return cleanText(clone.Text())
}

// outsideDescription drops elements located inside the scraped description.
func outsideDescription(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !s.Is(DescriptionSelector) && s.ParentsFiltered(DescriptionSelector).Length() == 0
	})
}

// cleanText collapses whitespace runs, including non-breaking spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
