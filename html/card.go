package html

import (
	"strings"

	"github.com/fwojciec/snapsearch"
)

// CardClass marks result cards; ActiveClass marks the selected one.
const (
	CardClass   = "box_offer"
	ActiveClass = "sel"
)

// CardRenderer renders listing records as result cards.
type CardRenderer struct{}

// Render returns the card markup for r. Every text field is escaped, the
// title link keeps its neutralized target but is marked disabled, and the
// record travels with the card as an encoded payload so a selection can be
// served without fetching again.
func (CardRenderer) Render(r snapsearch.ListingRecord, active bool) string {
	class := CardClass
	if active {
		class += " " + ActiveClass
	}

	var b strings.Builder
	b.WriteString(`<article class="` + class + `"`)
	b.WriteString(` data-id="` + Escape(r.ID) + `"`)
	b.WriteString(` data-region="` + Escape(r.SourceRegionSlug) + `"`)
	b.WriteString(` data-record="` + Escape(snapsearch.EncodeRecordPayload(r)) + `">`)

	b.WriteString(`<h2 class="fs18 fwB"><a class="js-o-link fc_base"`)
	b.WriteString(` href="` + Escape(SafeHref(r.URL)) + `"`)
	b.WriteString(` data-disabled="true" aria-disabled="true" tabindex="-1">`)
	b.WriteString(Escape(r.Title))
	b.WriteString(`</a></h2>`)

	field(&b, "fs16 fc_base mt5 empresa", r.Company)
	field(&b, "fs16 fc_base mt5 ubicacion", r.Place)
	field(&b, "fs13 fc_aux mt15", r.PostedAt)

	b.WriteString(`</article>`)
	return b.String()
}

func field(b *strings.Builder, class, text string) {
	if text == "" {
		return
	}
	b.WriteString(`<p class="` + class + `">` + Escape(text) + `</p>`)
}
