// Package html renders search results as safe HTML: result cards, the
// detail pane and the master/detail host page.
package html

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Escape escapes the five characters &, <, >, " and ' so s can be placed
// in element content or a quoted attribute.
func Escape(s string) string {
	return html.EscapeString(s)
}

// SafeHref returns href unless it uses a scheme that would execute or
// embed content, in which case it returns "#".
func SafeHref(href string) string {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return "#"
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return trimmed
	}
	return "#"
}

// placeholder renders a single muted paragraph.
func placeholder(text string) string {
	return `<p class="fc_aux">` + Escape(text) + `</p>`
}
