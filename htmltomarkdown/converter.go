// Package htmltomarkdown renders listing descriptions as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/snapsearch"
	snaphtml "github.com/fwojciec/snapsearch/html"
)

// Ensure Converter implements snapsearch.Converter at compile time.
var _ snapsearch.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv     *converter.Converter
	messages snapsearch.Messages
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv, messages: snapsearch.DefaultMessages()}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", snapsearch.Errorf(snapsearch.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// ConvertRecord renders r as a Markdown section: the title as a heading,
// a line with company, place and date, the listing link and the
// description. Record fields are escaped before conversion so source text
// never turns into Markdown or HTML syntax.
func (c *Converter) ConvertRecord(r snapsearch.ListingRecord) (string, error) {
	var b strings.Builder
	b.WriteString("<h2>" + snaphtml.Escape(r.Title) + "</h2>")

	var meta []string
	if r.Company != "" {
		meta = append(meta, "<strong>"+snaphtml.Escape(r.Company)+"</strong>")
	}
	for _, v := range []string{r.Place, r.PostedAt, r.SourceRegionSlug} {
		if v != "" {
			meta = append(meta, snaphtml.Escape(v))
		}
	}
	if len(meta) > 0 {
		b.WriteString("<p>" + strings.Join(meta, " · ") + "</p>")
	}

	if href := snaphtml.SafeHref(r.URL); r.URL != "" && href != "#" {
		b.WriteString(`<p><a href="` + snaphtml.Escape(href) + `">` + snaphtml.Escape(href) + `</a></p>`)
	}

	if strings.TrimSpace(r.DescriptionMarkup) != "" {
		b.WriteString("<div>" + r.DescriptionMarkup + "</div>")
	} else {
		b.WriteString("<p><em>" + snaphtml.Escape(c.messages.NoDescription) + "</em></p>")
	}

	return c.Convert(b.String())
}
