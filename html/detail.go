package html

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/snapsearch"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	sectionLine = regexp.MustCompile(`(?i)^(Descripción|Responsabilidades|Requisitos|Principales|Perfil|La empresa ofrece|Funciones|Sobre|Requerimientos)`)
	infoLine    = regexp.MustCompile(`(?i)(A convenir|Jornada|Contrato|Presencial|Eventual|Indeterminado|Completa|Turnos|Part time)`)
	dashBullet  = regexp.MustCompile(`^\s*-\s*`)
)

// infoLineMax is the length under which a contract keyword line is shown
// in bold.
const infoLineMax = 25

// Bullet replaces a leading "-" or "*" in description lines.
const Bullet = "• "

// DetailRenderer renders the detail pane of a selected record.
type DetailRenderer struct {
	Messages snapsearch.Messages
}

// NewDetailRenderer returns a DetailRenderer with the default messages.
func NewDetailRenderer() *DetailRenderer {
	return &DetailRenderer{Messages: snapsearch.DefaultMessages()}
}

// Render returns the detail markup for r: a header with title, company,
// place and a disabled apply button, followed by the description. Without
// a description the fixed placeholder is shown instead.
func (d *DetailRenderer) Render(r snapsearch.ListingRecord) string {
	var b strings.Builder
	b.WriteString(`<div class="box_border detalle" data-id="` + Escape(r.ID) + `">`)
	b.WriteString(`<h1 class="fs22 fwB">` + Escape(r.Title) + `</h1>`)
	b.WriteString(`<p class="fwB">` + Escape(r.Company) + `</p>`)
	b.WriteString(`<p>` + Escape(r.Place) + `</p>`)
	b.WriteString(`<div class="acciones"><button type="button" disabled aria-disabled="true">`)
	b.WriteString(Escape(d.Messages.Apply))
	b.WriteString(`</button></div>`)
	b.WriteString(`<div class="descripcion">`)

	body := d.description(r.DescriptionMarkup)
	if body == "" {
		body = placeholder(d.Messages.NoDescription)
	}
	b.WriteString(body)

	b.WriteString(`</div></div>`)
	return b.String()
}

// RenderPayload decodes a card payload and renders its detail. A payload
// that cannot be decoded renders the "could not load" message.
func (d *DetailRenderer) RenderPayload(payload string) string {
	r, err := snapsearch.DecodeRecordPayload(payload)
	if err != nil {
		return placeholder(d.Messages.DetailUnavailable)
	}
	return d.Render(r)
}

// Placeholder renders the detail placeholder shown when there are no
// results.
func (d *DetailRenderer) Placeholder() string {
	return placeholder(d.Messages.NoDetail)
}

// description re-renders each paragraph of markup on its own. Only text
// survives, except for links in plain paragraphs, which are kept disabled.
// Paragraphs, list items, other block elements and line breaks all end a
// line, so loose text between them is kept as lines of its own.
func (d *DetailRenderer) description(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return ""
	}

	var sp splitter
	for _, n := range nodes {
		sp.walk(n)
	}
	sp.flush()

	var b strings.Builder
	for _, l := range sp.lines {
		writeLine(&b, l.text, l.p)
	}
	return b.String()
}

// line is one description line. p is set when the line is a whole <p>.
type line struct {
	text string
	p    *html.Node
}

// splitter cuts a parsed fragment into lines at block boundaries.
type splitter struct {
	lines   []line
	pending strings.Builder
	bullet  bool
}

func (s *splitter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		s.pending.WriteString(n.Data)
		return
	case html.ElementNode:
		switch {
		case n.DataAtom == atom.Script || n.DataAtom == atom.Style || n.DataAtom == atom.Noscript:
			return
		case n.DataAtom == atom.Br:
			s.pending.WriteString("\n")
			return
		case n.DataAtom == atom.P:
			s.flush()
			if text := cleanText(textContent(n)); text != "" {
				s.lines = append(s.lines, line{text: text, p: n})
			}
			return
		case n.DataAtom == atom.Li:
			s.flush()
			s.bullet = true
			s.children(n)
			s.flush()
			return
		case blockElements[n.DataAtom]:
			s.flush()
			s.children(n)
			s.flush()
			return
		}
	}
	s.children(n)
}

func (s *splitter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.walk(c)
	}
}

// flush turns the pending loose text into lines. The first line of a list
// item gets a dash so it renders as a bullet.
func (s *splitter) flush() {
	for _, raw := range strings.Split(s.pending.String(), "\n") {
		text := cleanText(raw)
		if text == "" {
			continue
		}
		if s.bullet {
			if !dashBullet.MatchString(text) && !strings.HasPrefix(text, "*") {
				text = "- " + text
			}
			s.bullet = false
		}
		s.lines = append(s.lines, line{text: text})
	}
	s.pending.Reset()
}

var blockElements = map[atom.Atom]bool{
	atom.Div: true, atom.Ul: true, atom.Ol: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Section: true, atom.Article: true, atom.Blockquote: true, atom.Pre: true,
	atom.Table: true, atom.Tr: true, atom.Td: true, atom.Th: true, atom.Hr: true,
}

// writeLine renders one description line. p, when set, is the paragraph
// the line came from and is used to keep its links.
func writeLine(b *strings.Builder, line string, p *html.Node) {
	switch {
	case line == "":
	case sectionLine.MatchString(line):
		b.WriteString(`<h3>` + Escape(line) + `</h3>`)
	case dashBullet.MatchString(line):
		b.WriteString(`<p>` + Bullet + Escape(dashBullet.ReplaceAllString(line, "")) + `</p>`)
	case strings.HasPrefix(line, "*"):
		b.WriteString(`<p>` + Bullet + Escape(strings.TrimSpace(strings.ReplaceAll(line, "*", ""))) + `</p>`)
	case utf8.RuneCountInString(line) < infoLineMax && infoLine.MatchString(line):
		b.WriteString(`<p class="fwB">` + Escape(line) + `</p>`)
	case p != nil && hasLink(p):
		b.WriteString(`<p>`)
		writeInline(b, p)
		b.WriteString(`</p>`)
	default:
		b.WriteString(`<p>` + Escape(line) + `</p>`)
	}
}

// writeInline renders the children of n as escaped text, keeping links
// neutralized and basic emphasis.
func writeInline(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(Escape(c.Data))
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
			case atom.A:
				b.WriteString(`<a href="#" data-href="` + Escape(SafeHref(attr(c, "href"))) + `" data-disabled="true">`)
				writeInline(b, c)
				b.WriteString(`</a>`)
			case atom.Br:
				b.WriteString(`<br>`)
			case atom.Strong, atom.B, atom.Em, atom.I:
				b.WriteString(`<` + c.Data + `>`)
				writeInline(b, c)
				b.WriteString(`</` + c.Data + `>`)
			default:
				writeInline(b, c)
			}
		}
	}
}

func hasLink(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.A || hasLink(c)) {
			return true
		}
	}
	return false
}

// textContent returns the text under n without script and style contents.
// Line breaks become newlines.
func textContent(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript:
			return ""
		case atom.Br:
			return "\n"
		}
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
