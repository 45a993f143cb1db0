package html

import (
	"html/template"
	"io"
	"strings"

	"github.com/fwojciec/snapsearch"
)

var _ snapsearch.ResultsView = (*View)(nil)

// View is the master/detail host page. It records what the search and the
// selection controller render into it and writes the page with Render.
type View struct {
	Messages snapsearch.Messages
	Cards    CardRenderer
	Detail   *DetailRenderer

	// Endpoint, when set, is where the page posts selections. Without it
	// every card's detail is embedded in the page.
	Endpoint  string
	SessionID string

	hasDetail bool
	heading   string
	status    string
	results   []result
	index     map[string]int
	noResults bool
	detail    string
}

type result struct {
	record snapsearch.ListingRecord
	active bool
}

// Option configures a View.
type Option func(*View)

// WithoutDetail builds a page with no detail container.
func WithoutDetail() Option {
	return func(v *View) { v.hasDetail = false }
}

// WithEndpoint makes the page post selections to endpoint.
func WithEndpoint(endpoint string) Option {
	return func(v *View) { v.Endpoint = endpoint }
}

// WithMessages replaces the page texts.
func WithMessages(m snapsearch.Messages) Option {
	return func(v *View) {
		v.Messages = m
		v.Detail = &DetailRenderer{Messages: m}
	}
}

// NewView returns an empty page with a detail container.
func NewView(opts ...Option) *View {
	v := &View{
		Messages:  snapsearch.DefaultMessages(),
		Detail:    NewDetailRenderer(),
		hasDetail: true,
		index:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetHeading sets the query-bound heading.
func (v *View) SetHeading(text string) { v.heading = text }

// SetStatus sets the status line.
func (v *View) SetStatus(text string) { v.status = text }

// AppendResult adds a card after the existing ones.
func (v *View) AppendResult(r snapsearch.ListingRecord) {
	v.noResults = false
	v.index[r.ID] = len(v.results)
	v.results = append(v.results, result{record: r})
}

// ShowNoResults clears the results and shows the placeholders.
func (v *View) ShowNoResults() {
	v.results = nil
	v.index = make(map[string]int)
	v.noResults = true
	if v.hasDetail {
		v.detail = v.Detail.Placeholder()
	}
}

// HasDetail reports whether the page has a detail container.
func (v *View) HasDetail() bool { return v.hasDetail }

// SetActive marks or unmarks the card with id as active.
func (v *View) SetActive(id string, active bool) {
	if i, ok := v.index[id]; ok {
		v.results[i].active = active
	}
}

// ShowDetail renders r into the detail container, if there is one.
func (v *View) ShowDetail(r snapsearch.ListingRecord) {
	if v.hasDetail {
		v.detail = v.Detail.Render(r)
	}
}

// Heading returns the current heading text.
func (v *View) Heading() string { return v.heading }

// Status returns the current status line.
func (v *View) Status() string { return v.status }

// DetailHTML returns the current content of the detail container.
func (v *View) DetailHTML() string { return v.detail }

// ResultsHTML returns the current content of the results container.
func (v *View) ResultsHTML() string {
	if v.noResults {
		return placeholder(v.Messages.NoResults)
	}
	var b strings.Builder
	for _, r := range v.results {
		b.WriteString(v.Cards.Render(r.record, r.active))
	}
	return b.String()
}

type pageData struct {
	Heading   string
	Status    string
	Results   template.HTML
	HasDetail bool
	Detail    template.HTML
	Details   []embeddedDetail
	Endpoint  string
	Session   string
}

type embeddedDetail struct {
	ID   string
	HTML template.HTML
}

// Render writes the whole page to w.
func (v *View) Render(w io.Writer) error {
	data := pageData{
		Heading:   v.heading,
		Status:    v.status,
		Results:   template.HTML(v.ResultsHTML()),
		HasDetail: v.hasDetail,
		Detail:    template.HTML(v.detail),
		Endpoint:  v.Endpoint,
		Session:   v.SessionID,
	}
	if v.hasDetail && v.Endpoint == "" {
		for _, r := range v.results {
			data.Details = append(data.Details, embeddedDetail{
				ID:   r.record.ID,
				HTML: template.HTML(v.Detail.Render(r.record)),
			})
		}
	}
	return pageTemplate.Execute(w, data)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Heading}}</title>
<style>
.box_offer { cursor: pointer; border: 1px solid #ddd; padding: 10px; margin-bottom: 10px; }
.box_offer.sel { border-color: #0D3878; }
.fc_aux { color: #777; }
.fwB { font-weight: bold; }
#contenido { display: flex; gap: 20px; }
#resultados { flex: 1; }
#detalle { flex: 1; }
</style>
</head>
<body>
<h1 id="titulo">{{.Heading}}</h1>
<p id="subtitulo">{{.Status}}</p>
<div id="contenido">
<div id="resultados" data-endpoint="{{.Endpoint}}" data-session="{{.Session}}">{{.Results}}</div>
{{- if .HasDetail}}
<div id="detalle" data-offers-grid-detail-container>{{.Detail}}</div>
{{- end}}
</div>
{{- range .Details}}
<template data-detail-for="{{.ID}}">{{.HTML}}</template>
{{- end}}
<script>
(function () {
  var results = document.getElementById('resultados');
  var detail = document.getElementById('detalle');
  var endpoint = results.getAttribute('data-endpoint');
  var session = results.getAttribute('data-session');

  function suppress(e) {
    if (e.target.closest('a')) {
      e.preventDefault();
    }
  }

  if (detail) {
    detail.addEventListener('click', suppress);
  }

  results.addEventListener('click', function (e) {
    suppress(e);
    var card = e.target.closest('[data-id]');
    if (!card || card.classList.contains('sel')) {
      return;
    }
    var prev = results.querySelector('.sel');
    if (prev) {
      prev.classList.remove('sel');
    }
    card.classList.add('sel');
    if (!detail) {
      return;
    }
    if (!endpoint) {
      var tpl = document.querySelector('template[data-detail-for="' + card.getAttribute('data-id') + '"]');
      detail.innerHTML = tpl ? tpl.innerHTML : '';
      return;
    }
    var body = new URLSearchParams();
    body.set('session', session);
    body.set('id', card.getAttribute('data-id'));
    body.set('payload', card.getAttribute('data-record'));
    fetch(endpoint, { method: 'POST', body: body, cache: 'no-store' }).then(function (res) {
      if (res.status === 200) {
        return res.text().then(function (html) { detail.innerHTML = html; });
      }
    });
  });
})();
</script>
</body>
</html>
`))
