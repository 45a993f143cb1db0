package snapsearch

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// ListingRecord is the structured form of one listing extracted from a
// snapshot page. Records are passed by value and never modified after the
// walker attaches their ID and region.
type ListingRecord struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Company           string `json:"company"`
	Place             string `json:"place"`
	PostedAt          string `json:"postedAt"`
	URL               string `json:"url"`
	DescriptionMarkup string `json:"descriptionMarkup"`
	SourceRegionSlug  string `json:"sourceRegionSlug"`

	// Text is the flattened text of the whole listing fragment.
	Text string `json:"-"`
}

// FlatText returns the text the match filter runs against. Records built
// without a fragment fall back to their joined text fields; description
// markup is left out so tag names never match.
func (r ListingRecord) FlatText() string {
	if r.Text != "" {
		return r.Text
	}
	return strings.Join([]string{r.Title, r.Company, r.Place, r.PostedAt}, " ")
}

// Matches reports whether the record's flattened text contains queryLower.
// No tokenization or ranking: a single case-insensitive substring test.
func Matches(r ListingRecord, queryLower string) bool {
	return strings.Contains(strings.ToLower(r.FlatText()), queryLower)
}

// NeutralizeLink rewrites a link target found inside a region's snapshot so
// it resolves against that region's local folder. Absolute URLs,
// protocol-relative URLs, in-page anchors and targets already scoped to the
// region folder are returned unchanged.
//
//	/ofertas-de-trabajo/123 → buenos_aires/ofertas-de-trabajo/123
func NeutralizeLink(href, regionSlug string) string {
	trimmed := strings.TrimSpace(href)
	switch {
	case trimmed == "", regionSlug == "":
		return href
	case strings.HasPrefix(trimmed, "#"), strings.HasPrefix(trimmed, "//"):
		return href
	case isAbsoluteURL(trimmed):
		return href
	}

	local := strings.TrimPrefix(trimmed, "./")
	if strings.HasPrefix(local, regionSlug+"/") || strings.HasPrefix(local, "/"+regionSlug+"/") {
		return href
	}
	return regionSlug + "/" + strings.TrimLeft(local, "/")
}

// isAbsoluteURL reports whether s starts with a URL scheme.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		// Unparseable targets with a scheme-like prefix are left alone.
		i := strings.Index(s, ":")
		return i > 0 && !strings.ContainsAny(s[:i], "/?#")
	}
	return u.Scheme != ""
}

// payloadVersion is the schema version of RecordPayload.
const payloadVersion = 1

// RecordPayload is the schema of a record serialized into a card attribute
// so it can be recovered without another fetch.
type RecordPayload struct {
	Version           int    `json:"v"`
	ID                string `json:"id"`
	Title             string `json:"title"`
	Company           string `json:"company"`
	Place             string `json:"place"`
	PostedAt          string `json:"postedAt"`
	URL               string `json:"url"`
	DescriptionMarkup string `json:"descriptionMarkup"`
	Region            string `json:"region"`
}

// EncodeRecordPayload serializes a record as percent-encoded JSON.
func EncodeRecordPayload(r ListingRecord) string {
	b, err := json.Marshal(RecordPayload{
		Version:           payloadVersion,
		ID:                r.ID,
		Title:             r.Title,
		Company:           r.Company,
		Place:             r.Place,
		PostedAt:          r.PostedAt,
		URL:               r.URL,
		DescriptionMarkup: r.DescriptionMarkup,
		Region:            r.SourceRegionSlug,
	})
	if err != nil {
		// Only strings are marshaled; this cannot fail.
		return ""
	}
	return url.QueryEscape(string(b))
}

// DecodeRecordPayload is the inverse of EncodeRecordPayload. It fails closed:
// any decoding problem, unknown field, trailing data, version mismatch or
// missing ID returns EMALFORMED.
func DecodeRecordPayload(s string) (ListingRecord, error) {
	raw, err := url.QueryUnescape(s)
	if err != nil {
		return ListingRecord{}, Errorf(EMALFORMED, "record payload is not percent-encoded: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var p RecordPayload
	if err := dec.Decode(&p); err != nil {
		return ListingRecord{}, Errorf(EMALFORMED, "record payload is not valid JSON: %v", err)
	}
	if dec.More() {
		return ListingRecord{}, Errorf(EMALFORMED, "record payload has trailing data")
	}
	if p.Version != payloadVersion {
		return ListingRecord{}, Errorf(EMALFORMED, "unsupported record payload version %d", p.Version)
	}
	if p.ID == "" {
		return ListingRecord{}, Errorf(EMALFORMED, "record payload ID required")
	}

	return ListingRecord{
		ID:                p.ID,
		Title:             p.Title,
		Company:           p.Company,
		Place:             p.Place,
		PostedAt:          p.PostedAt,
		URL:               p.URL,
		DescriptionMarkup: p.DescriptionMarkup,
		SourceRegionSlug:  p.Region,
	}, nil
}
