package snapsearch

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

// DefaultMaxPages is the safety ceiling on pages walked per region.
const DefaultMaxPages = 50

// PageExt is the file extension of snapshot pages.
const PageExt = "html"

// SourceRegion is one partition of the snapshot dataset with its own
// page sequence.
type SourceRegion struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Validate returns an error if the region contains invalid fields.
func (r SourceRegion) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "region name required")
	}
	if r.Slug == "" {
		return Errorf(EINVALID, "region slug required")
	}
	if strings.ContainsAny(r.Slug, "/\\?#") {
		return Errorf(EINVALID, "region slug %q must not contain path or URL separators", r.Slug)
	}
	return nil
}

// DefaultRegions returns the built-in region catalogue in search order.
func DefaultRegions() []SourceRegion {
	return []SourceRegion{
		{Name: "Buenos Aires", Slug: "buenos_aires"},
		{Name: "Córdoba", Slug: "cordoba"},
		{Name: "Mendoza", Slug: "mendoza"},
	}
}

// Config is the configuration surface of a search: where the snapshots
// live, which regions to walk and in which order, and the page ceiling.
type Config struct {
	Base     string
	MaxPages int
	Regions  []SourceRegion
}

// DefaultConfig returns a Config with the built-in regions and ceiling.
func DefaultConfig() *Config {
	return &Config{
		MaxPages: DefaultMaxPages,
		Regions:  DefaultRegions(),
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive, got %d", c.MaxPages)
	}
	if len(c.Regions) == 0 {
		return Errorf(EINVALID, "at least one region required")
	}
	seen := make(map[string]bool, len(c.Regions))
	for _, r := range c.Regions {
		if err := r.Validate(); err != nil {
			return err
		}
		if seen[r.Slug] {
			return Errorf(EINVALID, "duplicate region slug %q", r.Slug)
		}
		seen[r.Slug] = true
	}
	return nil
}

// PageAddress identifies one snapshot page. It is derived on demand and
// never stored.
type PageAddress struct {
	Base   string
	Region string // region slug
	Page   int
}

// String renders the address as {base}/{slug}/{slug}_p{page}.html.
// An empty base yields a relative address.
func (a PageAddress) String() string {
	rel := a.Region + "/" + a.Region + "_p" + strconv.Itoa(a.Page) + "." + PageExt
	if a.Base == "" {
		return rel
	}
	return strings.TrimSuffix(a.Base, "/") + "/" + rel
}

// ResolveBase turns either a host document location (".../data/busqueda.html")
// or a fixed root (".../data" or ".../data/") into the snapshot base.
// http(s) and file URLs keep their scheme; only the path is resolved.
// A last path segment containing a dot is treated as a document and dropped.
func ResolveBase(ref string) string {
	ref = strings.TrimSpace(ref)
	if u, err := url.Parse(ref); err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https") {
		u.Path = resolveBasePath(u.Path)
		u.RawPath = ""
		u.RawQuery = ""
		u.Fragment = ""
		return u.String()
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme == "file" {
		return "file://" + u.Host + resolveBasePath(u.Path)
	}
	return resolveBasePath(ref)
}

func resolveBasePath(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return p
	}
	if strings.Contains(path.Base(p), ".") {
		dir := path.Dir(p)
		if dir == "." {
			return ""
		}
		if dir == "/" {
			return dir
		}
		return dir + "/"
	}
	return p
}
