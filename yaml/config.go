// Package yaml loads and writes the region catalogue as YAML.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/snapsearch"
	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of a catalogue.
//
//	base: https://example.com/data/
//	max_pages: 50
//	regions:
//	  - name: Buenos Aires
//	    slug: buenos_aires
type file struct {
	Base     string   `yaml:"base,omitempty"`
	MaxPages int      `yaml:"max_pages,omitempty"`
	Regions  []region `yaml:"regions"`
}

type region struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// LoadConfig reads and validates the catalogue at path.
func LoadConfig(path string) (*snapsearch.Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, snapsearch.Errorf(snapsearch.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	return ParseConfig(bytes.NewReader(b))
}

// ParseConfig decodes a catalogue. Omitted max_pages and regions fall back
// to the built-in defaults; unknown keys are rejected.
func ParseConfig(r io.Reader) (*snapsearch.Config, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, snapsearch.Errorf(snapsearch.EINVALID, "invalid config: %v", err)
	}

	cfg := snapsearch.DefaultConfig()
	cfg.Base = f.Base
	if f.MaxPages != 0 {
		cfg.MaxPages = f.MaxPages
	}
	if len(f.Regions) > 0 {
		cfg.Regions = make([]snapsearch.SourceRegion, len(f.Regions))
		for i, r := range f.Regions {
			cfg.Regions[i] = snapsearch.SourceRegion{Name: r.Name, Slug: r.Slug}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncodeConfig writes cfg in the layout ParseConfig reads.
func EncodeConfig(w io.Writer, cfg *snapsearch.Config) error {
	f := file{
		Base:     cfg.Base,
		MaxPages: cfg.MaxPages,
		Regions:  make([]region, len(cfg.Regions)),
	}
	for i, r := range cfg.Regions {
		f.Regions[i] = region{Name: r.Name, Slug: r.Slug}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return err
	}
	return enc.Close()
}
