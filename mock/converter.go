package mock

import "github.com/fwojciec/snapsearch"

var _ snapsearch.Converter = (*Converter)(nil)

// Converter is a mock implementation of snapsearch.Converter.
type Converter struct {
	ConvertFn       func(html string) (string, error)
	ConvertRecordFn func(r snapsearch.ListingRecord) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

func (c *Converter) ConvertRecord(r snapsearch.ListingRecord) (string, error) {
	return c.ConvertRecordFn(r)
}
