package mock

import "github.com/fwojciec/htmlcut"

var _ htmlcut.Converter = (*Converter)(nil)

// Converter is a mock implementation of htmlcut.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
