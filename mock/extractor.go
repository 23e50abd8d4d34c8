package mock

import "github.com/fwojciec/htmlcut"

var _ htmlcut.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of htmlcut.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*htmlcut.Result, error)
}

func (e *Extractor) Extract(html string) (*htmlcut.Result, error) {
	return e.ExtractFn(html)
}

var _ htmlcut.StyleFilter = (*StyleFilter)(nil)

// StyleFilter is a mock implementation of htmlcut.StyleFilter.
type StyleFilter struct {
	FilterFn func(css string, tokens map[string]bool) (string, error)
}

func (f *StyleFilter) Filter(css string, tokens map[string]bool) (string, error) {
	return f.FilterFn(css, tokens)
}
