// Package goquery implements htmlcut.Extractor on top of goquery and
// golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlcut"
	"golang.org/x/net/html"
)

// Ensure Extractor implements htmlcut.Extractor at compile time.
var _ htmlcut.Extractor = (*Extractor)(nil)

// Extractor locates the target subtree and produces the minimal document
// using the configured strategy. It holds no per-call state and is safe for
// concurrent use as long as OnEvent is.
type Extractor struct {
	opts    htmlcut.Options
	matcher goquery.Matcher
	styles  htmlcut.StyleFilter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStyleFilter sets the filter used when Options.RelevantCSS is enabled.
func WithStyleFilter(f htmlcut.StyleFilter) Option {
	return func(e *Extractor) {
		e.styles = f
	}
}

// NewExtractor validates opts and returns an Extractor.
func NewExtractor(opts htmlcut.Options, options ...Option) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	matcher, err := compileMatcher(opts)
	if err != nil {
		return nil, err
	}

	e := &Extractor{opts: opts, matcher: matcher}
	for _, opt := range options {
		opt(e)
	}
	return e, nil
}

// Extract parses rawHTML, extracts the target and serializes the result.
// When no target matches, the result carries rawHTML unchanged.
func (e *Extractor) Extract(rawHTML string) (*htmlcut.Result, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, htmlcut.Errorf(htmlcut.EPARSE, "failed to parse HTML: %v", err)
	}

	out, res, err := e.ExtractNode(doc)
	if err != nil {
		return nil, err
	}

	if res.Outcome == htmlcut.OutcomePassThrough {
		res.HTML = rawHTML
		return res, nil
	}

	res.HTML, err = renderNode(out)
	if err != nil {
		return nil, htmlcut.Errorf(htmlcut.ERECONSTRUCT, "failed to render document: %v", err)
	}
	return res, nil
}

// ExtractNode runs the extraction on an already parsed document.
//
// The rebuild strategy leaves doc untouched and returns a new, independent
// tree. The prune strategy mutates doc and returns it. On pass-through doc is
// returned unchanged with Result.HTML left empty.
func (e *Extractor) ExtractNode(doc *html.Node) (*html.Node, *htmlcut.Result, error) {
	if doc == nil {
		return nil, nil, htmlcut.Errorf(htmlcut.EINVALID, "document required")
	}

	gdoc := goquery.NewDocumentFromNode(doc)
	res := &htmlcut.Result{}

	target := findTarget(gdoc, e.matcher)
	if target == nil {
		res.Outcome = htmlcut.OutcomePassThrough
		res.Candidates = candidates(gdoc)
		e.opts.Emit(htmlcut.Event{Type: htmlcut.EventTargetNotFound, Detail: e.describeTarget()})
		for _, c := range res.Candidates {
			e.opts.Emit(htmlcut.Event{Type: htmlcut.EventCandidate, Detail: c})
		}
		return doc, res, nil
	}

	e.opts.Emit(htmlcut.Event{Type: htmlcut.EventTargetFound, Tag: target.Data, Detail: e.describeTarget()})

	var (
		out *html.Node
		err error
	)
	switch e.opts.Strategy {
	case htmlcut.StrategyPrune:
		out, err = e.prune(gdoc, target, res)
	default:
		out, err = e.rebuild(gdoc, target, res)
	}
	if err != nil {
		return nil, nil, err
	}

	res.Outcome = htmlcut.OutcomeExtracted
	res.TargetHTML, err = goquery.OuterHtml(goquery.NewDocumentFromNode(target).Selection)
	if err != nil {
		return nil, nil, htmlcut.Errorf(htmlcut.ERECONSTRUCT, "failed to render target: %v", err)
	}
	return out, res, nil
}

func (e *Extractor) describeTarget() string {
	if e.opts.Query != "" {
		return e.opts.Query
	}
	return e.opts.Target.String()
}
