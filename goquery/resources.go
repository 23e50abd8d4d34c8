package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlcut"
	"golang.org/x/net/html"
)

// resource is a preserved node together with where it was found.
type resource struct {
	node   *html.Node
	inHead bool
}

// collect returns the preserved resource nodes of doc in document order.
// Resources inside target are left alone: they travel with the target.
func collect(doc *goquery.Document, target *html.Node, opts htmlcut.Options) []resource {
	var result []resource
	doc.FindMatcher(tagMatcher(opts)).Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if contains(target, n) {
			return
		}
		// Custom tag sets may nest; the outer node already carries the inner one.
		if len(result) > 0 && contains(result[len(result)-1].node, n) {
			return
		}
		result = append(result, resource{node: n, inHead: within(n, "head")})
	})
	return result
}

// subtreeTokens returns the class (".x") and id ("#y") tokens used in the
// subtree rooted at n.
func subtreeTokens(n *html.Node) map[string]bool {
	tokens := make(map[string]bool)
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.ElementNode {
			if class, ok := attr(cur, "class"); ok {
				for _, c := range strings.Fields(class) {
					tokens["."+c] = true
				}
			}
			if id, ok := attr(cur, "id"); ok && id != "" {
				tokens["#"+id] = true
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return tokens
}

// dropped reports whether a script resource matches one of the configured
// drop patterns.
func dropped(n *html.Node, patterns []string) bool {
	if n.Data != "script" || len(patterns) == 0 {
		return false
	}
	src, _ := attr(n, "src")
	text := textContent(n)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(src, p) || strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// filterStyle rewrites the text of a style node with the relevant rules only.
// The node is left untouched when filtering fails.
func filterStyle(n *html.Node, filter htmlcut.StyleFilter, tokens map[string]bool) (before, after int, err error) {
	css := textContent(n)
	filtered, err := filter.Filter(css, tokens)
	if err != nil {
		return len(css), len(css), err
	}
	setText(n, filtered)
	return len(css), len(filtered), nil
}

// prepare applies the optional script dropping and style filtering to a
// resource that is about to enter the output. It returns false when the
// resource must be left out.
func (e *Extractor) prepare(n *html.Node, tokens map[string]bool, res *htmlcut.Result) bool {
	if dropped(n, e.opts.DropScripts) {
		res.Dropped++
		src, _ := attr(n, "src")
		e.opts.Emit(htmlcut.Event{Type: htmlcut.EventResourceDropped, Tag: n.Data, Detail: src})
		return false
	}

	if n.Data == "style" && e.opts.RelevantCSS && e.styles != nil {
		before, after, err := filterStyle(n, e.styles, tokens)
		if err != nil {
			e.opts.Emit(htmlcut.Event{Type: htmlcut.EventResourceSkipped, Tag: n.Data, Detail: "style filter failed, kept unfiltered", Err: err})
		} else {
			e.opts.Emit(htmlcut.Event{Type: htmlcut.EventStyleFiltered, Tag: n.Data, Detail: fmt.Sprintf("%d -> %d bytes", before, after)})
		}
	}
	return true
}
