package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/htmlcut"
	"golang.org/x/net/html"
)

// candidateSelector finds elements that look like dialogs: ARIA dialogs,
// <dialog> elements and divs whose generated class names contain modal,
// dialog or popup. Their classes are reported when the configured target is
// missing.
const candidateSelector = `[role="dialog"], [role="alertdialog"], [aria-modal="true"], dialog, ` +
	`div[class*="modal"], div[class*="dialog"], div[class*="popup"]`

// nodeMatcher adapts a predicate to goquery.Matcher.
// MatchAll walks n and its descendants in document order.
type nodeMatcher func(n *html.Node) bool

var _ goquery.Matcher = nodeMatcher(nil)

func (m nodeMatcher) Match(n *html.Node) bool {
	return m(n)
}

func (m nodeMatcher) MatchAll(n *html.Node) []*html.Node {
	var result []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if m(cur) {
			result = append(result, cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return result
}

func (m nodeMatcher) Filter(nodes []*html.Node) []*html.Node {
	var result []*html.Node
	for _, n := range nodes {
		if m(n) {
			result = append(result, n)
		}
	}
	return result
}

// compileMatcher returns the matcher for the configured target. A CSS query
// takes precedence over the compound selector.
func compileMatcher(opts htmlcut.Options) (goquery.Matcher, error) {
	if opts.Query != "" {
		sel, err := cascadia.Compile(opts.Query)
		if err != nil {
			return nil, htmlcut.Errorf(htmlcut.EINVALID, "invalid selector %q: %v", opts.Query, err)
		}
		return sel, nil
	}
	return selectorMatcher(opts.Target), nil
}

// selectorMatcher matches elements satisfying every part of sel.
func selectorMatcher(sel htmlcut.Selector) nodeMatcher {
	tag := sel.TagName()
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != tag {
			return false
		}
		if sel.Class != "" && !hasClass(n, sel.Class) {
			return false
		}
		for _, a := range sel.Attributes {
			val, ok := attr(n, a.Key)
			if !ok || val != a.Val {
				return false
			}
		}
		return true
	}
}

// tagMatcher matches elements whose name is in tags.
func tagMatcher(opts htmlcut.Options) nodeMatcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && opts.Preserves(n.Data)
	}
}

// findTarget returns the first node in document order that m matches, or nil.
func findTarget(doc *goquery.Document, m goquery.Matcher) *html.Node {
	sel := doc.FindMatcher(m).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// candidates returns the distinct class attributes of dialog-like elements.
func candidates(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var result []string
	doc.Find(candidateSelector).Each(func(_ int, s *goquery.Selection) {
		class, exists := s.Attr("class")
		if !exists {
			return
		}
		class = strings.Join(strings.Fields(class), " ")
		if class == "" || seen[class] {
			return
		}
		seen[class] = true
		result = append(result, class)
	})
	return result
}

// attr returns the value of the non-namespaced attribute key.
func attr(n *html.Node, key string) (string, bool) {
	key = strings.ToLower(key)
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	val, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(val) {
		if token == class {
			return true
		}
	}
	return false
}

// contains reports whether n is root or one of its descendants.
func contains(root, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// within reports whether n has an ancestor element named tag.
func within(n *html.Node, tag string) bool {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && cur.Data == tag {
			return true
		}
	}
	return false
}
