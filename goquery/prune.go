package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlcut"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// prune reduces doc in place to the path from the root to target, then puts
// the preserved resources back.
//
// Resources are detached into an owned list before anything is removed, and
// every level's siblings are snapshotted before removal, so no node that is
// still referenced gets unlinked under a caller. Doctype nodes survive. The
// head element is kept as a shell for the preserved styles.
func (e *Extractor) prune(doc *goquery.Document, target *html.Node, res *htmlcut.Result) (*html.Node, error) {
	root := doc.Get(0)
	tokens := subtreeTokens(target)

	preserved := collect(doc, target, e.opts)
	for _, r := range preserved {
		detach(r.node)
	}

	var head *html.Node
	for cur := target; cur.Parent != nil; cur = cur.Parent {
		parent := cur.Parent
		for _, sib := range children(parent) {
			switch {
			case sib == cur, sib.Type == html.DoctypeNode:
			case sib.Type == html.ElementNode && sib.DataAtom == atom.Head:
				for _, c := range children(sib) {
					sib.RemoveChild(c)
				}
				head = sib
			default:
				parent.RemoveChild(sib)
			}
		}
	}
	if head == nil {
		head = ancestor(target, atom.Head)
	}

	body := ancestor(target, atom.Body)
	if body == nil {
		body = &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
		parent := ancestor(target, atom.Html)
		if parent == nil {
			parent = root
		}
		parent.AppendChild(body)
	}

	for _, r := range preserved {
		n := r.node
		if !e.prepare(n, tokens, res) {
			continue
		}
		if head != nil && (n.Data == "style" || n.Data == "link") {
			head.AppendChild(n)
		} else {
			body.AppendChild(n)
		}
		res.Preserved++
		e.opts.Emit(htmlcut.Event{Type: htmlcut.EventResourceCopied, Tag: n.Data})
	}

	return root, nil
}

// ancestor returns the nearest ancestor of n (or n itself) with the given atom.
func ancestor(n *html.Node, a atom.Atom) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && cur.DataAtom == a {
			return cur
		}
	}
	return nil
}
