package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlcut"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skeleton is the empty document the rebuild strategy fills in.
const skeleton = "<!DOCTYPE html><html><head></head><body></body></html>"

// rebuild copies the preserved resources and the target subtree into a new
// minimal document. The source tree is never modified.
//
// Resources from the original head go to the new head in order. Resources
// found elsewhere go to the new head too, except scripts, which are appended
// to the body after the target container.
func (e *Extractor) rebuild(doc *goquery.Document, target *html.Node, res *htmlcut.Result) (*html.Node, error) {
	out, err := html.Parse(strings.NewReader(skeleton))
	if err != nil {
		return nil, htmlcut.Errorf(htmlcut.ERECONSTRUCT, "failed to create document: %v", err)
	}
	outDoc := goquery.NewDocumentFromNode(out)
	head := outDoc.Find("head").First()
	body := outDoc.Find("body").First()
	if head.Length() == 0 || body.Length() == 0 {
		return nil, htmlcut.Errorf(htmlcut.ERECONSTRUCT, "document skeleton lacks head or body")
	}
	headNode, bodyNode := head.Get(0), body.Get(0)

	tokens := subtreeTokens(target)

	var scripts []*html.Node
	for _, r := range collect(doc, target, e.opts) {
		cp, err := copyNode(r.node)
		if err != nil {
			res.Skipped++
			e.opts.Emit(htmlcut.Event{Type: htmlcut.EventResourceSkipped, Tag: r.node.Data, Err: err})
			continue
		}
		if !e.prepare(cp, tokens, res) {
			continue
		}
		if !r.inHead && cp.Data == "script" {
			scripts = append(scripts, cp)
			continue
		}
		headNode.AppendChild(cp)
		res.Preserved++
		e.opts.Emit(htmlcut.Event{Type: htmlcut.EventResourceCopied, Tag: cp.Data})
	}

	targetCopy, err := copyNode(target)
	if err != nil {
		return nil, htmlcut.Errorf(htmlcut.ERECONSTRUCT, "failed to copy target: %v", err)
	}

	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	if e.opts.WrapperClass != "" {
		container.Attr = []html.Attribute{{Key: "class", Val: e.opts.WrapperClass}}
	}
	container.AppendChild(targetCopy)
	bodyNode.AppendChild(container)

	for _, s := range scripts {
		bodyNode.AppendChild(s)
		res.Preserved++
		e.opts.Emit(htmlcut.Event{Type: htmlcut.EventResourceCopied, Tag: s.Data})
	}

	return out, nil
}
