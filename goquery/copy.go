package goquery

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
)

// copyNode returns a deep copy of n. The copy and all of its descendants are
// fresh nodes with no links into the source tree.
func copyNode(n *html.Node) (*html.Node, error) {
	switch n.Type {
	case html.ErrorNode, html.DocumentNode:
		return nil, fmt.Errorf("cannot copy node of type %d", n.Type)
	}

	cp := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		cp.Attr = make([]html.Attribute, len(n.Attr))
		copy(cp.Attr, n.Attr)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cc, err := copyNode(c)
		if err != nil {
			return nil, err
		}
		cp.AppendChild(cc)
	}
	return cp, nil
}

// children returns a snapshot of n's children, safe to iterate while removing.
func children(n *html.Node) []*html.Node {
	var result []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		result = append(result, c)
	}
	return result
}

// detach removes n from its parent, if it has one.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// textContent concatenates the text children of n.
func textContent(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	}
	return buf.String()
}

// setText replaces the children of n with a single text node.
func setText(n *html.Node, text string) {
	for _, c := range children(n) {
		n.RemoveChild(c)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
