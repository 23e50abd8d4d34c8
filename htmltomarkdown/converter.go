// Package htmltomarkdown renders extracted dialog subtrees as Markdown.
//
// Dialog markup carries interactive chrome (close buttons, icon SVGs,
// focus-trap sentinels marked aria-hidden) that reads as noise in a text
// export. The converter strips that chrome with goquery before handing the
// remaining content to html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlcut"
)

// Ensure Converter implements htmlcut.Converter at compile time.
var _ htmlcut.Converter = (*Converter)(nil)

// chromeSelector matches dialog controls and decorations with no text value.
const chromeSelector = `button, svg, template, noscript, [aria-hidden="true"], [data-focus-guard]`

// Converter turns an extracted dialog, or a whole page on pass-through, into
// CommonMark with GitHub-style tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert strips dialog chrome from html and renders the rest as Markdown.
// Head content is not rendered.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", htmlcut.Errorf(htmlcut.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", htmlcut.Errorf(htmlcut.EPARSE, "failed to parse HTML: %v", err)
	}
	doc.Find(chromeSelector).Remove()

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", htmlcut.Errorf(htmlcut.EINTERNAL, "failed to render HTML: %v", err)
	}

	md, err := c.conv.ConvertString(body)
	if err != nil {
		return "", htmlcut.Errorf(htmlcut.EINTERNAL, "failed to convert to Markdown: %v", err)
	}
	return md, nil
}
