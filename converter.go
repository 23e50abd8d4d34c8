package htmlcut

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input is typically the extracted target subtree.
	Convert(html string) (string, error)
}
