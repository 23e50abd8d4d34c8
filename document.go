package htmlcut

import "context"

// DocumentReader loads raw HTML from storage.
type DocumentReader interface {
	// ReadDocument returns the content at path.
	// Returns ENOTFOUND if nothing exists at path.
	ReadDocument(ctx context.Context, path string) (string, error)
}

// DocumentWriter persists output documents.
type DocumentWriter interface {
	// WriteDocument stores content at path. Implementations must not leave
	// a partially written document behind on failure.
	WriteDocument(ctx context.Context, path string, content string) error
}
