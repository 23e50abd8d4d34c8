package mock

import (
	"context"

	"github.com/fwojciec/htmlcut"
)

var _ htmlcut.DocumentReader = (*DocumentReader)(nil)

// DocumentReader is a mock implementation of htmlcut.DocumentReader.
type DocumentReader struct {
	ReadDocumentFn func(ctx context.Context, path string) (string, error)
}

func (r *DocumentReader) ReadDocument(ctx context.Context, path string) (string, error) {
	return r.ReadDocumentFn(ctx, path)
}

var _ htmlcut.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of htmlcut.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, path, content string) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, path, content string) error {
	return w.WriteDocumentFn(ctx, path, content)
}
