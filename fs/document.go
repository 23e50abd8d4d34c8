// Package fs provides file-based storage for HTML documents.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/htmlcut"
)

// DefaultSuffix is inserted between the input name and its extension when no
// output path is given.
const DefaultSuffix = "extracted"

// OutputPath derives an output path next to input.
// Example: pages/profile.html → pages/profile.extracted.html
func OutputPath(input, suffix string) string {
	return OutputPathExt(input, suffix, ".html")
}

// OutputPathExt is OutputPath with an explicit extension for the result.
// Example: pages/profile.html, "extracted", ".md" → pages/profile.extracted.md
func OutputPathExt(input, suffix, ext string) string {
	dir := filepath.Dir(input)
	name := filepath.Base(input)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if suffix != "" {
		name += "." + suffix
	}
	return filepath.Join(dir, name+ext)
}

// Ensure Reader implements htmlcut.DocumentReader at compile time.
var _ htmlcut.DocumentReader = (*Reader)(nil)

// Reader reads documents from the local filesystem.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadDocument returns the content of the file at path.
func (r *Reader) ReadDocument(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", htmlcut.Errorf(htmlcut.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", htmlcut.Errorf(htmlcut.EINVALID, "path is a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Ensure Writer implements htmlcut.DocumentWriter at compile time.
var _ htmlcut.DocumentWriter = (*Writer)(nil)

// Writer writes documents to the local filesystem with atomic replace
// semantics. Content goes to a uniquely named temp file in the target
// directory and is renamed into place.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteDocument writes content to path, creating parent directories.
func (w *Writer) WriteDocument(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return htmlcut.Errorf(htmlcut.EINVALID, "output path required")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
