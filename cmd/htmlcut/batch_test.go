package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/htmlcut"
	main "github.com/fwojciec/htmlcut/cmd/htmlcut"
	"github.com/fwojciec/htmlcut/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes one output per input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, dir, "a.html", page)
		b := writeFile(t, dir, "b.html", `<p>plain</p>`)

		stdout, stderr, err := run(t, "batch", a, b)

		require.NoError(t, err)
		assert.Equal(t, rebuilt, readFile(t, filepath.Join(dir, "a.extracted.html")))
		assert.Equal(t, `<p>plain</p>`, readFile(t, filepath.Join(dir, "b.extracted.html")))
		assert.Contains(t, stdout, "Processed 2 files: 1 extracted, 1 passed through, 0 failed")
		assert.Contains(t, stderr, "a.html extracted")
		assert.Contains(t, stderr, "b.html pass-through")
	})

	t.Run("honours suffix and output directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, dir, "a.html", page)
		outDir := filepath.Join(dir, "out")

		_, _, err := run(t, "batch", "--suffix", "cut", "--out-dir", outDir, "--strategy", "prune", a)

		require.NoError(t, err)
		assert.Equal(t, pruned, readFile(t, filepath.Join(outDir, "a.cut.html")))
	})

	t.Run("reports failures and returns an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, dir, "a.html", page)
		missing := filepath.Join(dir, "missing.html")

		stdout, stderr, err := run(t, "batch", a, missing)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 files failed")
		assert.Contains(t, stderr, "missing.html failed: file not found")
		assert.Contains(t, stdout, "1 extracted, 0 passed through, 1 failed")
		assert.Equal(t, rebuilt, readFile(t, filepath.Join(dir, "a.extracted.html")))
	})

	t.Run("rejects inputs that map to the same output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0755))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0755))
		a := writeFile(t, filepath.Join(dir, "a"), "page.html", page)
		b := writeFile(t, filepath.Join(dir, "b"), "page.html", `<p>plain</p>`)
		outDir := filepath.Join(dir, "out")

		stdout, stderr, err := run(t, "batch", "--out-dir", outDir, a, b)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 files failed")
		assert.Contains(t, stdout, "1 extracted, 0 passed through, 1 failed")
		assert.Contains(t, stderr, "is already written by")
		assert.Equal(t, rebuilt, readFile(t, filepath.Join(outDir, "page.extracted.html")))
		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("uses injected storage", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		written := map[string]string{}
		m := &main.Main{
			Reader: &mock.DocumentReader{
				ReadDocumentFn: func(_ context.Context, path string) (string, error) {
					return page, nil
				},
			},
			Writer: &mock.DocumentWriter{
				WriteDocumentFn: func(_ context.Context, path, content string) error {
					mu.Lock()
					defer mu.Unlock()
					written[path] = content
					return nil
				},
			},
		}

		var stdout, stderr bytes.Buffer
		err := m.Run(context.Background(), []string{"batch", "--markdown", "x.html", "y.html"}, &stdout, &stderr)

		require.NoError(t, err)
		require.Len(t, written, 2)
		assert.Contains(t, written["x.extracted.md"], "Hi")
		assert.Contains(t, written["y.extracted.md"], "Hi")
	})

	t.Run("requires inputs", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "batch")

		require.Error(t, err)
	})

	t.Run("rejects invalid options before reading", func(t *testing.T) {
		t.Parallel()

		m := &main.Main{
			Reader: &mock.DocumentReader{
				ReadDocumentFn: func(context.Context, string) (string, error) {
					t.Fatal("reader must not be called")
					return "", nil
				},
			},
		}

		var stdout, stderr bytes.Buffer
		err := m.Run(context.Background(), []string{"batch", "--preserve", " ", "x.html"}, &stdout, &stderr)

		assert.Equal(t, htmlcut.EINVALID, htmlcut.ErrorCode(err))
	})
}
