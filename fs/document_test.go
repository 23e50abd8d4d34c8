package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/htmlcut"
	"github.com/fwojciec/htmlcut/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		suffix string
		want   string
	}{
		{
			name:   "default suffix",
			input:  "profile.html",
			suffix: fs.DefaultSuffix,
			want:   "profile.extracted.html",
		},
		{
			name:   "keeps directory",
			input:  filepath.Join("pages", "profile.html"),
			suffix: "cut",
			want:   filepath.Join("pages", "profile.cut.html"),
		},
		{
			name:   "htm extension",
			input:  "profile.htm",
			suffix: "extracted",
			want:   "profile.extracted.html",
		},
		{
			name:   "no extension",
			input:  "profile",
			suffix: "extracted",
			want:   "profile.extracted.html",
		},
		{
			name:   "only last extension is replaced",
			input:  "profile.v2.html",
			suffix: "extracted",
			want:   "profile.v2.extracted.html",
		},
		{
			name:   "empty suffix",
			input:  "profile.htm",
			suffix: "",
			want:   "profile.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.OutputPath(tt.input, tt.suffix))
		})
	}
}

func TestOutputPathExt(t *testing.T) {
	t.Parallel()

	got := fs.OutputPathExt(filepath.Join("out", "profile.html"), "extracted", ".md")

	assert.Equal(t, filepath.Join("out", "profile.extracted.md"), got)
}

func TestReader_ReadDocument(t *testing.T) {
	t.Parallel()

	t.Run("reads file content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>Hi</p>"), 0644))

		got, err := fs.NewReader().ReadDocument(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "<p>Hi</p>", got)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.html")

		_, err := fs.NewReader().ReadDocument(context.Background(), path)

		assert.Equal(t, htmlcut.ENOTFOUND, htmlcut.ErrorCode(err))
	})

	t.Run("returns EINVALID for directory", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewReader().ReadDocument(context.Background(), t.TempDir())

		assert.Equal(t, htmlcut.EINVALID, htmlcut.ErrorCode(err))
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewReader().ReadDocument(ctx, "page.html")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriter_WriteDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes content and creates directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "out.html")

		err := fs.NewWriter().WriteDocument(context.Background(), path, "<div>x</div>")

		require.NoError(t, err)
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<div>x</div>", string(got))
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.html")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		err := fs.NewWriter().WriteDocument(context.Background(), path, "new")

		require.NoError(t, err)
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.html")

		require.NoError(t, fs.NewWriter().WriteDocument(context.Background(), path, "x"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.html", entries[0].Name())
	})

	t.Run("fails without partial output when target is a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.html")
		require.NoError(t, os.Mkdir(path, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0644))

		err := fs.NewWriter().WriteDocument(context.Background(), path, "x")

		require.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.html", entries[0].Name())
	})

	t.Run("concurrent writes to one path leave one complete document", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.html")
		contents := []string{strings.Repeat("a", 1<<16), strings.Repeat("b", 1<<16)}

		var wg sync.WaitGroup
		errs := make([]error, len(contents))
		for i, c := range contents {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = fs.NewWriter().WriteDocument(context.Background(), path, c)
			}()
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		assert.Contains(t, contents, readFile(t, path))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("written file is world readable", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.html")

		require.NoError(t, fs.NewWriter().WriteDocument(context.Background(), path, "x"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	})

	t.Run("returns EINVALID for empty path", func(t *testing.T) {
		t.Parallel()

		err := fs.NewWriter().WriteDocument(context.Background(), "", "x")

		assert.Equal(t, htmlcut.EINVALID, htmlcut.ErrorCode(err))
	})
}
