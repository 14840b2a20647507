package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomarkup/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.txt")
		writeFile(t, path, "hello world")

		got, src, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "hello world", string(got))
		assert.Equal(t, path, src.Path)
		assert.Equal(t, int64(11), src.Size)
		assert.Equal(t, os.FileMode(0o644), src.Mode.Perm())
		assert.NotEqual(t, [32]byte{}, src.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "anypath")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	t.Run("unchanged file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, path, "same")

		_, src, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		changed, err := fsutil.Changed(context.Background(), src)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("content changed with same size and time", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, path, "aaaa")

		_, src, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		writeFile(t, path, "bbbb")
		require.NoError(t, os.Chtimes(path, src.ModTime, src.ModTime))

		changed, err := fsutil.Changed(context.Background(), src)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("size changed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, path, "short")

		_, src, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		writeFile(t, path, "much longer content")
		require.NoError(t, os.Chtimes(path, time.Now(), src.ModTime))

		changed, err := fsutil.Changed(context.Background(), src)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("deleted file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, path, "x")

		_, src, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		changed, err := fsutil.Changed(context.Background(), src)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.Changed(context.Background(), nil)
		require.ErrorIs(t, err, fsutil.ErrNilSource)
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		outDir string
		ext    string
		want   string
	}{
		{"next to input", "docs/notes.txt", "", ".html", filepath.Join("docs", "notes.html")},
		{"into out dir", "docs/notes.txt", "build", ".md", filepath.Join("build", "notes.md")},
		{"no extension", "README", "", ".html", "README.html"},
		{"multiple dots", "a/b.c.text", "", ".json", filepath.Join("a", "b.c.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fsutil.OutputPath(tt.input, tt.outDir, tt.ext))
		})
	}
}
