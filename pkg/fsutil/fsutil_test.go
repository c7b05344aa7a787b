package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtouch/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	return string(got)
}

func TestReadText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "note.md")
	writeFile(t, path, "# note\n")

	text, info, err := fsutil.ReadText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# note\n", text)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(7), info.Size)
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	_, _, err := fsutil.ReadFile(ctx, filepath.Join(dir, "missing.md"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(ctx, dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.ReadFile(canceled, filepath.Join(dir, "x.md"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "note.md")
	writeFile(t, path, "one")

	_, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	modified, err := fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.False(t, modified)

	writeFile(t, path, "two")
	// Same size: force the hash comparison by restoring the mtime.
	require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))

	modified, err = fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.True(t, modified)

	require.NoError(t, os.Remove(path))
	modified, err = fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.True(t, modified)

	_, err = fsutil.CheckModified(ctx, nil)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file with mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "note.md")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("hello"), 0o600))

		assert.Equal(t, "hello", readFile(t, path))
		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "note.md")
		writeFile(t, path, "old")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, "new", readFile(t, path))
	})

	t.Run("missing directory fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope", "note.md")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "note.md")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "b", readFile(t, path))
}
