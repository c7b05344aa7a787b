package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtouch/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.md.bak", fsutil.BackupPath("a.md", ""))
	assert.Equal(t, "a.md~", fsutil.BackupPath("a.md", "~"))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "x")

		created, err := fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoFileExists(t, path+".bak")
	})

	t.Run("never overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		cfg := fsutil.BackupConfig{Enabled: true, Suffix: ".orig"}

		writeFile(t, path, "v1")
		created, err := fsutil.CreateBackup(ctx, path, cfg)
		require.NoError(t, err)
		assert.True(t, created)

		writeFile(t, path, "v2")
		created, err = fsutil.CreateBackup(ctx, path, cfg)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "v1", readFile(t, path+".orig"))
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Enabled: true})
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.md")

	restored, err := fsutil.RestoreBackup(ctx, path, "")
	require.NoError(t, err)
	assert.False(t, restored)

	writeFile(t, path, "edited")
	require.NoError(t, os.WriteFile(path+".bak", []byte("original"), 0o644))

	restored, err = fsutil.RestoreBackup(ctx, path, "")
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, "original", readFile(t, path))
}
