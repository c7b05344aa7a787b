package fsutil

import (
	"context"
	"fmt"
	"os"
)

// DefaultBackupSuffix is appended to the document path to name its backup.
const DefaultBackupSuffix = ".bak"

// BackupConfig controls backups taken before a document is first saved.
type BackupConfig struct {
	Enabled bool
	Suffix  string
}

// DefaultBackupConfig has backups off.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Suffix: DefaultBackupSuffix}
}

// BackupPath returns path with suffix, using DefaultBackupSuffix when suffix is empty.
func BackupPath(path, suffix string) string {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return path + suffix
}

// CreateBackup copies path to its backup location. An existing backup is
// never overwritten, so the backup always holds the oldest content.
// It reports whether a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backupPath := BackupPath(path, cfg.Suffix)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies the backup of path back over path. It reports false
// when there is no backup.
func RestoreBackup(ctx context.Context, path, suffix string) (bool, error) {
	backupPath := BackupPath(path, suffix)

	content, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := SaveText(ctx, path, string(content), 0); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}
