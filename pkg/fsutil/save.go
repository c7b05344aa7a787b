package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// SaveText writes text to path. It first rewrites the file in place and,
// if that fails, retries with WriteAtomic. The returned error wraps both
// failures.
func SaveText(ctx context.Context, path, text string, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	content := []byte(text)

	truncErr := writeTruncate(path, content, mode)
	if truncErr == nil {
		return nil
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return fmt.Errorf("save %s: %w", path, errors.Join(truncErr, err))
	}
	return nil
}

// Saver persists one document across a session, taking a backup of the
// original file before the first save.
type Saver struct {
	path   string
	mode   os.FileMode
	backup BackupConfig

	backedUp bool
	saves    int
}

// NewSaver returns a Saver for path. mode 0 keeps the existing file's mode,
// or DefaultFileMode for a new file.
func NewSaver(path string, mode os.FileMode, backup BackupConfig) *Saver {
	if mode == 0 {
		if stat, err := os.Stat(path); err == nil {
			mode = stat.Mode().Perm()
		}
	}
	return &Saver{path: path, mode: mode, backup: backup}
}

// Path returns the file the saver writes.
func (s *Saver) Path() string {
	return s.path
}

// Saves returns how many saves succeeded.
func (s *Saver) Saves() int {
	return s.saves
}

// BackupPath returns the backup location, or "" when backups are off.
func (s *Saver) BackupPath() string {
	if !s.backup.Enabled {
		return ""
	}
	return BackupPath(s.path, s.backup.Suffix)
}

// Save writes text, creating the backup first when this is the first save.
func (s *Saver) Save(ctx context.Context, text string) error {
	if !s.backedUp {
		if _, err := CreateBackup(ctx, s.path, s.backup); err != nil {
			return err
		}
		s.backedUp = true
	}

	if err := SaveText(ctx, s.path, text, s.mode); err != nil {
		return err
	}
	s.saves++
	return nil
}
