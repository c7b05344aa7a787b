package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/logging"
	"github.com/yaklabco/mdtouch/pkg/fsutil"
)

func newRestoreCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE",
		Short: "Restore a Markdown file from its backup",
		Long: `Copy FILE + backup.suffix back over FILE. Backups are written before the
first save when backup.enabled is true.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			restored, err := fsutil.RestoreBackup(cmd.Context(), path, a.cfg.Backup.Suffix)
			if err != nil {
				return err
			}
			backup := fsutil.BackupPath(path, a.cfg.Backup.Suffix)
			if !restored {
				return fmt.Errorf("no backup at %s", backup)
			}

			a.logger.Info("restored from backup", logging.FieldPath, path, logging.FieldBackup, backup)
			return nil
		},
	}
}
