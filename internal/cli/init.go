package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/logging"
	"github.com/yaklabco/mdtouch/pkg/config"
	"github.com/yaklabco/mdtouch/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand(a *app) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .mdtouch.yml configuration file",
		Long: `Create a .mdtouch.yml configuration file in the current directory with
every setting at its default value.

Examples:
  mdtouch init
  mdtouch init --force
  mdtouch init --output docs/.mdtouch.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, a, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.ProjectFileName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, a *app, flags *initFlags) error {
	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		a.logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, config.Template(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	a.logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}
