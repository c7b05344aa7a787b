// Package cli provides the Cobra command structure for mdtouch.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/configloader"
	"github.com/yaklabco/mdtouch/internal/logging"
	"github.com/yaklabco/mdtouch/internal/ui/pretty"
	"github.com/yaklabco/mdtouch/pkg/config"
	"github.com/yaklabco/mdtouch/pkg/parser/gfm"
	"github.com/yaklabco/mdtouch/pkg/render"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	noConfig   bool
	color      string
	noWiki     bool
}

// app is the state resolved once per invocation, before a command runs.
type app struct {
	flags  globalFlags
	cfg    *config.Config
	loaded []string
	logger *log.Logger
}

// NewRootCommand creates the root mdtouch command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "mdtouch",
		Short: "Block-based Markdown editing from the command line",
		Long: `mdtouch edits Markdown documents one block at a time.

A document is split into top-level blocks (headings, paragraphs, lists,
code fences, dividers and blank separators). Each block gets an id that
stays stable while other blocks change, so a single block can be shown,
replaced, removed or appended to without touching the rest of the file.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&a.flags.debug, "debug", false, "enable debug logging")
	flags.StringVar(&a.flags.configPath, "config", "", "path to config file")
	flags.BoolVar(&a.flags.noConfig, "no-config", false, "ignore all config files")
	flags.StringVar(&a.flags.color, "color", string(config.ColorAuto), "colorize output: auto, always, never")
	flags.BoolVar(&a.flags.noWiki, "no-wiki-links", false, "treat [[Name]] as plain text")

	rootCmd.AddCommand(newBlocksCommand(a))
	rootCmd.AddCommand(newShowCommand(a))
	rootCmd.AddCommand(newEditCommand(a))
	rootCmd.AddCommand(newAppendCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newRestoreCommand(a))
	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(config.ColorMode(a.flags.color), os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// setup resolves configuration and the logger for the running command.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(a.flags.color)
	}
	if a.flags.noWiki {
		cliCfg.WikiLinks = config.Bool(false)
	}
	if a.flags.debug {
		cliCfg.LogLevel = "debug"
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: a.flags.configPath,
		NoConfig:     a.flags.noConfig,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	a.cfg = result.Config
	a.loaded = result.LoadedFrom
	a.logger = logging.NewWriter(cmd.ErrOrStderr(), a.cfg.LogLevel)

	for _, warning := range result.Warnings {
		a.logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		a.logger.Debug("loaded configuration", logging.FieldConfig, result.LoadedFrom)
	}

	cmd.SetContext(logging.WithLogger(ctx, a.logger))
	return nil
}

func (a *app) parser() *gfm.Parser {
	return gfm.New(gfm.WithWikiLinks(a.cfg.WikiLinksEnabled()))
}

func (a *app) renderer() *render.Renderer {
	return render.New(render.WithLanguageDetection(a.cfg.LanguageDetectionEnabled()))
}

func (a *app) styles(cmd *cobra.Command) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(a.cfg.Color, cmd.OutOrStdout()))
}
