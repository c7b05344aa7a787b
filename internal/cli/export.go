package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/logging"
	"github.com/yaklabco/mdtouch/pkg/fsutil"
	"github.com/yaklabco/mdtouch/pkg/parser/goldmark"
)

type exportFlags struct {
	output string
	xhtml  bool
}

func newExportCommand(a *app) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a Markdown file to HTML",
		Long: `Convert a Markdown file to an HTML fragment. Wiki-links become links to
export.wiki_base_url + name + export.wiki_extension.

Examples:
  mdtouch export notes.md
  mdtouch export notes.md -o notes.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.xhtml, "xhtml", false, "render void elements as XHTML")

	return cmd
}

func runExport(cmd *cobra.Command, a *app, path string, flags *exportFlags) error {
	ctx := cmd.Context()

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	opts := goldmark.OptionsFromConfig(a.cfg)
	opts.XHTML = flags.xhtml

	if flags.output == "" {
		return goldmark.New(opts).Convert(ctx, content, cmd.OutOrStdout())
	}

	var buf bytes.Buffer
	if err := goldmark.New(opts).Convert(ctx, content, &buf); err != nil {
		return err
	}
	written, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, buf.Bytes(), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	if !written {
		a.logger.Info("export unchanged", logging.FieldOutput, flags.output)
		return nil
	}

	a.logger.Info("exported", logging.FieldPath, path, logging.FieldOutput, flags.output, logging.FieldBytes, buf.Len())
	return nil
}
