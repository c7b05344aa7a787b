package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/ui/pretty"
	"github.com/yaklabco/mdtouch/pkg/config"
	"github.com/yaklabco/mdtouch/pkg/mdast"
)

type blocksFlags struct {
	format string
	query  string
}

// blockRecord is one block in structured output.
type blockRecord struct {
	ID   int    `json:"id"   yaml:"id"`
	Line int    `json:"line" yaml:"line"`
	Kind string `json:"kind" yaml:"kind"`
	Src  string `json:"src"  yaml:"src"`
}

func newBlocksCommand(a *app) *cobra.Command {
	flags := &blocksFlags{}

	cmd := &cobra.Command{
		Use:   "blocks FILE",
		Short: "List the blocks of a Markdown file",
		Long: `List every top-level block of a Markdown file with its id and kind.

Examples:
  mdtouch blocks notes.md
  mdtouch blocks notes.md --format json
  mdtouch blocks notes.md --query '.[] | select(.kind == "code") | .id'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd, a, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatText), "output format: text, json, yaml")
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "jq expression applied to the block list (implies json)")

	return cmd
}

func runBlocks(cmd *cobra.Command, a *app, path string, flags *blocksFlags) error {
	format := config.OutputFormat(flags.format)
	if !format.IsValid() {
		return fmt.Errorf("%w: unknown format %q", ErrUsage, flags.format)
	}
	if flags.query != "" && format == config.FormatText {
		format = config.FormatJSON
	}

	list, err := a.loadBlocks(cmd.Context(), path)
	if err != nil {
		return err
	}
	rows := pretty.Rows(list, renderEntries(a, list))

	out := cmd.OutOrStdout()
	if format != config.FormatText {
		index := mdast.NewLineIndex(list.Join())
		records := make([]blockRecord, 0, len(rows))
		offset := 0
		for i, row := range rows {
			records = append(records, blockRecord{
				ID:   row.ID,
				Line: index.PositionAt(offset).Line,
				Kind: row.Kind,
				Src:  row.Source,
			})
			offset += len(list[i].Src)
		}
		return printStructured(cmd.Context(), out, format, records, flags.query)
	}

	styles := a.styles(cmd)
	kinds := make([]string, 0, len(rows))
	for _, row := range rows {
		kinds = append(kinds, row.Kind)
	}

	_, _ = fmt.Fprint(out, pretty.NewTableFormatter(styles, terminalWidth(out)).FormatTable(rows))
	_, _ = fmt.Fprint(out, styles.FormatSummaryOneLine(pretty.Summary{Path: path, Kinds: kinds}))
	return nil
}
