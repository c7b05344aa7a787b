package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/ui/pretty"
	"github.com/yaklabco/mdtouch/pkg/blocks"
	"github.com/yaklabco/mdtouch/pkg/mdast"
	"github.com/yaklabco/mdtouch/pkg/parser/gfm"
	"github.com/yaklabco/mdtouch/pkg/render"
)

type showFlags struct {
	id   int
	ids  bool
	raw  bool
	tree bool
}

func newShowCommand(a *app) *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Preview a Markdown file in the terminal",
		Long: `Render a Markdown file, or one of its blocks, as styled terminal text.

Examples:
  mdtouch show notes.md
  mdtouch show notes.md --ids
  mdtouch show notes.md --id 4 --raw
  mdtouch show notes.md --id 1 --tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, a, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.id, "id", blocks.NoID, "show only the block with this id")
	cmd.Flags().BoolVar(&flags.ids, "ids", false, "prefix each block with its id")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "print Markdown source instead of the preview")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "print the syntax tree of each block")
	cmd.MarkFlagsMutuallyExclusive("raw", "tree")

	return cmd
}

func runShow(cmd *cobra.Command, a *app, path string, flags *showFlags) error {
	list, err := a.loadBlocks(cmd.Context(), path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("id") {
		b, err := lookupBlock(list, flags.id)
		if err != nil {
			return err
		}
		list = blocks.List{b}
	}

	out := cmd.OutOrStdout()
	if flags.raw {
		_, _ = fmt.Fprint(out, list.Join())
		return nil
	}

	if flags.tree {
		return printTrees(out, a.parser(), list)
	}

	entries := renderEntries(a, list)
	preview := pretty.NewPreview(a.styles(cmd),
		pretty.WithWidth(terminalWidth(out)),
		pretty.WithBlockIDs(flags.ids),
	)
	_, _ = fmt.Fprint(out, preview.Document(entries))
	return nil
}

// printTrees dumps the syntax tree of every block, headed by its id.
func printTrees(w io.Writer, parser *gfm.Parser, list blocks.List) error {
	for _, b := range list {
		if _, err := fmt.Fprintf(w, "block %d\n", b.ID); err != nil {
			return err
		}
		if err := mdast.Dump(w, parser.ParseBlock(b.Src)); err != nil {
			return err
		}
	}
	return nil
}

// renderEntries is used by commands that print the blocks they changed.
func renderEntries(a *app, list blocks.List) []render.Entry {
	return a.renderer().Document(a.parser(), list)
}
