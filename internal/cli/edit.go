package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/logging"
	"github.com/yaklabco/mdtouch/internal/ui/pretty"
	"github.com/yaklabco/mdtouch/pkg/blocks"
)

type editFlags struct {
	input inputFlags
	id    int
	write writeFlags
}

func newEditCommand(a *app) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Replace one block of a Markdown file",
		Long: `Replace the block with the given id and save the file.

The new text may hold several blocks; they take the place of the old one and
get fresh ids. Empty text removes the block. Ids come from 'mdtouch blocks'.

Examples:
  mdtouch edit notes.md --id 2 --text "Updated paragraph"
  mdtouch edit notes.md --id 5 --text ""
  cat new.md | mdtouch edit notes.md --id 3 --stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, a, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.id, "id", blocks.NoID, "id of the block to replace")
	addWriteFlags(cmd, &flags.write)
	_ = cmd.MarkFlagRequired("id")
	addInputFlags(cmd, &flags.input)

	return cmd
}

func runEdit(cmd *cobra.Command, a *app, path string, flags *editFlags) error {
	text, err := flags.input.read(cmd)
	if err != nil {
		return err
	}

	s, err := a.openSession(cmd.Context(), path, flags.write)
	if err != nil {
		return err
	}

	old, err := lookupBlock(s.doc.Blocks(), flags.id)
	if err != nil {
		return err
	}

	if err := s.doc.UpdateBlock(flags.id, fitLineEnding(old.Src, text)); err != nil {
		return err
	}

	a.logger.Debug("updated document",
		logging.FieldPath, path,
		logging.FieldBlockID, flags.id,
		logging.FieldSaves, s.doc.SaveCount())

	return printResult(cmd, a, s, path)
}

// printResult writes the one-line summary after a command saved s, or
// the pending diff in dry-run mode.
func printResult(cmd *cobra.Command, a *app, s *session, path string) error {
	s.logChanges()
	if s.flags.dryRun {
		_, err := fmt.Fprint(cmd.OutOrStdout(), s.diff())
		return err
	}

	entries := renderEntries(a, s.doc.Blocks())
	kinds := make([]string, 0, len(entries))
	for _, entry := range entries {
		kinds = append(kinds, pretty.KindOf(entry.Item))
	}

	_, err := fmt.Fprint(cmd.OutOrStdout(), a.styles(cmd).FormatSummaryOneLine(pretty.Summary{
		Path:   path,
		Kinds:  kinds,
		Saved:  s.saver.Saves() > 0,
		Backup: s.saver.BackupPath(),
	}))
	return err
}
