package cli

import (
	"github.com/spf13/cobra"
)

type appendFlags struct {
	input inputFlags
	write writeFlags
}

func newAppendCommand(a *app) *cobra.Command {
	flags := &appendFlags{}

	cmd := &cobra.Command{
		Use:   "append FILE",
		Short: "Append blocks to the end of a Markdown file",
		Long: `Append Markdown text as new blocks after the last block, separated by
a blank line, and save the file. Empty text leaves the file untouched.

Examples:
  mdtouch append notes.md --text "- another item"
  date | mdtouch append journal.md --stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(cmd, a, args[0], flags)
		},
	}

	addWriteFlags(cmd, &flags.write)
	addInputFlags(cmd, &flags.input)

	return cmd
}

func runAppend(cmd *cobra.Command, a *app, path string, flags *appendFlags) error {
	text, err := flags.input.read(cmd)
	if err != nil {
		return err
	}

	s, err := a.openSession(cmd.Context(), path, flags.write)
	if err != nil {
		return err
	}

	if err := s.doc.AppendTail(text); err != nil {
		return err
	}

	return printResult(cmd, a, s, path)
}
