package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/configloader"
	"github.com/yaklabco/mdtouch/internal/logging"
	"github.com/yaklabco/mdtouch/pkg/blocks"
	"github.com/yaklabco/mdtouch/pkg/editor"
	"github.com/yaklabco/mdtouch/pkg/fsutil"
	"github.com/yaklabco/mdtouch/pkg/textdiff"
)

// inputFlags select where replacement text comes from.
type inputFlags struct {
	text  string
	stdin bool
}

func addInputFlags(cmd *cobra.Command, flags *inputFlags) {
	cmd.Flags().StringVarP(&flags.text, "text", "t", "", "new Markdown text")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read the new Markdown text from stdin")
	cmd.MarkFlagsMutuallyExclusive("text", "stdin")
	cmd.MarkFlagsOneRequired("text", "stdin")
}

func (f *inputFlags) read(cmd *cobra.Command) (string, error) {
	if !f.stdin {
		return f.text, nil
	}
	if in, ok := cmd.InOrStdin().(*os.File); ok && in == os.Stdin && configloader.IsInteractive() {
		logging.FromContext(cmd.Context()).Info("reading Markdown from the terminal, end with Ctrl-D")
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(content), nil
}

// writeFlags control how a changed document is written back.
type writeFlags struct {
	force  bool
	dryRun bool
}

func addWriteFlags(cmd *cobra.Command, flags *writeFlags) {
	cmd.Flags().BoolVar(&flags.force, "force", false, "save even if the file changed on disk")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "print a diff instead of saving")
}

// session is a document opened from disk for one command.
type session struct {
	doc    *editor.Document
	saver  *fsutil.Saver
	info   *fsutil.FileInfo
	flags  writeFlags
	logger *log.Logger

	original string
	before   blocks.List
	pending  string
}

// openSession reads path into an editing session whose saves go back to
// path. Saves refuse to overwrite a file changed since it was read unless
// force is set. In dry-run mode saves only record the text.
func (a *app) openSession(ctx context.Context, path string, flags writeFlags) (*session, error) {
	text, info, err := fsutil.ReadText(ctx, path)
	if err != nil {
		return nil, err
	}

	s := &session{
		saver: fsutil.NewSaver(path, info.Mode.Perm(), fsutil.BackupConfig{
			Enabled: a.cfg.BackupEnabled(),
			Suffix:  a.cfg.Backup.Suffix,
		}),
		info:     info,
		flags:    flags,
		logger:   a.logger,
		original: text,
		pending:  text,
	}
	s.doc = editor.New(a.parser(),
		editor.WithLogger(a.logger),
		editor.WithSaveFunc(func(fullText string) error {
			return s.save(ctx, fullText)
		}),
	)
	s.doc.Open(text)
	s.before = s.doc.Blocks()

	a.logger.Debug("opened document", logging.FieldPath, path, logging.FieldBlocks, s.doc.Blocks().Len())
	return s, nil
}

func (s *session) save(ctx context.Context, fullText string) error {
	s.pending = fullText
	if s.flags.dryRun {
		return nil
	}

	if !s.flags.force {
		modified, err := fsutil.CheckModified(ctx, s.info)
		if err != nil {
			return err
		}
		if modified {
			return fmt.Errorf("%w: %s", fsutil.ErrModified, s.info.Path)
		}
	}
	return s.saver.Save(ctx, fullText)
}

// logChanges reports every block the command added, removed or modified.
func (s *session) logChanges() {
	for _, change := range textdiff.Blocks(s.before, s.doc.Blocks()) {
		s.logger.Debug("block "+change.Kind.String(), logging.FieldBlockID, change.ID)
	}
}

// diff is the unified diff between the file as read and the last save.
func (s *session) diff() string {
	return textdiff.Lines(s.info.Path, s.original, s.pending).String()
}

// loadBlocks reads path and splits it without an editing session.
func (a *app) loadBlocks(ctx context.Context, path string) (blocks.List, error) {
	text, _, err := fsutil.ReadText(ctx, path)
	if err != nil {
		return nil, err
	}
	return blocks.NewGenerator().ToBlocks(a.parser().SplitBlocks(text)), nil
}

// errBlockNotFound is returned for ids absent from the document.
var errBlockNotFound = errors.New("block not found")

func lookupBlock(list blocks.List, id int) (blocks.Block, error) {
	if id == blocks.NoID {
		return blocks.None(), fmt.Errorf("%w: block id must not be %d", ErrUsage, blocks.NoID)
	}
	b, ok := list.Find(id)
	if !ok {
		return blocks.None(), fmt.Errorf("%w: %d", errBlockNotFound, id)
	}
	return b, nil
}

// fitLineEnding drops one trailing line break from replacement when the
// block it replaces has none. Blocks end before their line break, so piped
// text would otherwise grow the document by a blank line.
func fitLineEnding(old, replacement string) string {
	if strings.HasSuffix(old, "\n") {
		return replacement
	}
	if trimmed, ok := strings.CutSuffix(replacement, "\r\n"); ok {
		return trimmed
	}
	return strings.TrimSuffix(replacement, "\n")
}
