// Package editor holds the state of one editing session over a Markdown
// document: the block list, the selected block and the edit mode.
//
// A Document is plain synchronous state. Front ends drive it by calling its
// methods and read it back; whenever the block list changes because of an
// edit, the configured save function receives the full document text.
package editor

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdtouch/internal/logging"
	"github.com/yaklabco/mdtouch/pkg/blocks"
	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// Parser splits documents into block sources and parses single blocks.
type Parser interface {
	SplitBlocks(text string) []string
	ParseBlock(block string) *mdast.Node
}

// SaveFunc persists the full document text.
type SaveFunc func(fullText string) error

// Mode selects between editing one block at a time and editing the whole text.
type Mode int

const (
	// ModeBlock edits one block at a time.
	ModeBlock Mode = iota
	// ModeFullText edits the whole document as one text.
	ModeFullText
)

func (m Mode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeFullText:
		return "fulltext"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Document is an editing session. It is not safe for concurrent use.
type Document struct {
	parser Parser
	gen    *blocks.Generator
	save   SaveFunc
	logger *log.Logger

	list     blocks.List
	selected blocks.Block
	mode     Mode
	opening  bool
	saves    int
}

// Option configures a Document.
type Option func(*Document)

// WithSaveFunc sets the function called with the full text after each edit.
func WithSaveFunc(fn SaveFunc) Option {
	return func(d *Document) {
		d.save = fn
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithGenerator shares an id generator with the caller.
func WithGenerator(gen *blocks.Generator) Option {
	return func(d *Document) {
		d.gen = gen
	}
}

// New returns an empty session.
func New(parser Parser, opts ...Option) *Document {
	d := &Document{
		parser:   parser,
		selected: blocks.None(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.gen == nil {
		d.gen = blocks.NewGenerator()
	}
	if d.logger == nil {
		d.logger = logging.Default()
	}

	return d
}

// Open loads text as a new document. Loading never triggers a save.
func (d *Document) Open(text string) {
	d.opening = true
	defer func() { d.opening = false }()

	d.setBlocks(d.gen.ToBlocks(d.parser.SplitBlocks(text)))
	d.logger.Debug("document opened", logging.FieldBlocks, len(d.list), logging.FieldBytes, len(text))
}

// Opening reports whether an Open call is in progress.
func (d *Document) Opening() bool {
	return d.opening
}

// UpdateBlock replaces the block with id by text, following the rules of
// blocks.Generator.Update, and saves.
func (d *Document) UpdateBlock(id int, text string) error {
	before := len(d.list)
	d.setBlocks(d.gen.Update(d.parser.SplitBlocks, d.list, id, text))

	d.logger.Debug("block updated",
		logging.FieldBlockID, id,
		logging.FieldBlocks, len(d.list),
		logging.FieldInserted, len(d.list)-before)

	return d.notifySave()
}

// AppendTail appends text as new blocks after a blank line and saves.
// Empty text is ignored.
func (d *Document) AppendTail(text string) error {
	if text == "" {
		return nil
	}

	d.setBlocks(d.gen.AppendTail(d.parser.SplitBlocks, d.list, text))
	d.logger.Debug("blocks appended", logging.FieldBlocks, len(d.list))

	return d.notifySave()
}

// ReplaceAll re-splits text into fresh blocks, as after a full-text edit,
// and saves.
func (d *Document) ReplaceAll(text string) error {
	d.setBlocks(d.gen.ToBlocks(d.parser.SplitBlocks(text)))
	d.logger.Debug("document replaced", logging.FieldBlocks, len(d.list))

	return d.notifySave()
}

// Select opens the block at index for editing, or closes the selection when
// open is false. index must be within the block list.
func (d *Document) Select(index int, open bool) {
	if index < 0 || index >= len(d.list) {
		panic(fmt.Sprintf("editor: select index %d out of range [0,%d)", index, len(d.list)))
	}

	if !open {
		d.selected = blocks.None()
		return
	}
	d.selected = d.list[index]
}

// CloseSelection clears the selected block.
func (d *Document) CloseSelection() {
	d.selected = blocks.None()
}

// IsBlockOpen reports whether a block is selected.
func (d *Document) IsBlockOpen() bool {
	return !d.selected.IsNone()
}

// Selected returns the selected block, or blocks.None.
func (d *Document) Selected() blocks.Block {
	return d.selected
}

// Blocks returns the current block list. Callers must not modify it.
func (d *Document) Blocks() blocks.List {
	return d.list
}

// FullText returns the document text.
func (d *Document) FullText() string {
	return d.list.Join()
}

// ParseBlock parses one block source.
func (d *Document) ParseBlock(src string) *mdast.Node {
	return d.parser.ParseBlock(src)
}

// SaveCount returns how many times the save function was notified.
func (d *Document) SaveCount() int {
	return d.saves
}

// Mode returns the current edit mode.
func (d *Document) Mode() Mode {
	return d.mode
}

// SetMode switches the edit mode and clears the selection.
func (d *Document) SetMode(mode Mode) {
	d.mode = mode
	d.selected = blocks.None()
}

func (d *Document) setBlocks(list blocks.List) {
	d.list = list
	d.selected = blocks.None()
}

func (d *Document) notifySave() error {
	if d.opening {
		return nil
	}

	d.saves++
	if d.save == nil {
		return nil
	}

	if err := d.save(d.FullText()); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
