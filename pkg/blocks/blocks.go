// Package blocks implements the block identity model of an mdtouch document.
//
// A document is an ordered List of Blocks. Each Block pairs the exact
// source text of one top-level Markdown node with an integer id that stays
// stable while the block is edited in place. Every operation on a List is
// pure: it returns a new List and leaves its input untouched.
package blocks

import (
	"strconv"
)

// NoID is the sentinel id meaning "no block". It is never assigned to a block.
const NoID = -1

// Block is one independently editable top-level unit of a document.
type Block struct {
	ID  int    `json:"id" yaml:"id"`
	Src string `json:"src" yaml:"src"`
}

// IsNone reports whether b is the sentinel block.
func (b Block) IsNone() bool {
	return b.ID == NoID
}

func (b Block) String() string {
	return "#" + strconv.Itoa(b.ID) + " " + strconv.Quote(b.Src)
}

// None returns the sentinel block.
func None() Block {
	return Block{ID: NoID}
}

// Splitter decomposes text into an ordered sequence of block sources.
type Splitter func(text string) []string

// Generator hands out monotonically increasing block ids starting at 1.
//
// A Generator is not safe for concurrent use; callers serialize access.
type Generator struct {
	next int
}

// NewGenerator returns a generator whose first id is 1.
func NewGenerator() *Generator {
	return &Generator{next: 1}
}

// Next returns a fresh id.
func (g *Generator) Next() int {
	if g.next < 1 {
		g.next = 1
	}
	id := g.next
	g.next++
	return id
}

// Last returns the most recently issued id, or 0 if none was issued.
func (g *Generator) Last() int {
	if g.next <= 1 {
		return 0
	}
	return g.next - 1
}

// Reset restarts numbering at 1.
func (g *Generator) Reset() {
	g.next = 1
}

// ToBlocks assigns a fresh id to each source, preserving order.
func (g *Generator) ToBlocks(srcs []string) List {
	list := make(List, len(srcs))
	for i, src := range srcs {
		list[i] = Block{ID: g.Next(), Src: src}
	}
	return list
}

// Update replaces the block with the given id by newText.
//
// An empty newText deletes the block. When split yields a single source the
// block keeps its id and position; otherwise it is replaced in place by fresh
// blocks for each source. A missing id leaves the list unchanged.
// Passing NoID is a programming error and panics.
func (g *Generator) Update(split Splitter, list List, id int, newText string) List {
	if id == NoID {
		panic("blocks: Update called with the sentinel id")
	}

	if newText == "" {
		return list.Delete(id)
	}

	srcs := split(newText)
	if len(srcs) == 1 {
		return list.Replace(id, newText)
	}

	return list.Splice(id, g.ToBlocks(srcs))
}

// AppendTail appends two "\n" separator blocks followed by the blocks of
// newText, so appended content is always separated by a blank line.
func (g *Generator) AppendTail(split Splitter, list List, newText string) List {
	srcs := append([]string{"\n", "\n"}, split(newText)...)
	return list.Append(g.ToBlocks(srcs)...)
}
