// Package gfm implements the structural Markdown parser used by mdtouch.
//
// The parser covers the GitHub-flavored subset the editor renders: ATX and
// setext headings, paragraphs, nested ordered and unordered lists, fenced
// code blocks, thematic breaks, and the inline spans emphasis, strong,
// strikethrough, code span, inline link, wiki-link and hard line break.
// Anything else degrades to paragraph text; parsing never fails.
//
// Trees are lossless: the children of every composite node tile its range,
// and the children of the document tile the whole input. Text between
// top-level constructs becomes one EOL leaf per line ending plus Whitespace
// leaves for indentation, so SplitBlocks("a\n\nb") is ["a", "\n", "\n", "b"].
package gfm

import (
	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// Parser splits documents into top-level blocks and parses single blocks.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	wikiLinks bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithWikiLinks enables or disables recognition of [[Name]] wiki-links.
// Wiki-links are enabled by default.
func WithWikiLinks(enabled bool) Option {
	return func(p *Parser) {
		p.wikiLinks = enabled
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{wikiLinks: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WikiLinks reports whether wiki-link recognition is enabled.
func (p *Parser) WikiLinks() bool {
	return p.wikiLinks
}

// Parse parses text as a whole document and returns the Document node.
// Node ranges index into text.
func (p *Parser) Parse(text string) *mdast.Node {
	doc := mdast.NewNode(mdast.NodeDocument, mdast.SourceRange{StartOffset: 0, EndOffset: len(text)})

	bp := &blockParser{
		src:    text,
		inline: &inlineParser{src: text, wikiLinks: p.wikiLinks},
	}

	tile(text, doc, bp.parseBlocks(documentLines(text)))

	return doc
}

// SplitBlocks returns the source text of each top-level node of text, in order.
// Joining the result reproduces text exactly.
func (p *Parser) SplitBlocks(text string) []string {
	doc := p.Parse(text)

	blocks := make([]string, 0, doc.ChildCount())
	for child := doc.FirstChild; child != nil; child = child.Next {
		blocks = append(blocks, child.Text(text))
	}

	return blocks
}

// ParseBlock parses block as a standalone document and returns its first
// top-level node. Node ranges index into block.
// Parsing an empty block is a programming error and panics.
func (p *Parser) ParseBlock(block string) *mdast.Node {
	if block == "" {
		panic("gfm: ParseBlock called with an empty block")
	}

	first := p.Parse(block).FirstChild
	mdast.RemoveChild(first.Parent, first)

	return first
}

// tile appends children to parent, inserting filler leaves so that the
// children cover parent.Range without gaps.
func tile(src string, parent *mdast.Node, children []*mdast.Node) {
	pos := parent.Range.StartOffset
	for _, child := range children {
		if child.Range.StartOffset > pos {
			mdast.AppendChildren(parent, fillLeaves(src, pos, child.Range.StartOffset))
		}
		mdast.AppendChild(parent, child)
		pos = child.Range.EndOffset
	}

	if pos < parent.Range.EndOffset {
		mdast.AppendChildren(parent, fillLeaves(src, pos, parent.Range.EndOffset))
	}
}

// fillLeaves splits src[start:end] into Whitespace runs, one EOL per line
// ending, and Text runs.
func fillLeaves(src string, start, end int) []*mdast.Node {
	var leaves []*mdast.Node

	for pos := start; pos < end; {
		switch n := eolLen(src, pos, end); {
		case n > 0:
			leaves = append(leaves, mdast.NewLeaf(mdast.NodeEOL, src, pos, pos+n))
			pos += n
		case isSpaceOrTab(src[pos]):
			runStart := pos
			for pos < end && isSpaceOrTab(src[pos]) {
				pos++
			}
			leaves = append(leaves, mdast.NewLeaf(mdast.NodeWhitespace, src, runStart, pos))
		default:
			runStart := pos
			for pos < end && !isSpaceOrTab(src[pos]) && eolLen(src, pos, end) == 0 {
				pos++
			}
			leaves = append(leaves, mdast.NewLeaf(mdast.NodeText, src, runStart, pos))
		}
	}

	return leaves
}

// eolLen returns the length of the line ending at pos (1 for LF, 2 for CRLF), or 0.
func eolLen(src string, pos, end int) int {
	switch {
	case pos < end && src[pos] == '\n':
		return 1
	case pos+1 < end && src[pos] == '\r' && src[pos+1] == '\n':
		return 2
	default:
		return 0
	}
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
