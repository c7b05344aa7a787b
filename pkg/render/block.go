package render

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdtouch/pkg/blocks"
	"github.com/yaklabco/mdtouch/pkg/langdetect"
	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// List indentation, in display units.
const (
	TopLevelIndent = 5
	TopLevelMargin = 5
	NestedIndent   = 10
	NestedMargin   = 0
)

// Bullet is the marker shown for unordered list items.
const Bullet = "•"

// Item is one render instruction. It is one of Heading, Paragraph, List,
// CodeBlock, Divider or Blank.
type Item interface {
	item()
}

// Heading is a level 1-6 heading.
type Heading struct {
	Level int
	Runs  []Run
}

// Paragraph is a run of inline text. BottomSpacing is set for paragraphs
// that are top-level blocks.
type Paragraph struct {
	Runs          []Run
	BottomSpacing bool
}

// List is an ordered or unordered list.
type List struct {
	Ordered bool
	Indent  int
	Margin  int
	Items   []ListItem
}

// ListItem is one list entry with its display marker.
type ListItem struct {
	Marker   string
	Children []Item
}

// CodeBlock is a fenced code block.
type CodeBlock struct {
	Language string
	Lines    []string
}

// Divider is a thematic break.
type Divider struct{}

// Blank is a separator block made of line endings or whitespace.
type Blank struct{}

func (Heading) item()   {}
func (Paragraph) item() {}
func (List) item()      {}
func (CodeBlock) item() {}
func (Divider) item()   {}
func (Blank) item()     {}

// BlockParser parses one block source into a syntax tree.
type BlockParser interface {
	ParseBlock(src string) *mdast.Node
}

// Entry is the rendered form of one block of a document.
type Entry struct {
	ID   int
	Item Item
}

// Renderer builds render instructions from syntax trees.
type Renderer struct {
	detectLanguage bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLanguageDetection guesses the language of fences without an info string.
func WithLanguageDetection(enabled bool) Option {
	return func(r *Renderer) {
		r.detectLanguage = enabled
	}
}

// New returns a Renderer. Language detection is on by default.
func New(opts ...Option) *Renderer {
	r := &Renderer{detectLanguage: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = New()

// Block renders node with the default Renderer.
func Block(src string, node *mdast.Node, depth int) Item {
	return defaultRenderer.Block(src, node, depth)
}

// Document parses and renders every block of list, in order.
func (r *Renderer) Document(parser BlockParser, list blocks.List) []Entry {
	entries := make([]Entry, 0, len(list))
	for _, b := range list {
		item := Item(Blank{})
		if b.Src != "" {
			item = r.Block(b.Src, parser.ParseBlock(b.Src), 0)
		}
		entries = append(entries, Entry{ID: b.ID, Item: item})
	}
	return entries
}

// Block renders a parsed block. depth is 0 for top-level blocks and grows by
// one for each enclosing list item.
func (r *Renderer) Block(src string, node *mdast.Node, depth int) Item {
	switch node.Kind {
	case mdast.NodeHeading:
		return Heading{
			Level: node.Level,
			Runs:  Inline(src, node.ChildOfKind(mdast.NodeHeadingContent)),
		}

	case mdast.NodeParagraph:
		return Paragraph{Runs: Inline(src, node), BottomSpacing: depth == 0}

	case mdast.NodeUnorderedList, mdast.NodeOrderedList:
		return r.list(src, node, depth)

	case mdast.NodeCodeFence:
		return r.codeBlock(src, node)

	case mdast.NodeHorizontalRule:
		return Divider{}

	case mdast.NodeEOL, mdast.NodeWhitespace:
		return Blank{}

	default:
		return Paragraph{Runs: InlineRange(src, []*mdast.Node{node}), BottomSpacing: depth == 0}
	}
}

func (r *Renderer) list(src string, node *mdast.Node, depth int) List {
	out := List{
		Ordered: node.Kind == mdast.NodeOrderedList,
		Indent:  TopLevelIndent,
		Margin:  TopLevelMargin,
	}
	if depth > 0 {
		out.Indent, out.Margin = NestedIndent, NestedMargin
	}

	number := 0
	for _, item := range node.Children() {
		if item.Kind != mdast.NodeListItem {
			continue
		}

		marker := Bullet
		if out.Ordered {
			if number == 0 {
				number = startNumber(item.ChildOfKind(mdast.NodeListNumber))
			} else {
				number++
			}
			marker = strconv.Itoa(number) + "."
		}

		var children []Item
		for _, child := range item.Children() {
			switch child.Kind {
			case mdast.NodeListBullet, mdast.NodeListNumber, mdast.NodeEOL, mdast.NodeWhitespace:
				continue
			}
			children = append(children, r.Block(src, child, depth+1))
		}

		out.Items = append(out.Items, ListItem{Marker: marker, Children: children})
	}

	return out
}

// startNumber reads the number of the first ordered item. Trailing
// punctuation and leading zeros are stripped; anything unreadable counts as 1.
func startNumber(marker *mdast.Node) int {
	if marker == nil {
		return 1
	}

	digits := strings.TrimSpace(marker.Literal)
	digits = strings.TrimRight(digits, ".)")
	digits = strings.TrimLeft(digits, "0")

	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// codeBlock collects fence content into lines. The opening fence line and a
// trailing closing fence are skipped.
func (r *Renderer) codeBlock(src string, node *mdast.Node) CodeBlock {
	out := CodeBlock{}

	if lang := node.ChildOfKind(mdast.NodeFenceLang); lang != nil {
		if fields := strings.Fields(lang.Literal); len(fields) > 0 {
			out.Language = fields[0]
		}
	}

	children := node.Children()
	if n := len(children); n > 0 && children[n-1].Kind == mdast.NodeFenceEnd {
		children = children[:n-1]
	}

	var (
		line       strings.Builder
		started    bool
		hasContent bool
	)
	for _, c := range children {
		if !started {
			started = c.Kind == mdast.NodeEOL
			continue
		}

		switch c.Kind {
		case mdast.NodeFenceContent:
			line.WriteString(c.Text(src))
			hasContent = true
		case mdast.NodeEOL:
			out.Lines = append(out.Lines, line.String())
			line.Reset()
			hasContent = false
		}
	}
	if hasContent {
		out.Lines = append(out.Lines, line.String())
	}

	if out.Language == "" && r.detectLanguage && len(out.Lines) > 0 {
		out.Language = langdetect.Detect(strings.Join(out.Lines, "\n"))
	}

	return out
}
