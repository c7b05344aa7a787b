package render

import (
	"strings"

	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// Style is a set of inline style tags. Nested spans combine their bits.
type Style uint8

// Inline style tags.
const (
	StyleCode Style = 1 << iota
	StyleBold
	StyleItalic
	StyleStrikethrough
	StyleLink
	StyleWikiLink

	StyleNone Style = 0
)

var styleNames = []struct {
	style Style
	name  string
}{
	{StyleCode, "code"},
	{StyleBold, "bold"},
	{StyleItalic, "italic"},
	{StyleStrikethrough, "strikethrough"},
	{StyleLink, "link"},
	{StyleWikiLink, "wikilink"},
}

// Has reports whether s includes every bit of other.
func (s Style) Has(other Style) bool {
	return s&other == other
}

func (s Style) String() string {
	if s == StyleNone {
		return "none"
	}

	var parts []string
	for _, sn := range styleNames {
		if s.Has(sn.style) {
			parts = append(parts, sn.name)
		}
	}
	return strings.Join(parts, "+")
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Run is a piece of inline text with a single style.
type Run struct {
	Text  string `json:"text" yaml:"text"`
	Style Style  `json:"style" yaml:"style"`
}

// Inline renders the children of an inline-bearing node: a paragraph,
// heading content or link text.
func Inline(src string, node *mdast.Node) []Run {
	if node == nil {
		return nil
	}
	return InlineRange(src, node.Children())
}

// InlineRange renders an explicit child range. Leading and trailing
// Whitespace leaves are trimmed; interior whitespace is kept.
func InlineRange(src string, nodes []*mdast.Node) []Run {
	from, to := 0, len(nodes)
	for from < to && nodes[from].Kind == mdast.NodeWhitespace {
		from++
	}
	for to > from && nodes[to-1].Kind == mdast.NodeWhitespace {
		to--
	}

	var w runWriter
	w.nodes(src, nodes[from:to], StyleNone)
	return w.runs
}

// PlainText concatenates the text of runs, dropping styles.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// runWriter holds a Whitespace leaf back until the next content node, so
// spaces ending a line are dropped along with the line break.
type runWriter struct {
	runs    []Run
	prev    mdast.NodeKind
	pending Run
}

func (w *runWriter) emit(text string, style Style) {
	if text == "" {
		return
	}

	if n := len(w.runs); n > 0 && w.runs[n-1].Style == style {
		w.runs[n-1].Text += text
		return
	}
	w.runs = append(w.runs, Run{Text: text, Style: style})
}

func (w *runWriter) nodes(src string, nodes []*mdast.Node, style Style) {
	for _, n := range nodes {
		w.node(src, n, style)
	}
}

func (w *runWriter) node(src string, n *mdast.Node, style Style) {
	switch n.Kind {
	case mdast.NodeEOL, mdast.NodeHardBreak, mdast.NodeWhitespace:
	default:
		w.emit(w.pending.Text, w.pending.Style)
	}
	if n.Kind != mdast.NodeWhitespace {
		w.pending = Run{}
	}

	switch n.Kind {
	case mdast.NodeEOL:
		// A hard break already emitted its newline.
		if w.prev != mdast.NodeHardBreak {
			w.emit(" ", style)
		}

	case mdast.NodeHardBreak:
		w.emit("\n", StyleNone)

	case mdast.NodeWhitespace:
		// Indentation after a line break is not content.
		if w.prev != mdast.NodeEOL && w.prev != mdast.NodeHardBreak {
			w.pending = Run{Text: n.Literal, Style: style}
		}

	case mdast.NodeEscapedChar:
		w.emit(strings.TrimPrefix(n.Literal, `\`), style)

	case mdast.NodeCodeSpan:
		w.emit(codeSpanText(src, n), style|StyleCode)

	case mdast.NodeStrong:
		w.nodes(src, inner(n.Children(), 2), style|StyleBold)

	case mdast.NodeEmphasis:
		w.nodes(src, inner(n.Children(), 1), style|StyleItalic)

	case mdast.NodeStrikethrough:
		children := n.Children()
		w.nodes(src, inner(children, tildeRun(children)), style|StyleStrikethrough)

	case mdast.NodeInlineLink:
		if text := n.ChildOfKind(mdast.NodeLinkText); text != nil {
			w.nodes(src, inner(text.Children(), 1), style|StyleLink)
		}

	case mdast.NodeWikiLink:
		w.emit(n.Text(src), style|StyleWikiLink)

	default:
		if n.HasChildren() {
			w.nodes(src, n.Children(), style)
		} else {
			w.emit(n.Text(src), style)
		}
	}

	w.prev = n.Kind
}

// codeSpanText returns the content between the backtick delimiters. Line
// endings inside a code span read as spaces.
func codeSpanText(src string, n *mdast.Node) string {
	var b strings.Builder
	for _, c := range inner(n.Children(), 1) {
		if c.Kind == mdast.NodeEOL {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(c.Text(src))
	}
	return b.String()
}

// inner drops k delimiter children from each end.
func inner(children []*mdast.Node, k int) []*mdast.Node {
	if len(children) < 2*k {
		return nil
	}
	return children[k : len(children)-k]
}

// tildeRun returns the width of the strikethrough delimiters.
func tildeRun(children []*mdast.Node) int {
	lead := 0
	for lead < len(children) && children[lead].Kind == mdast.NodeTilde {
		lead++
	}

	trail := 0
	for trail < len(children)-lead && children[len(children)-1-trail].Kind == mdast.NodeTilde {
		trail++
	}

	return min(lead, trail)
}
