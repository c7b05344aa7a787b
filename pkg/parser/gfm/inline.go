package gfm

import (
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// inlineParser turns the text of an inline-bearing node into inline nodes.
//
// Parsing runs in passes over a flat item list, in precedence order:
// tokenization (which resolves code spans and escapes), wiki-links,
// inline links, and finally emphasis delimiters.
type inlineParser struct {
	src       string
	wikiLinks bool
}

// parseInto parses the range of n and attaches the inline nodes as its children.
func (p *inlineParser) parseInto(n *mdast.Node) {
	start, end := n.Range.StartOffset, n.Range.EndOffset

	items := p.tokenize(start, end)
	if p.wikiLinks {
		items = p.resolveWikiLinks(items)
	}
	items = p.resolveLinks(items, end)
	items = p.resolveEmphasis(items, start, end)

	mdast.AppendChildren(n, items)
}

// tokenize classifies every byte of src[start:end] into leaves, building
// code spans as it meets them.
func (p *inlineParser) tokenize(start, end int) []*mdast.Node {
	var items []*mdast.Node

	textStart := -1
	pos := start
	ticks := &backtickIndex{src: p.src, start: start, end: end}

	flush := func() {
		if textStart >= 0 {
			items = append(items, mdast.NewLeaf(mdast.NodeText, p.src, textStart, pos))
			textStart = -1
		}
	}

	emit := func(kind mdast.NodeKind, length int) {
		flush()
		items = append(items, mdast.NewLeaf(kind, p.src, pos, pos+length))
		pos += length
	}

	for pos < end {
		c := p.src[pos]

		if n := eolLen(p.src, pos, end); n > 0 {
			flush()
			markHardBreak(items)
			emit(mdast.NodeEOL, n)
			continue
		}

		switch c {
		case ' ', '\t':
			flush()
			runStart := pos
			for pos < end && isSpaceOrTab(p.src[pos]) {
				pos++
			}
			items = append(items, mdast.NewLeaf(mdast.NodeWhitespace, p.src, runStart, pos))
		case '\\':
			switch {
			case eolLen(p.src, pos+1, end) > 0:
				emit(mdast.NodeHardBreak, 1)
			case pos+1 < end && util.IsPunct(p.src[pos+1]):
				emit(mdast.NodeEscapedChar, 2)
			default:
				if textStart < 0 {
					textStart = pos
				}
				pos++
			}
		case '`':
			flush()
			span := p.codeSpan(pos, end, ticks)
			items = append(items, span)
			pos = span.Range.EndOffset
		case '*', '_':
			emit(mdast.NodeEmphMarker, 1)
		case '~':
			emit(mdast.NodeTilde, 1)
		case '[':
			emit(mdast.NodeLBracket, 1)
		case ']':
			emit(mdast.NodeRBracket, 1)
		case '(':
			emit(mdast.NodeLParen, 1)
		case ')':
			emit(mdast.NodeRParen, 1)
		default:
			if textStart < 0 {
				textStart = pos
			}
			pos++
		}
	}

	flush()

	return items
}

// markHardBreak turns a run of two or more spaces ending a line into a hard break.
func markHardBreak(items []*mdast.Node) {
	if len(items) == 0 {
		return
	}

	last := items[len(items)-1]
	if last.Kind != mdast.NodeWhitespace || len(last.Literal) < 2 {
		return
	}

	for i := 0; i < len(last.Literal); i++ {
		if last.Literal[i] != ' ' {
			return
		}
	}

	last.Kind = mdast.NodeHardBreak
}

// backtickIndex records, after the first unmatched code span opener, the
// start of the last backtick run of each length. Later openers without a
// closer then fail without rescanning the rest of the text.
type backtickIndex struct {
	src        string
	start, end int
	last       map[int]int
}

// hasRunAfter reports whether a run of exactly length backticks may start
// after pos. It answers true until the index has been built.
func (x *backtickIndex) hasRunAfter(pos, length int) bool {
	if x.last == nil {
		return true
	}
	last, ok := x.last[length]
	return ok && last > pos
}

func (x *backtickIndex) build() {
	if x.last != nil {
		return
	}
	x.last = make(map[int]int)
	for q := x.start; q < x.end; {
		if x.src[q] != '`' {
			q++
			continue
		}
		runStart := q
		for q < x.end && x.src[q] == '`' {
			q++
		}
		x.last[q-runStart] = runStart
	}
}

// codeSpan builds a code span opened by the backtick run at pos. Without a
// closing run of equal length the opening run stays a literal Backtick leaf.
func (p *inlineParser) codeSpan(pos, end int, ticks *backtickIndex) *mdast.Node {
	openEnd := pos
	for openEnd < end && p.src[openEnd] == '`' {
		openEnd++
	}
	length := openEnd - pos

	if !ticks.hasRunAfter(pos, length) {
		return mdast.NewLeaf(mdast.NodeBacktick, p.src, pos, openEnd)
	}

	for q := openEnd; q < end; {
		if p.src[q] != '`' {
			q++
			continue
		}

		runStart := q
		for q < end && p.src[q] == '`' {
			q++
		}

		if q-runStart == length {
			children := []*mdast.Node{mdast.NewLeaf(mdast.NodeBacktick, p.src, pos, openEnd)}
			children = append(children, fillLeaves(p.src, openEnd, runStart)...)
			children = append(children, mdast.NewLeaf(mdast.NodeBacktick, p.src, runStart, q))
			return mdast.Group(mdast.NodeCodeSpan, children)
		}
	}

	ticks.build()
	return mdast.NewLeaf(mdast.NodeBacktick, p.src, pos, openEnd)
}

// resolveWikiLinks groups [[Name]] sequences into WikiLink nodes.
func (p *inlineParser) resolveWikiLinks(items []*mdast.Node) []*mdast.Node {
	out := make([]*mdast.Node, 0, len(items))

	for i := 0; i < len(items); i++ {
		if link, last, ok := p.wikiLink(items, i); ok {
			out = append(out, link)
			i = last
			continue
		}
		out = append(out, items[i])
	}

	return out
}

// wikiLink matches "[[", a non-empty single-line name without brackets,
// and "]]" starting at items[i]. It returns the node and the index of the
// last item consumed.
func (p *inlineParser) wikiLink(items []*mdast.Node, i int) (*mdast.Node, int, bool) {
	if i+1 >= len(items) || items[i].Kind != mdast.NodeLBracket || items[i+1].Kind != mdast.NodeLBracket {
		return nil, 0, false
	}

	k := i + 2
	for k < len(items) && isWikiNamePart(items[k]) {
		k++
	}

	if k == i+2 || k+1 >= len(items) ||
		items[k].Kind != mdast.NodeRBracket || items[k+1].Kind != mdast.NodeRBracket {
		return nil, 0, false
	}

	name := mdast.NewLeaf(mdast.NodeText, p.src, items[i+2].Range.StartOffset, items[k-1].Range.EndOffset)

	return mdast.Group(mdast.NodeWikiLink, []*mdast.Node{items[i], items[i+1], name, items[k], items[k+1]}), k + 1, true
}

func isWikiNamePart(n *mdast.Node) bool {
	switch n.Kind {
	case mdast.NodeText, mdast.NodeWhitespace, mdast.NodeEscapedChar, mdast.NodeEmphMarker,
		mdast.NodeTilde, mdast.NodeLParen, mdast.NodeRParen, mdast.NodeBacktick:
		return true
	default:
		return false
	}
}

// resolveLinks groups [text](destination "title") sequences into InlineLink
// nodes. Brackets pair innermost first; once a link forms, earlier open
// brackets can no longer start one.
func (p *inlineParser) resolveLinks(items []*mdast.Node, end int) []*mdast.Node {
	out := make([]*mdast.Node, 0, len(items))
	var openers []int // indices into out
	titles := make(map[byte]int)

	for i := 0; i < len(items); i++ {
		out = append(out, items[i])

		switch items[i].Kind {
		case mdast.NodeLBracket:
			openers = append(openers, len(out)-1)
		case mdast.NodeRBracket:
			if len(openers) == 0 {
				continue
			}

			open := openers[len(openers)-1]
			openers = openers[:len(openers)-1]

			if i+1 >= len(items) || items[i+1].Kind != mdast.NodeLParen {
				continue
			}

			tail, last, ok := p.linkTail(items, i+1, end, titles)
			if !ok {
				continue
			}

			inner := append([]*mdast.Node(nil), out[open+1:len(out)-1]...)
			inner = p.resolveEmphasis(inner, out[open].Range.EndOffset, items[i].Range.StartOffset)

			text := append([]*mdast.Node{out[open]}, inner...)
			text = append(text, items[i])

			link := mdast.Group(mdast.NodeInlineLink,
				append([]*mdast.Node{mdast.Group(mdast.NodeLinkText, text)}, tail...))

			out = append(out[:open], link)
			i = last
			openers = openers[:0]
		}
	}

	return out
}

// linkTail parses "(destination title)" starting at the LParen item
// items[lparen]. It returns the tail nodes and the index of the closing
// RParen item. titles maps a title closer to the start of a title scan that
// found no closer; scans starting later cannot find one either.
func (p *inlineParser) linkTail(items []*mdast.Node, lparen, end int, titles map[byte]int) ([]*mdast.Node, int, bool) {
	open := items[lparen].Range.EndOffset

	destStart := p.skipLinkSpace(open, end)
	destEnd, ok := p.scanDestination(destStart, end)
	if !ok {
		return nil, 0, false
	}

	titleStart, titleEnd := -1, -1
	pos := p.skipLinkSpace(destEnd, end)
	if pos > destEnd && pos < end && (p.src[pos] == '"' || p.src[pos] == '\'' || p.src[pos] == '(') {
		closer := titleCloser(p.src[pos])
		if failed, seen := titles[closer]; seen && pos >= failed {
			return nil, 0, false
		}
		titleEnd, ok = p.scanTitle(pos, end)
		if !ok {
			titles[closer] = pos
			return nil, 0, false
		}
		titleStart = pos
		pos = p.skipLinkSpace(titleEnd, end)
	}

	if pos >= end || p.src[pos] != ')' {
		return nil, 0, false
	}

	last := itemStartingAt(items, lparen, pos)
	if last < 0 || items[last].Kind != mdast.NodeRParen {
		return nil, 0, false
	}

	// The destination and title must not split a token.
	for _, offset := range []int{destStart, destEnd, titleStart, titleEnd} {
		if offset >= 0 && itemStartingAt(items, lparen, offset) < 0 {
			return nil, 0, false
		}
	}

	tail := []*mdast.Node{items[lparen]}
	cursor := open

	if destEnd > destStart {
		tail = append(tail, fillLeaves(p.src, cursor, destStart)...)
		tail = append(tail, mdast.NewLeaf(mdast.NodeLinkDestination, p.src, destStart, destEnd))
		cursor = destEnd
	}

	if titleStart >= 0 {
		tail = append(tail, fillLeaves(p.src, cursor, titleStart)...)
		tail = append(tail, mdast.NewLeaf(mdast.NodeLinkTitle, p.src, titleStart, titleEnd))
		cursor = titleEnd
	}

	tail = append(tail, fillLeaves(p.src, cursor, pos)...)
	tail = append(tail, items[last])

	return tail, last, true
}

// skipLinkSpace skips spaces and tabs with at most one line ending.
func (p *inlineParser) skipLinkSpace(pos, end int) int {
	for pos < end && isSpaceOrTab(p.src[pos]) {
		pos++
	}

	if n := eolLen(p.src, pos, end); n > 0 {
		pos += n
		for pos < end && isSpaceOrTab(p.src[pos]) {
			pos++
		}
	}

	return pos
}

// maxLinkParenDepth bounds parenthesis nesting inside a link destination.
const maxLinkParenDepth = 32

// scanDestination scans a link destination, either <bracketed> or a run
// without spaces and with balanced parentheses nested at most
// maxLinkParenDepth deep.
func (p *inlineParser) scanDestination(pos, end int) (int, bool) {
	if pos < end && p.src[pos] == '<' {
		for q := pos + 1; q < end; q++ {
			switch p.src[q] {
			case '>':
				return q + 1, true
			case '<', '\n', '\r':
				return 0, false
			case '\\':
				q++
			}
		}
		return 0, false
	}

	depth := 0
	q := pos
	for q < end {
		c := p.src[q]
		if c == '\\' && q+1 < end && util.IsPunct(p.src[q+1]) {
			q += 2
			continue
		}

		if c <= ' ' {
			break
		}

		if c == '(' {
			depth++
			if depth > maxLinkParenDepth {
				return 0, false
			}
		} else if c == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
		q++
	}

	return q, depth == 0
}

// scanTitle scans a quoted or parenthesized link title starting at pos and
// returns the offset after its closing delimiter.
func (p *inlineParser) scanTitle(pos, end int) (int, bool) {
	closer := titleCloser(p.src[pos])

	for q := pos + 1; q < end; q++ {
		switch p.src[q] {
		case closer:
			return q + 1, true
		case '\\':
			q++
		}
	}

	return 0, false
}

func titleCloser(open byte) byte {
	if open == '(' {
		return ')'
	}
	return open
}

// itemStartingAt returns the index of the first item at or after from that
// starts at offset, or -1.
func itemStartingAt(items []*mdast.Node, from, offset int) int {
	for k := from; k < len(items); k++ {
		switch start := items[k].Range.StartOffset; {
		case start == offset:
			return k
		case start > offset:
			return -1
		}
	}
	return -1
}
