package gfm

import (
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// cell links one inline item to its neighbours so that grouping a span
// costs only the items it absorbs.
type cell struct {
	node       *mdast.Node
	prev, next *cell
}

// cellList is a doubly linked list of inline items with a sentinel head.
type cellList struct {
	head cell
}

func newCellList(items []*mdast.Node) (*cellList, []*cell) {
	list := &cellList{}
	cells := make([]*cell, len(items))
	last := &list.head
	for i, item := range items {
		c := &cell{node: item, prev: last}
		last.next = c
		cells[i] = c
		last = c
	}
	return list, cells
}

// group replaces the cells from first to last with one composite node.
func (l *cellList) group(kind mdast.NodeKind, first, last *cell) {
	var nodes []*mdast.Node
	for c := first; ; c = c.next {
		nodes = append(nodes, c.node)
		if c == last {
			break
		}
	}

	g := &cell{node: mdast.Group(kind, nodes), prev: first.prev, next: last.next}
	g.prev.next = g
	if g.next != nil {
		g.next.prev = g
	}
}

func (l *cellList) nodes() []*mdast.Node {
	var out []*mdast.Node
	for c := l.head.next; c != nil; c = c.next {
		out = append(out, c.node)
	}
	return out
}

// delimiter is a run of '*', '_' or '~' marker leaves.
type delimiter struct {
	char     byte
	markers  []*cell // unmatched marker cells, in source order
	origLen  int
	canOpen  bool
	canClose bool

	index      int
	prev, next *delimiter
}

// bottomKey groups closers that accept exactly the same openers.
type bottomKey struct {
	char    byte
	canOpen bool
	class   int
}

func (d *delimiter) key() bottomKey {
	if d.char == '~' {
		return bottomKey{char: d.char, class: len(d.markers)}
	}
	return bottomKey{char: d.char, canOpen: d.canOpen, class: d.origLen % 3}
}

func (d *delimiter) unlink() {
	if d.prev != nil {
		d.prev.next = d.next
	}
	if d.next != nil {
		d.next.prev = d.prev
	}
}

// resolveEmphasis pairs delimiter runs in items into Emphasis, Strong and
// Strikethrough nodes. start and end bound the inline content and count as
// whitespace for flanking purposes.
//
// Openers that failed a closer are never searched again by closers of the
// same key, and matched or exhausted runs leave the delimiter list, so the
// work stays linear in the number of items.
func (p *inlineParser) resolveEmphasis(items []*mdast.Node, start, end int) []*mdast.Node {
	list, cells := newCellList(items)
	first := p.collectDelimiters(items, cells, start, end)
	if first == nil {
		return items
	}

	bottoms := make(map[bottomKey]int)

	for closer := first; closer != nil; {
		if !closer.canClose {
			closer = closer.next
			continue
		}

		key := closer.key()
		bottom, seen := bottoms[key]
		if !seen {
			bottom = -1
		}

		opener := closer.prev
		for opener != nil && opener.index > bottom && !opens(opener, closer) {
			opener = opener.prev
		}
		if opener == nil || opener.index <= bottom {
			bottoms[key] = closer.index - 1
			next := closer.next
			if !closer.canOpen {
				closer.unlink()
			}
			closer = next
			continue
		}

		use := 1
		switch {
		case closer.char == '~':
			use = len(closer.markers)
		case len(opener.markers) >= 2 && len(closer.markers) >= 2:
			use = 2
		}

		list.group(spanKind(closer.char, use), opener.markers[len(opener.markers)-use], closer.markers[use-1])

		opener.markers = opener.markers[:len(opener.markers)-use]
		closer.markers = closer.markers[use:]

		// Delimiters between the pair can no longer match anything.
		opener.next = closer
		closer.prev = opener

		if len(opener.markers) == 0 {
			opener.unlink()
		}
		if len(closer.markers) == 0 {
			next := closer.next
			closer.unlink()
			closer = next
		}
	}

	return list.nodes()
}

// opens reports whether opener can pair with closer.
func opens(opener, closer *delimiter) bool {
	if opener.char != closer.char || !opener.canOpen {
		return false
	}

	if closer.char == '~' {
		return len(opener.markers) == len(closer.markers) && len(closer.markers) <= 2
	}

	// Rule of three: a run that can both open and close cannot pair with a
	// run whose combined length is a multiple of three, unless both
	// lengths are.
	return !((opener.canClose || closer.canOpen) &&
		(opener.origLen+closer.origLen)%3 == 0 &&
		(opener.origLen%3 != 0 || closer.origLen%3 != 0))
}

func spanKind(char byte, use int) mdast.NodeKind {
	switch {
	case char == '~':
		return mdast.NodeStrikethrough
	case use == 2:
		return mdast.NodeStrong
	default:
		return mdast.NodeEmphasis
	}
}

// collectDelimiters finds maximal runs of identical marker leaves in items,
// computes their flanking and returns the first run of the linked list.
func (p *inlineParser) collectDelimiters(items []*mdast.Node, cells []*cell, start, end int) *delimiter {
	var first, last *delimiter

	for i := 0; i < len(items); {
		kind := items[i].Kind
		if kind != mdast.NodeEmphMarker && kind != mdast.NodeTilde {
			i++
			continue
		}

		char := items[i].Literal[0]
		j := i + 1
		for j < len(items) && items[j].Kind == kind && items[j].Literal[0] == char {
			j++
		}

		runStart, runEnd := items[i].Range.StartOffset, items[j-1].Range.EndOffset
		before, after := ' ', ' '
		if runStart > start {
			before, _ = utf8.DecodeLastRuneInString(p.src[start:runStart])
		}
		if runEnd < end {
			after, _ = utf8.DecodeRuneInString(p.src[runEnd:end])
		}

		leftFlanking := !isSpaceRune(after) &&
			(!isPunctRune(after) || isSpaceRune(before) || isPunctRune(before))
		rightFlanking := !isSpaceRune(before) &&
			(!isPunctRune(before) || isSpaceRune(after) || isPunctRune(after))

		d := &delimiter{
			char:     char,
			markers:  append([]*cell(nil), cells[i:j]...),
			origLen:  j - i,
			canOpen:  leftFlanking,
			canClose: rightFlanking,
			index:    i,
			prev:     last,
		}
		if char == '_' {
			d.canOpen = leftFlanking && (!rightFlanking || isPunctRune(before))
			d.canClose = rightFlanking && (!leftFlanking || isPunctRune(after))
		}

		if last == nil {
			first = d
		} else {
			last.next = d
		}
		last = d
		i = j
	}

	return first
}

func isSpaceRune(r rune) bool {
	if r < utf8.RuneSelf {
		return util.IsSpace(byte(r))
	}
	return unicode.IsSpace(r)
}

func isPunctRune(r rune) bool {
	if r < utf8.RuneSelf {
		return util.IsPunct(byte(r))
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
