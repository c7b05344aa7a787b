package gfm

import (
	"strconv"

	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// maxOrderedDigits bounds the length of an ordered list number.
const maxOrderedDigits = 9

// listMarker describes a list item marker and the item's content column.
type listMarker struct {
	ordered   bool
	char      byte // bullet character, or '.' / ')' for ordered items
	number    int
	start     int  // first byte of the marker
	end       int  // first byte after the marker
	width     int  // content column: lines indented this far belong to the item
	content   line // rest of the marker line after the marker and its padding
	blankRest bool // nothing follows the marker on its line
}

// parseMarker recognizes a bullet or ordered list marker at pos.
// width is the indentation of pos relative to l.start.
func (p *blockParser) parseMarker(l line, pos, width int) (listMarker, bool) {
	if pos >= l.end {
		return listMarker{}, false
	}

	marker := listMarker{start: pos}

	switch c := p.src[pos]; {
	case c == '-' || c == '+' || c == '*':
		marker.char = c
		marker.end = pos + 1
	case isDigit(c):
		q := pos
		for q < l.end && isDigit(p.src[q]) && q-pos < maxOrderedDigits+1 {
			q++
		}
		if q-pos > maxOrderedDigits || q >= l.end || (p.src[q] != '.' && p.src[q] != ')') {
			return listMarker{}, false
		}
		number, err := strconv.Atoi(p.src[pos:q])
		if err != nil {
			return listMarker{}, false
		}
		marker.ordered = true
		marker.number = number
		marker.char = p.src[q]
		marker.end = q + 1
	default:
		return listMarker{}, false
	}

	if marker.end < l.end && !isSpaceOrTab(p.src[marker.end]) {
		return listMarker{}, false
	}

	markerEndCol := l.col + width + (marker.end - marker.start)
	rest := line{start: marker.end, col: markerEndCol, end: l.end, next: l.next}
	padding, contentPos := p.indent(rest)

	switch {
	case contentPos >= l.end:
		marker.blankRest = true
		marker.width = markerEndCol + 1
		marker.content = line{start: l.end, col: markerEndCol + padding, end: l.end, next: l.next}
	case padding > 4:
		// Content indented five or more columns starts one column after the marker.
		marker.width = markerEndCol + 1
		marker.content = p.advanceTo(rest, markerEndCol+1)
	default:
		marker.width = markerEndCol + padding
		marker.content = line{start: contentPos, col: markerEndCol + padding, end: l.end, next: l.next}
	}

	return marker, true
}

// sameList reports whether next continues the list started by first.
func (m listMarker) sameList(next listMarker) bool {
	return m.ordered == next.ordered && m.char == next.char
}

// parseList parses a list starting with the item whose marker is on lines[i].
func (p *blockParser) parseList(lines []line, i int, marker listMarker) (*mdast.Node, int) {
	kind := mdast.NodeUnorderedList
	if marker.ordered {
		kind = mdast.NodeOrderedList
	}

	first := marker
	var items []*mdast.Node
	next := i

	for {
		item, after := p.parseItem(lines, next, marker)
		items = append(items, item)
		next = after

		k := next
		for k < len(lines) && p.isBlank(lines[k]) {
			k++
		}
		if k >= len(lines) {
			break
		}

		width, pos := p.indent(lines[k])
		if width > maxIndent || p.isThematicBreak(lines[k], pos) {
			break
		}

		sibling, ok := p.parseMarker(lines[k], pos, width)
		if !ok || !first.sameList(sibling) {
			break
		}

		next, marker = k, sibling
	}

	list := mdast.NewNode(kind, mdast.SourceRange{
		StartOffset: lines[i].start,
		EndOffset:   items[len(items)-1].Range.EndOffset,
	})
	tile(p.src, list, items)

	return list, next
}

// parseItem collects the lines of one list item and parses its content.
func (p *blockParser) parseItem(lines []line, i int, marker listMarker) (*mdast.Node, int) {
	var content []line
	if !marker.blankRest {
		content = append(content, marker.content)
	}

	fence := fenceTracker{}
	fence.observe(p, marker.content)

	last := i
	var pending []line

	for j := i + 1; j < len(lines); j++ {
		cur := lines[j]

		if p.isBlank(cur) {
			// An item can begin with at most one blank line.
			if marker.blankRest && j == i+1 {
				break
			}
			pending = append(pending, p.advanceTo(cur, marker.width))
			continue
		}

		width, pos := p.indent(cur)
		if cur.col+width >= marker.width {
			stripped := p.advanceTo(cur, marker.width)
			content = append(content, pending...)
			content = append(content, stripped)
			pending = nil
			fence.observe(p, stripped)
			last = j
			continue
		}

		if len(pending) > 0 || !p.isLazyContinuation(cur, pos, width, content, &fence) {
			break
		}

		content = append(content, cur)
		last = j
	}

	item := mdast.NewNode(mdast.NodeListItem, mdast.SourceRange{
		StartOffset: marker.start,
		EndOffset:   lines[last].end,
	})

	markerKind := mdast.NodeListBullet
	if marker.ordered {
		markerKind = mdast.NodeListNumber
	}

	children := []*mdast.Node{mdast.NewLeaf(markerKind, p.src, marker.start, marker.end)}
	children = append(children, p.parseBlocks(content)...)
	tile(p.src, item, children)

	return item, last + 1
}

// isLazyContinuation reports whether an under-indented line continues the
// paragraph that ends the item content collected so far.
func (p *blockParser) isLazyContinuation(l line, pos, width int, content []line, fence *fenceTracker) bool {
	if len(content) == 0 || fence.open {
		return false
	}

	prev := content[len(content)-1]
	prevWidth, prevPos := p.indent(prev)
	if prevWidth <= maxIndent &&
		(p.isATXHeading(prev, prevPos) || p.isThematicBreak(prev, prevPos) || p.isFenceStart(prev, prevPos)) {
		return false
	}

	if width > maxIndent {
		return true
	}

	if _, isMarker := p.parseMarker(l, pos, width); isMarker {
		return false
	}

	return !p.interruptsParagraph(l, pos, width) && p.setextLevel(l, pos) == 0
}

// fenceTracker follows whether collected item content is inside an open fence.
type fenceTracker struct {
	open   bool
	char   byte
	length int
}

func (f *fenceTracker) observe(p *blockParser, l line) {
	width, pos := p.indent(l)
	if width > maxIndent {
		return
	}

	if f.open {
		if p.closingFence(l, f.char, f.length) >= 0 {
			f.open = false
		}
		return
	}

	if p.isFenceStart(l, pos) {
		f.char, f.length = p.fenceRun(l, pos)
		f.open = true
	}
}
