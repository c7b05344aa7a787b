package gfm

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// maxIndent is the widest indentation a block marker may have before the
// line stops being a block start.
const maxIndent = 3

// line is a view of one source line inside a container. Container prefixes
// (list item indentation) have already been consumed from start.
type line struct {
	start int // first byte of the line's content within the container
	col   int // visual column of start, with tabs expanded to multiples of 4
	end   int // end of content, before the line ending
	next  int // first byte after the line ending
}

// documentLines returns the top-level line views of text.
func documentLines(text string) []line {
	infos := mdast.BuildLines(text)
	lines := make([]line, len(infos))
	for i, info := range infos {
		lines[i] = line{start: info.StartOffset, end: info.NewlineStart, next: info.EndOffset}
	}
	return lines
}

// blockParser recognizes block structure over a list of line views.
type blockParser struct {
	src    string
	inline *inlineParser
}

// parseBlocks parses the blocks of one container. Blank lines are skipped
// and left for the caller to tile.
func (p *blockParser) parseBlocks(lines []line) []*mdast.Node {
	var blocks []*mdast.Node

	for i := 0; i < len(lines); {
		if p.isBlank(lines[i]) {
			i++
			continue
		}

		node, next := p.parseBlock(lines, i)
		blocks = append(blocks, node)
		i = next
	}

	return blocks
}

// parseBlock parses the block starting at lines[i] and returns it together
// with the index of the first line after it.
//
// Indentation that changes how a block parses belongs to the block: over
// maxIndent it keeps the line from starting a block, and before a fence or
// list it sets the content and item columns. Such blocks start at the line
// start so that their source reparses to the same tree on its own.
func (p *blockParser) parseBlock(lines []line, i int) (*mdast.Node, int) {
	cur := lines[i]
	width, pos := p.indent(cur)

	if width <= maxIndent {
		if node, next, ok := p.tryFence(lines, i, pos, width); ok {
			return node, next
		}

		if node, ok := p.tryATXHeading(cur, pos); ok {
			return node, i + 1
		}

		if p.isThematicBreak(cur, pos) {
			return mdast.NewLeaf(mdast.NodeHorizontalRule, p.src, pos, cur.end), i + 1
		}

		if marker, ok := p.parseMarker(cur, pos, width); ok {
			return p.parseList(lines, i, marker)
		}
	}

	if width > maxIndent {
		pos = cur.start
	}

	return p.parseParagraph(lines, i, pos)
}

// indent measures the leading whitespace of l. It returns the width in
// columns and the offset of the first non-whitespace byte.
func (p *blockParser) indent(l line) (int, int) {
	width, n := util.IndentWidth([]byte(p.src[l.start:l.end]), l.col)
	return width, l.start + n
}

// advanceTo consumes leading whitespace of l until the visual column reaches col.
func (p *blockParser) advanceTo(l line, col int) line {
	pos, c := l.start, l.col
	for pos < l.end && c < col {
		switch p.src[pos] {
		case ' ':
			c++
		case '\t':
			c += 4 - c%4
		default:
			return line{start: pos, col: c, end: l.end, next: l.next}
		}
		pos++
	}
	return line{start: pos, col: c, end: l.end, next: l.next}
}

func (p *blockParser) isBlank(l line) bool {
	return util.IsBlank([]byte(p.src[l.start:l.end]))
}

// parseParagraph collects paragraph lines starting at lines[i]. A paragraph
// followed by a setext underline becomes a heading.
func (p *blockParser) parseParagraph(lines []line, i, pos int) (*mdast.Node, int) {
	j := i + 1
	for ; j < len(lines); j++ {
		cur := lines[j]
		if p.isBlank(cur) {
			break
		}

		width, lpos := p.indent(cur)
		if width > maxIndent {
			continue
		}

		if level := p.setextLevel(cur, lpos); level > 0 {
			return p.setextHeading(pos, lines[j-1], cur, lpos, level), j + 1
		}

		if p.interruptsParagraph(cur, lpos, width) {
			break
		}
	}

	para := mdast.NewNode(mdast.NodeParagraph, mdast.SourceRange{StartOffset: pos, EndOffset: lines[j-1].end})
	p.inline.parseInto(para)

	return para, j
}

// setextLevel returns 1 for an "===" underline, 2 for "---", 0 otherwise.
func (p *blockParser) setextLevel(l line, pos int) int {
	if pos >= l.end || (p.src[pos] != '=' && p.src[pos] != '-') {
		return 0
	}

	c := p.src[pos]
	q := pos
	for q < l.end && p.src[q] == c {
		q++
	}

	if strings.TrimRight(p.src[q:l.end], " \t") != "" {
		return 0
	}

	if c == '=' {
		return 1
	}
	return 2
}

func (p *blockParser) setextHeading(start int, last, underline line, pos, level int) *mdast.Node {
	runEnd := pos
	for runEnd < underline.end && p.src[runEnd] == p.src[pos] {
		runEnd++
	}

	heading := mdast.NewNode(mdast.NodeHeading, mdast.SourceRange{StartOffset: start, EndOffset: underline.end})
	heading.Level = level

	content := mdast.NewNode(mdast.NodeHeadingContent, mdast.SourceRange{StartOffset: start, EndOffset: last.end})
	p.inline.parseInto(content)

	tile(p.src, heading, []*mdast.Node{
		content,
		mdast.NewLeaf(mdast.NodeSetextUnderline, p.src, pos, runEnd),
	})

	return heading
}

// interruptsParagraph reports whether l starts a block that can interrupt a
// paragraph: a fence, an ATX heading, a thematic break, or a non-empty list
// item (ordered items only when numbered 1).
func (p *blockParser) interruptsParagraph(l line, pos, width int) bool {
	if p.isFenceStart(l, pos) || p.isATXHeading(l, pos) || p.isThematicBreak(l, pos) {
		return true
	}

	marker, ok := p.parseMarker(l, pos, width)
	if !ok || marker.blankRest {
		return false
	}

	return !marker.ordered || marker.number == 1
}

// isATXHeading reports whether l starts with 1-6 '#' followed by a space,
// a tab or the end of the line.
func (p *blockParser) isATXHeading(l line, pos int) bool {
	level := 0
	q := pos
	for q < l.end && p.src[q] == '#' {
		level++
		q++
	}

	return level >= 1 && level <= 6 && (q == l.end || isSpaceOrTab(p.src[q]))
}

func (p *blockParser) tryATXHeading(l line, pos int) (*mdast.Node, bool) {
	if !p.isATXHeading(l, pos) {
		return nil, false
	}

	markerEnd := pos
	for markerEnd < l.end && p.src[markerEnd] == '#' {
		markerEnd++
	}

	heading := mdast.NewNode(mdast.NodeHeading, mdast.SourceRange{StartOffset: pos, EndOffset: l.end})
	heading.Level = markerEnd - pos

	children := []*mdast.Node{mdast.NewLeaf(mdast.NodeHeadingMarker, p.src, pos, markerEnd)}

	contentStart := markerEnd
	for contentStart < l.end && isSpaceOrTab(p.src[contentStart]) {
		contentStart++
	}

	contentEnd := trimRightSpace(p.src, contentStart, l.end)

	// Optional closing sequence: a run of '#' that is the whole content or
	// is preceded by a space.
	closeStart, closeEnd := -1, -1
	if contentEnd > contentStart {
		k := contentEnd
		for k > contentStart && p.src[k-1] == '#' {
			k--
		}

		switch {
		case k == contentStart:
			closeStart, closeEnd = k, contentEnd
			contentEnd = contentStart
		case k < contentEnd && isSpaceOrTab(p.src[k-1]):
			closeStart, closeEnd = k, contentEnd
			contentEnd = trimRightSpace(p.src, contentStart, k)
		}
	}

	if contentEnd > contentStart {
		content := mdast.NewNode(mdast.NodeHeadingContent,
			mdast.SourceRange{StartOffset: contentStart, EndOffset: contentEnd})
		p.inline.parseInto(content)
		children = append(children, content)
	}

	if closeStart >= 0 {
		children = append(children, mdast.NewLeaf(mdast.NodeHeadingMarker, p.src, closeStart, closeEnd))
	}

	tile(p.src, heading, children)

	return heading, true
}

// isThematicBreak reports whether l is three or more '-', '*' or '_'
// characters, optionally separated by spaces or tabs.
func (p *blockParser) isThematicBreak(l line, pos int) bool {
	if pos >= l.end {
		return false
	}

	c := p.src[pos]
	if c != '-' && c != '*' && c != '_' {
		return false
	}

	count := 0
	for q := pos; q < l.end; q++ {
		switch p.src[q] {
		case c:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}

	return count >= 3
}

// fenceRun returns the fence character and run length at pos, or 0 when
// pos does not start a run of three or more backticks or tildes.
func (p *blockParser) fenceRun(l line, pos int) (byte, int) {
	if pos >= l.end || (p.src[pos] != '`' && p.src[pos] != '~') {
		return 0, 0
	}

	c := p.src[pos]
	q := pos
	for q < l.end && p.src[q] == c {
		q++
	}

	if q-pos < 3 {
		return 0, 0
	}

	return c, q - pos
}

func (p *blockParser) isFenceStart(l line, pos int) bool {
	c, n := p.fenceRun(l, pos)
	if n == 0 {
		return false
	}

	// A backtick fence's info string may not contain backticks.
	return c != '`' || !strings.ContainsRune(p.src[pos+n:l.end], '`')
}

// closingFence returns the end of the closing fence run on l, or -1.
func (p *blockParser) closingFence(l line, char byte, length int) int {
	width, pos := p.indent(l)
	if width > maxIndent {
		return -1
	}

	c, n := p.fenceRun(l, pos)
	if c != char || n < length {
		return -1
	}

	if strings.TrimRight(p.src[pos+n:l.end], " \t") != "" {
		return -1
	}

	return pos + n
}

// tryFence parses a fenced code block starting at lines[i]. An unterminated
// fence extends to the last non-blank line of the container.
func (p *blockParser) tryFence(lines []line, i, pos, width int) (*mdast.Node, int, bool) {
	cur := lines[i]
	if !p.isFenceStart(cur, pos) {
		return nil, 0, false
	}

	char, length := p.fenceRun(cur, pos)

	children := []*mdast.Node{mdast.NewLeaf(mdast.NodeFenceStart, p.src, pos, pos+length)}

	infoStart := pos + length
	for infoStart < cur.end && isSpaceOrTab(p.src[infoStart]) {
		infoStart++
	}
	if infoEnd := trimRightSpace(p.src, infoStart, cur.end); infoEnd > infoStart {
		children = append(children, mdast.NewLeaf(mdast.NodeFenceLang, p.src, infoStart, infoEnd))
	}

	closeLine, closeEnd := -1, -1
	lastContent := i
	for j := i + 1; j < len(lines); j++ {
		if end := p.closingFence(lines[j], char, length); end >= 0 {
			closeLine, closeEnd = j, end
			break
		}
		if !p.isBlank(lines[j]) {
			lastContent = j
		}
	}

	contentEnd := lastContent
	if closeLine >= 0 {
		contentEnd = closeLine - 1
	}

	for j := i + 1; j <= contentEnd; j++ {
		lineWidth, _ := p.indent(lines[j])
		content := p.advanceTo(lines[j], lines[j].col+min(width, lineWidth))
		if content.start < content.end {
			children = append(children, mdast.NewLeaf(mdast.NodeFenceContent, p.src, content.start, content.end))
		}
	}

	end := lines[contentEnd].end
	next := contentEnd + 1
	if closeLine >= 0 {
		_, closePos := p.indent(lines[closeLine])
		children = append(children, mdast.NewLeaf(mdast.NodeFenceEnd, p.src, closePos, closeEnd))
		end = closeEnd
		next = closeLine + 1
	}

	fence := mdast.NewNode(mdast.NodeCodeFence, mdast.SourceRange{StartOffset: cur.start, EndOffset: end})
	tile(p.src, fence, children)

	return fence, next, true
}

// trimRightSpace returns the end of src[start:end] with trailing spaces and tabs removed.
func trimRightSpace(src string, start, end int) int {
	for end > start && isSpaceOrTab(src[end-1]) {
		end--
	}
	return end
}
