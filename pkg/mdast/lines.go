package mdast

import "sort"

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of content).
	EndOffset int
}

// HasNewline reports whether the line is terminated by a line ending.
func (l LineInfo) HasNewline() bool {
	return l.NewlineStart < l.EndOffset
}

// BuildLines constructs line metadata from content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
// Content ending in a newline has no trailing empty line.
func BuildLines(content string) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		if content[idx] != '\n' {
			continue
		}

		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	if lineStart < len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineIndex maps byte offsets in a document to line/column positions.
type LineIndex struct {
	content string
	lines   []LineInfo
}

// NewLineIndex builds a LineIndex over content.
func NewLineIndex(content string) *LineIndex {
	return &LineIndex{content: content, lines: BuildLines(content)}
}

// LineCount returns the number of lines.
func (x *LineIndex) LineCount() int {
	return len(x.lines)
}

// PositionAt converts a byte offset to a 1-based line and column.
// Column counts bytes, not runes. The zero Position is returned for
// negative offsets or empty content.
func (x *LineIndex) PositionAt(offset int) Position {
	if offset < 0 || len(x.lines) == 0 {
		return Position{}
	}

	if offset >= len(x.content) {
		last := x.lines[len(x.lines)-1]
		if last.HasNewline() {
			return Position{Line: len(x.lines) + 1, Column: offset - len(x.content) + 1}
		}
		return Position{Line: len(x.lines), Column: offset - last.StartOffset + 1}
	}

	lineIdx := sort.Search(len(x.lines), func(i int) bool {
		return x.lines[i].EndOffset > offset
	})

	return Position{Line: lineIdx + 1, Column: offset - x.lines[lineIdx].StartOffset + 1}
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns "" if the line number is out of range.
func (x *LineIndex) LineContent(line int) string {
	if line < 1 || line > len(x.lines) {
		return ""
	}

	info := x.lines[line-1]
	return x.content[info.StartOffset:info.NewlineStart]
}
