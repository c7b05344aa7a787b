package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdtouch/pkg/blocks"
	"github.com/yaklabco/mdtouch/pkg/render"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 3 // ID, KIND, SOURCE
	minIDWidth       = 2
	minKindWidth     = 4
	minSourceWidth   = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one block in the block table.
type TableRow struct {
	ID     int
	Kind   string
	Source string
}

// TableFormatter lays out a document's blocks as a table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a table formatter. A non-positive termWidth
// selects a 100 column default.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Rows pairs each block with the kind of its render instruction.
func Rows(list blocks.List, entries []render.Entry) []TableRow {
	kinds := make(map[int]string, len(entries))
	for _, entry := range entries {
		kinds[entry.ID] = KindOf(entry.Item)
	}
	rows := make([]TableRow, 0, len(list))
	for _, b := range list {
		rows = append(rows, TableRow{ID: b.ID, Kind: kinds[b.ID], Source: b.Src})
	}
	return rows
}

// KindOf names a render instruction.
func KindOf(item render.Item) string {
	switch it := item.(type) {
	case render.Heading:
		return "h" + strconv.Itoa(it.Level)
	case render.Paragraph:
		return "paragraph"
	case render.List:
		if it.Ordered {
			return "ordered-list"
		}
		return "list"
	case render.CodeBlock:
		return "code"
	case render.Divider:
		return "divider"
	case render.Blank:
		return "blank"
	default:
		return "unknown"
	}
}

// FormatTable draws rows with a header and separators.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return t.styles.Dim.Render("No blocks") + "\n"
	}

	widths := t.columnWidths(rows)

	var b strings.Builder
	b.WriteString(t.formatSeparator(widths, heavySeparator))
	b.WriteString("\n")
	b.WriteString(t.formatHeader(widths))
	b.WriteString("\n")
	b.WriteString(t.formatSeparator(widths, lightSeparator))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(t.formatRow(row, widths))
		b.WriteString("\n")
	}
	b.WriteString(t.formatSeparator(widths, heavySeparator))
	b.WriteString("\n")
	return b.String()
}

type columnWidths struct {
	id     int
	kind   int
	source int
}

func (t *TableFormatter) columnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{id: minIDWidth, kind: minKindWidth, source: minSourceWidth}
	for _, row := range rows {
		widths.id = max(widths.id, len(strconv.Itoa(row.ID)))
		widths.kind = max(widths.kind, len(row.Kind))
		widths.source = max(widths.source, utf8.RuneCountInString(SourcePreview(row.Source)))
	}

	if total := t.totalWidth(widths); total > t.termWidth {
		widths.source = max(minSourceWidth, widths.source-(total-t.termWidth))
	}
	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return widths.id + widths.kind + widths.source + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %*s  %-*s  %s",
		widths.id, "ID",
		widths.kind, "KIND",
		"SOURCE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	id := fmt.Sprintf(" %*d", widths.id, row.ID)
	kind := fmt.Sprintf("%-*s", widths.kind, row.Kind)
	source := truncateString(SourcePreview(row.Source), widths.source)
	return id + "  " + t.styles.Kind.Render(kind) + "  " + source
}

// SourcePreview quotes a block source on one line, showing line endings
// as escape sequences.
func SourcePreview(src string) string {
	quoted := strconv.Quote(src)
	return quoted[1 : len(quoted)-1]
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
