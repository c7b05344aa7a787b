package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtouch/pkg/langdetect"
	"github.com/yaklabco/mdtouch/pkg/render"
)

const (
	defaultDividerWidth = 40
	gutterWidth         = 4
	gutterBar           = " │ "
	codeIndent          = "  "
	dividerRune         = "─"
)

// Preview draws render instructions as terminal text.
type Preview struct {
	styles  *Styles
	width   int
	showIDs bool
}

// PreviewOption configures a Preview.
type PreviewOption func(*Preview)

// WithWidth sets the divider width. Non-positive widths are ignored.
func WithWidth(width int) PreviewOption {
	return func(p *Preview) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithBlockIDs prefixes each block with a gutter showing its id.
func WithBlockIDs(show bool) PreviewOption {
	return func(p *Preview) {
		p.showIDs = show
	}
}

// NewPreview creates a Preview.
func NewPreview(styles *Styles, opts ...PreviewOption) *Preview {
	p := &Preview{styles: styles, width: defaultDividerWidth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Document draws every entry in order. Blank entries produce no output.
func (p *Preview) Document(entries []render.Entry) string {
	var b strings.Builder
	for _, entry := range entries {
		if _, ok := entry.Item.(render.Blank); ok {
			continue
		}
		text := p.Item(entry.Item)
		if p.showIDs {
			text = p.gutter(entry.ID, text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// Item draws one render instruction, ending with a newline.
func (p *Preview) Item(item render.Item) string {
	var lines []string
	switch it := item.(type) {
	case render.Heading:
		prefix := strings.Repeat("#", it.Level) + " "
		lines = append(lines, p.styles.Heading.Render(prefix+render.PlainText(it.Runs)), "")
	case render.Paragraph:
		lines = append(lines, strings.Split(p.Runs(it.Runs), "\n")...)
		if it.BottomSpacing {
			lines = append(lines, "")
		}
	case render.List:
		lines = p.list(it)
	case render.CodeBlock:
		lines = p.codeBlock(it)
	case render.Divider:
		lines = append(lines, p.styles.Divider.Render(strings.Repeat(dividerRune, p.width)))
	case render.Blank:
		return ""
	default:
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Runs draws inline runs with their styles applied.
func (p *Preview) Runs(runs []render.Run) string {
	var b strings.Builder
	for _, run := range runs {
		if run.Style == render.StyleNone {
			b.WriteString(run.Text)
			continue
		}
		b.WriteString(p.styles.Run(run.Style).Render(run.Text))
	}
	return b.String()
}

func (p *Preview) list(list render.List) []string {
	indent := strings.Repeat(" ", list.Indent/render.TopLevelIndent*2)
	var lines []string
	for _, item := range list.Items {
		marker := item.Marker
		pad := strings.Repeat(" ", len([]rune(marker))+1)
		first := true
		for _, child := range item.Children {
			body := strings.TrimSuffix(p.Item(child), "\n")
			for _, line := range strings.Split(body, "\n") {
				switch {
				case first:
					lines = append(lines, indent+p.styles.Marker.Render(marker)+" "+line)
					first = false
				case line == "":
					lines = append(lines, "")
				default:
					lines = append(lines, indent+pad+line)
				}
			}
		}
		if first {
			lines = append(lines, indent+p.styles.Marker.Render(marker))
		}
	}
	if list.Margin > 0 {
		lines = append(lines, "")
	}
	return lines
}

func (p *Preview) codeBlock(code render.CodeBlock) []string {
	var lines []string
	if code.Language != "" {
		lines = append(lines, p.styles.CodeLang.Render(codeIndent+langdetect.Normalize(code.Language)))
	}
	for _, line := range code.Lines {
		lines = append(lines, codeIndent+p.styles.CodeBlock.Render(line))
	}
	return append(lines, "")
}

func (p *Preview) gutter(id int, text string) string {
	body := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	blank := strings.Repeat(" ", gutterWidth)
	for i, line := range body {
		label := blank
		if i == 0 {
			label = fmt.Sprintf("%*d", gutterWidth, id)
		}
		body[i] = strings.TrimRight(p.styles.Gutter.Render(label+gutterBar)+line, " ")
	}
	return strings.Join(body, "\n") + "\n"
}
