// Package pretty draws mdtouch output on a terminal with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/mdtouch/pkg/config"
	"github.com/yaklabco/mdtouch/pkg/render"
)

// Styles holds every style used by the preview and the block table.
type Styles struct {
	// Blocks
	Heading   lipgloss.Style
	CodeBlock lipgloss.Style
	CodeLang  lipgloss.Style
	Divider   lipgloss.Style
	Marker    lipgloss.Style
	Gutter    lipgloss.Style

	// Inline runs
	Code          lipgloss.Style
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Strikethrough lipgloss.Style
	Link          lipgloss.Style
	WikiLink      lipgloss.Style

	// Tables and summaries
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	Kind           lipgloss.Style
	Success        lipgloss.Style
	Failure        lipgloss.Style
	Dim            lipgloss.Style
}

// NewStyles returns coloured styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CodeBlock: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("236")),
		CodeLang:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Divider:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Marker:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Gutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Code:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(lipgloss.Color("252")),
		Bold:          lipgloss.NewStyle().Bold(true),
		Italic:        lipgloss.NewStyle().Italic(true),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true),
		Link:          lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("12")),
		WikiLink:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("13")),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Kind:           lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:            lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Heading: plain, CodeBlock: plain, CodeLang: plain, Divider: plain, Marker: plain, Gutter: plain,
		Code: plain, Bold: plain, Italic: plain, Strikethrough: plain, Link: plain, WikiLink: plain,
		TableHeader: plain, TableSeparator: plain, Kind: plain, Success: plain, Failure: plain, Dim: plain,
	}
}

// Run returns the style for an inline run, combining nested tags.
func (s *Styles) Run(style render.Style) lipgloss.Style {
	out := lipgloss.NewStyle()
	layers := []struct {
		tag   render.Style
		style lipgloss.Style
	}{
		{render.StyleLink, s.Link},
		{render.StyleWikiLink, s.WikiLink},
		{render.StyleBold, s.Bold},
		{render.StyleItalic, s.Italic},
		{render.StyleStrikethrough, s.Strikethrough},
		{render.StyleCode, s.Code},
	}
	for _, layer := range layers {
		if style.Has(layer.tag) {
			out = out.Inherit(layer.style)
		}
	}
	return out
}

// IsColorEnabled decides colour for writer. In auto mode colour needs a
// terminal and an unset NO_COLOR.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
