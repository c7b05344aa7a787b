package pretty

import (
	"fmt"
	"sort"
	"strings"
)

// Summary describes a document after a command touched it.
type Summary struct {
	Path   string
	Kinds  []string // one entry per block, as returned by KindOf
	Saved  bool
	Backup string
}

// FormatSummaryOneLine formats s as a single line.
// Example: "5 blocks in notes.md (1 h1, 2 paragraph, 2 blank), saved".
func (s *Styles) FormatSummaryOneLine(sum Summary) string {
	blockWord := "blocks"
	if len(sum.Kinds) == 1 {
		blockWord = "block"
	}
	line := fmt.Sprintf("%d %s in %s", len(sum.Kinds), blockWord, sum.Path)

	if counts := countKinds(sum.Kinds); counts != "" {
		line += s.Dim.Render(" (" + counts + ")")
	}
	if sum.Saved {
		line += ", " + s.Success.Render("saved")
	}
	if sum.Backup != "" {
		line += s.Dim.Render(", backup " + sum.Backup)
	}
	return line + "\n"
}

// FormatError formats a failure line.
func (s *Styles) FormatError(msg string) string {
	return s.Failure.Render("error:") + " " + msg + "\n"
}

func countKinds(kinds []string) string {
	counts := make(map[string]int)
	for _, kind := range kinds {
		counts[kind]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%d %s", counts[name], name))
	}
	return strings.Join(parts, ", ")
}
