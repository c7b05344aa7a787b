// Package textdiff compares two versions of a document, line by line for
// unified diffs and block by block for edit summaries.
package textdiff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// Op is the kind of one diff line.
type Op int

const (
	// Keep is an unchanged line.
	Keep Op = iota
	// Insert is a line only in the new text.
	Insert
	// Delete is a line only in the old text.
	Delete
)

func (op Op) prefix() byte {
	switch op {
	case Insert:
		return '+'
	case Delete:
		return '-'
	default:
		return ' '
	}
}

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Diff is a line diff between two texts.
type Diff struct {
	Path       string
	Hunks      []Hunk
	Insertions int
	Deletions  int
}

// Lines diffs before and after. It returns nil when the texts have the same
// lines.
func Lines(path, before, after string) *Diff {
	ops := script(splitLines(before), splitLines(after))

	d := &Diff{Path: path}
	for _, op := range ops {
		switch op.Op {
		case Insert:
			d.Insertions++
		case Delete:
			d.Deletions++
		}
	}
	if d.Insertions == 0 && d.Deletions == 0 {
		return nil
	}

	d.Hunks = hunks(ops)
	return d
}

// String renders d in unified diff format.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, line := range h.Lines {
			b.WriteByte(line.Op.prefix())
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// script returns the edit script turning a into b, built from a longest
// common subsequence table.
func script(a, b []string) []Line {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, Line{Keep, a[i]})
			i++
			j++
		case i < len(a) && (j == len(b) || lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, Line{Delete, a[i]})
			i++
		default:
			ops = append(ops, Line{Insert, b[j]})
			j++
		}
	}
	return ops
}

// hunks groups an edit script into hunks. Changes separated by at most
// twice the context share a hunk.
func hunks(ops []Line) []Hunk {
	var out []Hunk

	oldLine, newLine := 1, 1
	for i := 0; i < len(ops); {
		if ops[i].Op == Keep {
			oldLine++
			newLine++
			i++
			continue
		}

		start := max(0, i-contextLines)
		end := i
		for end < len(ops) {
			if ops[end].Op != Keep {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Op == Keep {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				end = min(end+contextLines, run)
				break
			}
			end = run
		}

		lead := i - start
		h := Hunk{OldStart: oldLine - lead, NewStart: newLine - lead, Lines: ops[start:end]}
		for _, line := range h.Lines {
			if line.Op != Insert {
				h.OldCount++
			}
			if line.Op != Delete {
				h.NewCount++
			}
		}
		// An empty side starts at line 0, as in diff -u.
		if h.OldCount == 0 {
			h.OldStart--
		}
		if h.NewCount == 0 {
			h.NewStart--
		}
		out = append(out, h)

		for _, line := range ops[i:end] {
			if line.Op != Insert {
				oldLine++
			}
			if line.Op != Delete {
				newLine++
			}
		}
		i = end
	}
	return out
}
