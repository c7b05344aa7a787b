package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtouch/internal/ui/pretty"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name string
		sum  pretty.Summary
		want string
	}{
		{
			name: "empty document",
			sum:  pretty.Summary{Path: "a.md"},
			want: "0 blocks in a.md\n",
		},
		{
			name: "single block",
			sum:  pretty.Summary{Path: "a.md", Kinds: []string{"h1"}},
			want: "1 block in a.md (1 h1)\n",
		},
		{
			name: "saved with backup",
			sum: pretty.Summary{
				Path:   "notes.md",
				Kinds:  []string{"h1", "blank", "paragraph", "blank", "paragraph"},
				Saved:  true,
				Backup: "notes.md.bak",
			},
			want: "5 blocks in notes.md (2 blank, 1 h1, 2 paragraph), saved, backup notes.md.bak\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.sum))
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error: boom\n", pretty.NewStyles(false).FormatError("boom"))
}
