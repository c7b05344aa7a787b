package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtouch/pkg/mdast"
	"github.com/yaklabco/mdtouch/pkg/parser/gfm"
	"github.com/yaklabco/mdtouch/pkg/render"
)

func paragraphRuns(t *testing.T, src string) []render.Run {
	t.Helper()

	node := gfm.New().ParseBlock(src)
	require.Equal(t, mdast.NodeParagraph, node.Kind, "%q", src)

	return render.Inline(src, node)
}

func TestInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []render.Run
	}{
		{
			name: "plain",
			src:  "hello world",
			want: []render.Run{{Text: "hello world"}},
		},
		{
			name: "code span",
			src:  "a `code` b",
			want: []render.Run{{Text: "a "}, {Text: "code", Style: render.StyleCode}, {Text: " b"}},
		},
		{
			name: "bold and italic",
			src:  "**bold** and *it*",
			want: []render.Run{
				{Text: "bold", Style: render.StyleBold},
				{Text: " and "},
				{Text: "it", Style: render.StyleItalic},
			},
		},
		{
			name: "strikethrough",
			src:  "~~gone~~",
			want: []render.Run{{Text: "gone", Style: render.StyleStrikethrough}},
		},
		{
			name: "link shows only its text",
			src:  `[text](http://example.com "title")`,
			want: []render.Run{{Text: "text", Style: render.StyleLink}},
		},
		{
			name: "wiki link keeps its brackets",
			src:  "see [[Page Name]]",
			want: []render.Run{{Text: "see "}, {Text: "[[Page Name]]", Style: render.StyleWikiLink}},
		},
		{
			name: "nested styles combine",
			src:  "***both***",
			want: []render.Run{{Text: "both", Style: render.StyleBold | render.StyleItalic}},
		},
		{
			name: "code inside bold",
			src:  "**bold `c`**",
			want: []render.Run{
				{Text: "bold ", Style: render.StyleBold},
				{Text: "c", Style: render.StyleBold | render.StyleCode},
			},
		},
		{
			name: "soft break is one space",
			src:  "line one\nline two",
			want: []render.Run{{Text: "line one line two"}},
		},
		{
			name: "continuation indent is dropped",
			src:  "line one\n   line two",
			want: []render.Run{{Text: "line one line two"}},
		},
		{
			name: "trailing spaces make a hard break",
			src:  "a  \nb",
			want: []render.Run{{Text: "a\nb"}},
		},
		{
			name: "backslash makes a hard break",
			src:  "a\\\nb",
			want: []render.Run{{Text: "a\nb"}},
		},
		{
			name: "escapes lose their backslash",
			src:  `\*not emphasis\*`,
			want: []render.Run{{Text: "*not emphasis*"}},
		},
		{
			name: "line ending in code span",
			src:  "`a\nb`",
			want: []render.Run{{Text: "a b", Style: render.StyleCode}},
		},
		{
			name: "interior whitespace kept",
			src:  "a   b",
			want: []render.Run{{Text: "a   b"}},
		},
		{
			name: "soft break drops continuation indent",
			src:  "a\n   b",
			want: []render.Run{{Text: "a b"}},
		},
		{
			name: "hard break drops continuation indent",
			src:  "a  \n  b",
			want: []render.Run{{Text: "a\nb"}},
		},
		{
			name: "backslash hard break",
			src:  "a\\\n  b",
			want: []render.Run{{Text: "a\nb"}},
		},
		{
			name: "single trailing space before soft break",
			src:  "a \n b",
			want: []render.Run{{Text: "a b"}},
		},
		{
			name: "trailing tab is not a hard break",
			src:  "a\t\nb",
			want: []render.Run{{Text: "a b"}},
		},
		{
			name: "trailing space after styled run",
			src:  "*a* \nb",
			want: []render.Run{{Text: "a", Style: render.StyleItalic}, {Text: " b"}},
		},
		{
			name: "unmatched markers are literal",
			src:  "2 * 3 = 6",
			want: []render.Run{{Text: "2 * 3 = 6"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, paragraphRuns(t, tt.src))
		})
	}
}

func TestInlineRange_TrimsOnlyWhitespaceLeaves(t *testing.T) {
	t.Parallel()

	src := "  x  "
	nodes := []*mdast.Node{
		mdast.NewLeaf(mdast.NodeWhitespace, src, 0, 2),
		mdast.NewLeaf(mdast.NodeText, src, 2, 3),
		mdast.NewLeaf(mdast.NodeWhitespace, src, 3, 5),
	}
	assert.Equal(t, []render.Run{{Text: "x"}}, render.InlineRange(src, nodes))

	src = "x\n"
	nodes = []*mdast.Node{
		mdast.NewLeaf(mdast.NodeText, src, 0, 1),
		mdast.NewLeaf(mdast.NodeEOL, src, 1, 2),
	}
	assert.Equal(t, []render.Run{{Text: "x "}}, render.InlineRange(src, nodes),
		"line endings are not trimmed")

	src = "   "
	nodes = []*mdast.Node{mdast.NewLeaf(mdast.NodeWhitespace, src, 0, 3)}
	assert.Empty(t, render.InlineRange(src, nodes))
	assert.Empty(t, render.InlineRange("", nil))
}

func TestInline_NilNode(t *testing.T) {
	t.Parallel()

	assert.Nil(t, render.Inline("x", nil))
}

func TestStyle_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", render.StyleNone.String())
	assert.Equal(t, "bold", render.StyleBold.String())
	assert.Equal(t, "code+bold", (render.StyleBold | render.StyleCode).String())
	assert.True(t, (render.StyleLink | render.StyleItalic).Has(render.StyleLink))
	assert.False(t, render.StyleLink.Has(render.StyleLink|render.StyleItalic))
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	runs := paragraphRuns(t, "a **b** `c`")
	assert.Equal(t, "a b c", render.PlainText(runs))
}
