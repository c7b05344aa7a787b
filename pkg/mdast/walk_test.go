package mdast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtouch/pkg/mdast"
)

// buildTestTree builds:
//
//	Document
//	  Heading
//	    Text
//	  Paragraph
//	    Text
//	    Emphasis
//	      Text
func buildTestTree() *mdast.Node {
	doc := mdast.NewNode(mdast.NodeDocument, mdast.SourceRange{})

	heading := mdast.NewNode(mdast.NodeHeading, mdast.SourceRange{})
	heading.Level = 2
	mdast.AppendChild(heading, &mdast.Node{Kind: mdast.NodeText, Literal: "Title"})
	mdast.AppendChild(doc, heading)

	para := mdast.NewNode(mdast.NodeParagraph, mdast.SourceRange{})
	mdast.AppendChild(para, &mdast.Node{Kind: mdast.NodeText, Literal: "plain "})

	emphasis := mdast.NewNode(mdast.NodeEmphasis, mdast.SourceRange{})
	mdast.AppendChild(emphasis, &mdast.Node{Kind: mdast.NodeText, Literal: "em"})
	mdast.AppendChild(para, emphasis)

	mdast.AppendChild(doc, para)

	return doc
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []mdast.NodeKind
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeText,
		mdast.NodeParagraph,
		mdast.NodeText,
		mdast.NodeEmphasis,
		mdast.NodeText,
	}, visited)
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	called := false
	err := mdast.Walk(nil, func(*mdast.Node) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		count++
		if n.Kind == mdast.NodeParagraph {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 4, count)
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	var events []string
	err := mdast.WalkWithContext(buildTestTree(),
		func(n *mdast.Node) error {
			events = append(events, "enter:"+n.Kind.String())
			return nil
		},
		func(n *mdast.Node) error {
			events = append(events, "leave:"+n.Kind.String())
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, "enter:Document", events[0])
	assert.Equal(t, "leave:Document", events[len(events)-1])
	assert.Len(t, events, 14)
}

func TestFindFirstAndByKind(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	texts := mdast.FindByKind(doc, mdast.NodeText)
	assert.Len(t, texts, 3)

	emph := mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeEmphasis })
	require.NotNil(t, emph)
	assert.Equal(t, "em", emph.FirstChild.Literal)

	assert.Nil(t, mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeWikiLink }))
}

func TestDump(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	require.NoError(t, mdast.Dump(&out, buildTestTree()))

	want := strings.Join([]string{
		"Document [0,0)",
		"  Heading level=2 [0,0)",
		`    Text "Title"`,
		"  Paragraph [0,0)",
		`    Text "plain "`,
		"    Emphasis [0,0)",
		`      Text "em"`,
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}
