package mdast_test

import (
	"encoding/json"
	"testing"

	"github.com/yaklabco/mdtouch/pkg/mdast"
)

func TestNodeKind_IsBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     mdast.NodeKind
		expected bool
	}{
		{mdast.NodeDocument, true},
		{mdast.NodeHeading, true},
		{mdast.NodeOrderedList, true},
		{mdast.NodeCodeFence, true},
		{mdast.NodeHorizontalRule, true},
		{mdast.NodeStrong, false},
		{mdast.NodeText, false},
		{mdast.NodeEOL, false},
	}

	for _, tt := range tests {
		if got := tt.kind.IsBlock(); got != tt.expected {
			t.Errorf("%s.IsBlock() = %v, want %v", tt.kind, got, tt.expected)
		}
	}
}

func TestNodeKind_IsLeaf(t *testing.T) {
	t.Parallel()

	leaves := []mdast.NodeKind{
		mdast.NodeText, mdast.NodeWhitespace, mdast.NodeEOL, mdast.NodeHardBreak,
		mdast.NodeFenceContent, mdast.NodeLinkTitle, mdast.NodeHorizontalRule,
	}
	for _, kind := range leaves {
		if !kind.IsLeaf() {
			t.Errorf("expected %s to be a leaf kind", kind)
		}
	}

	composites := []mdast.NodeKind{
		mdast.NodeDocument, mdast.NodeParagraph, mdast.NodeListItem,
		mdast.NodeWikiLink, mdast.NodeLinkText,
	}
	for _, kind := range composites {
		if kind.IsLeaf() {
			t.Errorf("expected %s to be a composite kind", kind)
		}
	}
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	if got := mdast.NodeWikiLink.String(); got != "WikiLink" {
		t.Errorf("expected WikiLink, got %s", got)
	}

	if got := mdast.NodeKind(999).String(); got != "NodeKind(999)" {
		t.Errorf("expected fallback name, got %s", got)
	}

	data, err := json.Marshal(map[string]mdast.NodeKind{"kind": mdast.NodeOrderedList})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if string(data) != `{"kind":"OrderedList"}` {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestNode_Children(t *testing.T) {
	t.Parallel()

	parent := mdast.NewNode(mdast.NodeParagraph, mdast.SourceRange{})
	if parent.HasChildren() || parent.ChildCount() != 0 || parent.Children() != nil {
		t.Error("new node should have no children")
	}

	text := mdast.NewNode(mdast.NodeText, mdast.SourceRange{})
	eol := mdast.NewNode(mdast.NodeEOL, mdast.SourceRange{})
	mdast.AppendChildren(parent, []*mdast.Node{text, eol})

	children := parent.Children()
	if len(children) != 2 || children[0] != text || children[1] != eol {
		t.Errorf("unexpected children %v", children)
	}

	if parent.ChildOfKind(mdast.NodeEOL) != eol {
		t.Error("ChildOfKind did not find EOL")
	}

	if parent.ChildOfKind(mdast.NodeStrong) != nil {
		t.Error("ChildOfKind should return nil for missing kind")
	}
}

func TestNode_Text(t *testing.T) {
	t.Parallel()

	src := "hello world"
	para := mdast.NewNode(mdast.NodeParagraph, mdast.SourceRange{StartOffset: 6, EndOffset: 11})

	if got := para.Text(src); got != "world" {
		t.Errorf("expected %q, got %q", "world", got)
	}

	bad := mdast.NewNode(mdast.NodeParagraph, mdast.SourceRange{StartOffset: 6, EndOffset: 40})
	if got := bad.Text(src); got != "" {
		t.Errorf("expected empty text for out-of-range node, got %q", got)
	}
}
