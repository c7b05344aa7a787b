package mdast

import "strconv"

// NodeKind classifies the type of a syntax node.
type NodeKind uint16

// Node kinds for block-level, inline-level and leaf elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeHeading
	NodeHeadingContent
	NodeParagraph
	NodeUnorderedList
	NodeOrderedList
	NodeListItem
	NodeCodeFence
	NodeHorizontalRule

	// Inline composite nodes.
	NodeCodeSpan
	NodeStrong
	NodeEmphasis
	NodeStrikethrough
	NodeInlineLink
	NodeLinkText
	NodeWikiLink

	// Leaf nodes.
	NodeText
	NodeWhitespace
	NodeEOL
	NodeHardBreak
	NodeEscapedChar
	NodeHeadingMarker
	NodeSetextUnderline
	NodeListBullet
	NodeListNumber
	NodeFenceStart
	NodeFenceLang
	NodeFenceContent
	NodeFenceEnd
	NodeBacktick
	NodeEmphMarker
	NodeTilde
	NodeLBracket
	NodeRBracket
	NodeLParen
	NodeRParen
	NodeLinkDestination
	NodeLinkTitle

	nodeKindCount
)

var nodeKindNames = [...]string{
	NodeDocument:        "Document",
	NodeHeading:         "Heading",
	NodeHeadingContent:  "HeadingContent",
	NodeParagraph:       "Paragraph",
	NodeUnorderedList:   "UnorderedList",
	NodeOrderedList:     "OrderedList",
	NodeListItem:        "ListItem",
	NodeCodeFence:       "CodeFence",
	NodeHorizontalRule:  "HorizontalRule",
	NodeCodeSpan:        "CodeSpan",
	NodeStrong:          "Strong",
	NodeEmphasis:        "Emphasis",
	NodeStrikethrough:   "Strikethrough",
	NodeInlineLink:      "InlineLink",
	NodeLinkText:        "LinkText",
	NodeWikiLink:        "WikiLink",
	NodeText:            "Text",
	NodeWhitespace:      "Whitespace",
	NodeEOL:             "EOL",
	NodeHardBreak:       "HardBreak",
	NodeEscapedChar:     "EscapedChar",
	NodeHeadingMarker:   "HeadingMarker",
	NodeSetextUnderline: "SetextUnderline",
	NodeListBullet:      "ListBullet",
	NodeListNumber:      "ListNumber",
	NodeFenceStart:      "FenceStart",
	NodeFenceLang:       "FenceLang",
	NodeFenceContent:    "FenceContent",
	NodeFenceEnd:        "FenceEnd",
	NodeBacktick:        "Backtick",
	NodeEmphMarker:      "EmphMarker",
	NodeTilde:           "Tilde",
	NodeLBracket:        "LBracket",
	NodeRBracket:        "RBracket",
	NodeLParen:          "LParen",
	NodeRParen:          "RParen",
	NodeLinkDestination: "LinkDestination",
	NodeLinkTitle:       "LinkTitle",
}

func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsBlock reports whether the kind is a block-level construct.
func (k NodeKind) IsBlock() bool {
	return k >= NodeDocument && k <= NodeHorizontalRule
}

// IsLeaf reports whether nodes of this kind carry raw text instead of children.
// A horizontal rule is both a block and a leaf.
func (k NodeKind) IsLeaf() bool {
	return k >= NodeText || k == NodeHorizontalRule
}

// IsBlank reports whether the kind is whitespace-typed (spaces or line ends).
func (k NodeKind) IsBlank() bool {
	return k == NodeWhitespace || k == NodeEOL
}
