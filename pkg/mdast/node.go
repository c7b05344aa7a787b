package mdast

// Node is a single element of the syntax tree.
// Nodes form a tree through parent/child/sibling links.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Range is the byte range this node covers in the parsed source.
	Range SourceRange

	// Level is the heading level (1-6) for NodeHeading, zero otherwise.
	Level int

	// Literal is the raw source text of a leaf node. Empty for composites.
	Literal string
}

// NewNode creates a composite node of the given kind covering r.
func NewNode(kind NodeKind, r SourceRange) *Node {
	return &Node{Kind: kind, Range: r}
}

// NewLeaf creates a leaf node whose literal is src[start:end].
func NewLeaf(kind NodeKind, src string, start, end int) *Node {
	return &Node{
		Kind:    kind,
		Range:   SourceRange{StartOffset: start, EndOffset: end},
		Literal: src[start:end],
	}
}

// IsLeaf returns true if the node has no children and carries raw text.
func (n *Node) IsLeaf() bool {
	return n.FirstChild == nil && n.Kind.IsLeaf()
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// ChildOfKind returns the first direct child of the given kind, or nil.
func (n *Node) ChildOfKind(kind NodeKind) *Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// Text returns the text this node covers in src, the string it was parsed from.
func (n *Node) Text(src string) string {
	if n.IsLeaf() {
		return n.Literal
	}
	return n.Range.Text(src)
}
