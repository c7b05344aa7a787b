package mdast

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// AppendChildren appends each child in order.
func AppendChildren(parent *Node, children []*Node) {
	for _, child := range children {
		AppendChild(parent, child)
	}
}

// RemoveChild detaches a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// Group builds a composite node of the given kind whose children are nodes.
// The composite's range spans from the first to the last node.
// nodes must be non-empty and in source order.
func Group(kind NodeKind, nodes []*Node) *Node {
	group := NewNode(kind, SourceRange{
		StartOffset: nodes[0].Range.StartOffset,
		EndOffset:   nodes[len(nodes)-1].Range.EndOffset,
	})
	AppendChildren(group, nodes)
	return group
}
