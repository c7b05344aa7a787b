package blocks

import (
	"github.com/npillmayer/cords"
)

// List is an ordered sequence of blocks in document order.
// Ids within a list are unique.
type List []Block

// Len returns the number of blocks.
func (l List) Len() int {
	return len(l)
}

// IndexOf returns the position of the block with id, or -1.
func (l List) IndexOf(id int) int {
	for i, b := range l {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the block with id.
func (l List) Find(id int) (Block, bool) {
	if i := l.IndexOf(id); i >= 0 {
		return l[i], true
	}
	return None(), false
}

// IDs returns the ids in order.
func (l List) IDs() []int {
	ids := make([]int, len(l))
	for i, b := range l {
		ids[i] = b.ID
	}
	return ids
}

// MaxID returns the largest id in the list, or 0 for an empty list.
func (l List) MaxID() int {
	maxID := 0
	for _, b := range l {
		maxID = max(maxID, b.ID)
	}
	return maxID
}

// Equal reports whether both lists hold the same blocks in the same order.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Delete returns a copy of l without the block with id.
func (l List) Delete(id int) List {
	out := make(List, 0, len(l))
	for _, b := range l {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

// Replace returns a copy of l where the block with id has src newSrc.
func (l List) Replace(id int, newSrc string) List {
	out := make(List, len(l))
	for i, b := range l {
		if b.ID == id {
			b = Block{ID: id, Src: newSrc}
		}
		out[i] = b
	}
	return out
}

// Splice returns a copy of l where the block with id is replaced by blocks.
func (l List) Splice(id int, blocks List) List {
	out := make(List, 0, len(l)+len(blocks))
	for _, b := range l {
		if b.ID == id {
			out = append(out, blocks...)
			continue
		}
		out = append(out, b)
	}
	return out
}

// Append returns a copy of l followed by blocks.
func (l List) Append(blocks ...Block) List {
	out := make(List, 0, len(l)+len(blocks))
	out = append(out, l...)
	return append(out, blocks...)
}

// Cord returns the document text as a rope with one leaf per block.
func (l List) Cord() cords.Cord {
	b := cords.NewBuilder()
	for _, block := range l {
		if block.Src == "" {
			continue
		}
		b.Append(leaf(block.Src))
	}
	return b.Cord()
}

// Join concatenates the block sources in order, reconstructing the document.
func (l List) Join() string {
	if len(l) == 0 {
		return ""
	}
	return l.Cord().String()
}

// leaf is a cords leaf holding the source of one block.
type leaf string

// Weight is part of interface cords.Leaf.
func (s leaf) Weight() uint64 {
	return uint64(len(s))
}

// String is part of interface cords.Leaf.
func (s leaf) String() string {
	return string(s)
}

// Split is part of interface cords.Leaf.
func (s leaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return s[:i], s[i:]
}

// Substring is part of interface cords.Leaf.
func (s leaf) Substring(i, j uint64) []byte {
	return []byte(s[i:j])
}

var _ cords.Leaf = leaf("")
