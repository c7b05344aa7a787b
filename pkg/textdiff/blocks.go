package textdiff

import (
	"github.com/yaklabco/mdtouch/pkg/blocks"
)

// ChangeKind says what happened to one block id.
type ChangeKind int

const (
	// Added blocks have an id absent from the old list.
	Added ChangeKind = iota
	// Removed blocks have an id absent from the new list.
	Removed
	// Modified blocks kept their id but not their source.
	Modified
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Change is one block that differs between two lists.
type Change struct {
	Kind ChangeKind
	ID   int
	Old  string
	New  string
}

// Blocks compares two block lists by id. Removed blocks come first in old
// order, then added and modified blocks in new order.
func Blocks(before, after blocks.List) []Change {
	var changes []Change

	for _, b := range before {
		if after.IndexOf(b.ID) < 0 {
			changes = append(changes, Change{Kind: Removed, ID: b.ID, Old: b.Src})
		}
	}

	for _, b := range after {
		old, ok := before.Find(b.ID)
		switch {
		case !ok:
			changes = append(changes, Change{Kind: Added, ID: b.ID, New: b.Src})
		case old.Src != b.Src:
			changes = append(changes, Change{Kind: Modified, ID: b.ID, Old: old.Src, New: b.Src})
		}
	}

	return changes
}
