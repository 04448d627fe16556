package bstree

type snapshotMode uint8

const (
	none snapshotMode = iota
	borrowed
	owned
)

// Entry is the snapshot of a node an iterator is positioned at.
//
// An entry is either owned or borrowed, depending on how its iterator was
// created. An owned entry carries copies of key and value, taken when the
// iterator moved to the node, and remains usable after the tree has changed.
// A borrowed entry references the node in the tree's storage: it always
// reflects the node's current value, but must not be used after the node
// has been disposed (this is checked and panics).
type Entry[K, V any] struct {
	mode  snapshotMode
	depth int
	tree  *Tree[K, V]
	id    NodeID
	gen   uint32
	key   K // owned only
	value V // owned only
}

// Depth returns the depth of the node, 0 for the root.
func (e Entry[K, V]) Depth() int {
	return e.depth
}

// Key returns the node's key.
func (e Entry[K, V]) Key() K {
	switch e.mode {
	case owned:
		return e.key
	case borrowed:
		return e.tree.arena.borrow(e.id, e.gen).key
	}
	panic("bstree: key of an empty entry")
}

// Value returns the node's value.
func (e Entry[K, V]) Value() V {
	switch e.mode {
	case owned:
		return e.value
	case borrowed:
		return e.tree.arena.borrow(e.id, e.gen).value
	}
	panic("bstree: value of an empty entry")
}

// Node returns the ID of the node the entry was taken from.
func (e Entry[K, V]) Node() NodeID {
	return e.id
}

// IsOwned reports whether the entry carries detached copies of key and value.
func (e Entry[K, V]) IsOwned() bool {
	return e.mode == owned
}
