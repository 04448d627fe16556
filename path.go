package bstree

import "fmt"

// Slot is the link which holds a subtree: either the root link of the tree
// or the left or right child link of a node. Changing the edge into a
// subtree means rewriting its slot.
type Slot struct {
	parent NodeID // NoNode for the root slot
	side   Side
}

// RootSlot returns the slot holding the tree's root node.
func RootSlot() Slot {
	return Slot{parent: NoNode}
}

// ChildSlot returns the slot of the child link of node id at side.
func ChildSlot(id NodeID, side Side) Slot {
	return Slot{parent: id, side: side}
}

// IsRoot reports whether s is the root slot.
func (s Slot) IsRoot() bool {
	return s.parent == NoNode
}

// Parent returns the node owning the slot, or NoNode for the root slot.
func (s Slot) Parent() NodeID {
	return s.parent
}

// Side returns which child link of Parent() the slot denotes. It is
// meaningless for the root slot.
func (s Slot) Side() Side {
	return s.side
}

func (s Slot) String() string {
	if s.IsRoot() {
		return "root"
	}
	return fmt.Sprintf("%d.%s", s.parent, s.side)
}

// Path is the sequence of slots from the root slot down to a target slot.
// Slot i+1 is a child slot of the node held in slot i. The target slot may
// be empty (this is where an absent key would be inserted).
//
// A path is valid until the next structural change of its tree.
type Path []Slot

// Target returns the last slot of the path.
func (p Path) Target() Slot {
	assert(len(p) > 0, "empty path has no target")
	return p[len(p)-1]
}

// get returns the node held by a slot.
func (t *Tree[K, V]) get(s Slot) NodeID {
	if s.IsRoot() {
		return t.root
	}
	return t.arena.child(s.parent, s.side)
}

// set rewrites a slot.
func (t *Tree[K, V]) set(s Slot, id NodeID) {
	if s.IsRoot() {
		t.root = id
		return
	}
	t.arena.at(s.parent).child[s.side] = id
}

// findPath walks from the root towards key. The walk stops at the node
// holding key or at the empty slot where key would be inserted.
func (t *Tree[K, V]) findPath(key K) Path {
	path := make(Path, 0, 16)
	slot := RootSlot()
	for {
		path = append(path, slot)
		id := t.get(slot)
		if id == NoNode {
			break
		}
		c := t.cfg.Compare(key, t.arena.at(id).key)
		if c == 0 {
			break
		}
		if c < 0 {
			slot = ChildSlot(id, Left)
		} else {
			slot = ChildSlot(id, Right)
		}
	}
	return path
}

// --- Node access for balancers ---------------------------------------------

// At returns the node held by slot s, or NoNode if the slot is empty.
func (t *Tree[K, V]) At(s Slot) NodeID {
	return t.get(s)
}

// Child returns the child of node id at side, or NoNode.
func (t *Tree[K, V]) Child(id NodeID, side Side) NodeID {
	return t.arena.child(id, side)
}

// KeyOf returns the key stored in node id.
func (t *Tree[K, V]) KeyOf(id NodeID) K {
	return t.arena.at(id).key
}

// ValueOf returns the value stored in node id.
func (t *Tree[K, V]) ValueOf(id NodeID) V {
	return t.arena.at(id).value
}

// PathFor returns the search path for key, as Insert, Obtain and Dispose
// compute it. It does not call the balancer.
func (t *Tree[K, V]) PathFor(key K) Path {
	return t.findPath(key)
}
