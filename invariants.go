package bstree

import "fmt"

// Check validates structural tree invariants: every node is reachable from
// exactly one slot, node counts agree, and the in-order key sequence is
// strictly ascending (which is the search tree ordering invariant).
//
// Check is intended for tests and debugging; it is O(n).
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrCorruptTree)
	}
	if t.root == NoNode {
		if t.size != 0 {
			return fmt.Errorf("%w: empty tree reports %d nodes", ErrCorruptTree, t.size)
		}
		return nil
	}
	count, err := t.checkLinks()
	if err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: %d nodes reachable, tree reports %d", ErrCorruptTree, count, t.size)
	}
	if count != t.arena.live {
		return fmt.Errorf("%w: %d nodes reachable, arena holds %d", ErrCorruptTree, count, t.arena.live)
	}
	return t.checkOrder()
}

// checkLinks walks the tree without trusting its shape: a node seen twice
// means sharing or a cycle.
func (t *Tree[K, V]) checkLinks() (int, error) {
	seen := make(map[NodeID]bool, t.size)
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id < 0 || int(id) >= len(t.arena.nodes) || !t.arena.nodes[id].live {
			return 0, fmt.Errorf("%w: link to invalid node %d", ErrCorruptTree, id)
		}
		if seen[id] {
			return 0, fmt.Errorf("%w: node %d reachable more than once", ErrCorruptTree, id)
		}
		seen[id] = true
		for _, ch := range t.arena.nodes[id].child {
			if ch != NoNode {
				stack = append(stack, ch)
			}
		}
	}
	return len(seen), nil
}

func (t *Tree[K, V]) checkOrder() error {
	var prev NodeID = NoNode
	for c := startCursor(t, InOrder, Forward); !c.done(); c.advance() {
		id := c.top()
		if prev != NoNode {
			pk, k := t.arena.at(prev).key, t.arena.at(id).key
			if t.cfg.Compare(pk, k) >= 0 {
				return fmt.Errorf("%w: keys out of order: %v before %v", ErrCorruptTree, pk, k)
			}
		}
		prev = id
	}
	return nil
}
