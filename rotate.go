package bstree

import "fmt"

// Rotations reshape the subtree held by a slot while keeping the in-order
// sequence of its keys. Each one relinks a constant number of nodes.
//
// With validate set, a rotation checks that the children it needs exist and
// returns ErrInvalidRotation otherwise, leaving the tree unchanged. Without
// validation the caller vouches for the shape; a violation panics.
//
// Rotations invalidate paths and iterators of the tree.

// RotateSmallLeft promotes the right child of the subtree root. The former
// left child of the promoted node becomes the right child of the old root.
//
//	    a                b
//	   ╱ ╲              ╱ ╲
//	  x   b     ==>    a   z
//	     ╱ ╲          ╱ ╲
//	    y   z        x   y
func (t *Tree[K, V]) RotateSmallLeft(s Slot, validate bool) error {
	if validate {
		if err := t.checkShape(s, "small left", Right); err != nil {
			return err
		}
	}
	t.rotate(s, Left)
	return nil
}

// RotateSmallRight promotes the left child of the subtree root (mirror of
// RotateSmallLeft).
func (t *Tree[K, V]) RotateSmallRight(s Slot, validate bool) error {
	if validate {
		if err := t.checkShape(s, "small right", Left); err != nil {
			return err
		}
	}
	t.rotate(s, Right)
	return nil
}

// RotateBigLeft resolves a right-left zig-zag: a small right rotation at the
// right child, followed by a small left rotation at the subtree root. The
// left child of the right child ends up as subtree root.
func (t *Tree[K, V]) RotateBigLeft(s Slot, validate bool) error {
	if validate {
		if err := t.checkShape(s, "big left", Right, Left); err != nil {
			return err
		}
	}
	T().Debugf("bstree: big left rotation at %s", s)
	t.rotate(ChildSlot(t.get(s), Right), Right)
	t.rotate(s, Left)
	return nil
}

// RotateBigRight resolves a left-right zig-zag (mirror of RotateBigLeft).
func (t *Tree[K, V]) RotateBigRight(s Slot, validate bool) error {
	if validate {
		if err := t.checkShape(s, "big right", Left, Right); err != nil {
			return err
		}
	}
	T().Debugf("bstree: big right rotation at %s", s)
	t.rotate(ChildSlot(t.get(s), Left), Left)
	t.rotate(s, Right)
	return nil
}

// RotateDoubleLeft lifts the right-right grandchild of the subtree root up to
// the subtree root by two small left rotations. If atGrandparentFirst is set,
// both rotations happen at the subtree root (splay zig-zig order); otherwise
// the first rotation happens at the right child.
func (t *Tree[K, V]) RotateDoubleLeft(s Slot, atGrandparentFirst, validate bool) error {
	if validate {
		if err := t.checkShape(s, "double left", Right, Right); err != nil {
			return err
		}
	}
	t.doubleRotation(s, Left, atGrandparentFirst)
	return nil
}

// RotateDoubleRight lifts the left-left grandchild of the subtree root up to
// the subtree root (mirror of RotateDoubleLeft).
func (t *Tree[K, V]) RotateDoubleRight(s Slot, atGrandparentFirst, validate bool) error {
	if validate {
		if err := t.checkShape(s, "double right", Left, Left); err != nil {
			return err
		}
	}
	t.doubleRotation(s, Right, atGrandparentFirst)
	return nil
}

func (t *Tree[K, V]) doubleRotation(s Slot, dir Side, atGrandparentFirst bool) {
	T().Debugf("bstree: double %s rotation at %s, grandparent first=%v", dir, s, atGrandparentFirst)
	if atGrandparentFirst {
		t.rotate(s, dir)
		t.rotate(s, dir)
		return
	}
	t.rotate(ChildSlot(t.get(s), dir.mirror()), dir)
	t.rotate(s, dir)
}

// checkShape verifies that the slot holds a node and that following the
// given sides from it reaches existing nodes.
func (t *Tree[K, V]) checkShape(s Slot, name string, sides ...Side) error {
	if !s.IsRoot() && (s.parent < 0 || int(s.parent) >= len(t.arena.nodes) ||
		!t.arena.nodes[s.parent].live) {
		return fmt.Errorf("%w: %s rotation at dangling slot %s", ErrInvalidRotation, name, s)
	}
	id := t.get(s)
	if id == NoNode {
		return fmt.Errorf("%w: %s rotation at empty slot %s", ErrInvalidRotation, name, s)
	}
	for _, side := range sides {
		if id = t.arena.child(id, side); id == NoNode {
			return fmt.Errorf("%w: %s rotation at %s lacks a %s child", ErrInvalidRotation,
				name, s, side)
		}
	}
	return nil
}

// rotate performs a single rotation in direction dir at slot s: for Left the
// right child moves up, for Right the left child moves up.
func (t *Tree[K, V]) rotate(s Slot, dir Side) {
	up := dir.mirror()
	root := t.get(s)
	assert(root != NoNode, "rotation at empty slot")
	r := t.arena.at(root)
	pivot := r.child[up]
	assert(pivot != NoNode, "rotation lacks the child to promote")
	p := t.arena.at(pivot)
	T().Debugf("bstree: small %s rotation at %s: node %d replaces %d", dir, s, pivot, root)
	r.child[up] = p.child[dir]
	p.child[dir] = root
	t.set(s, pivot)
	if u, ok := t.cfg.Balancer.(NodeUpdater[K, V]); ok {
		u.UpdateNode(t, root)
		u.UpdateNode(t, pivot)
	}
}
