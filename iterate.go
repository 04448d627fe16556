package bstree

import (
	"fmt"
	"iter"
)

// Order is a depth-first traversal order.
type Order uint8

const (
	PreOrder  Order = iota // node, then first subtree, then second subtree
	InOrder                // first subtree, node, second subtree
	PostOrder              // first subtree, second subtree, node
)

func (o Order) String() string {
	switch o {
	case PreOrder:
		return "prefix"
	case InOrder:
		return "infix"
	case PostOrder:
		return "postfix"
	}
	return fmt.Sprintf("Order(%d)", uint8(o))
}

// Direction selects which subtree counts as first. Reverse mirrors left and
// right throughout; reverse in-order therefore visits keys in descending
// order.
type Direction uint8

const (
	Forward Direction = iota // left subtree first
	Reverse                  // right subtree first
)

// cursor is the traversal state machine shared by all iterators.
//
// stack holds the path from the root to the current node. Its top is the
// current node; an empty stack means the traversal is exhausted.
type cursor[K, V any] struct {
	tree   *Tree[K, V]
	order  Order
	dir    Direction
	first  Side
	second Side
	stack  []NodeID
	step   func()
}

func newCursor[K, V any](t *Tree[K, V], order Order, dir Direction) *cursor[K, V] {
	c := &cursor[K, V]{
		tree:   t,
		order:  order,
		dir:    dir,
		first:  Left,
		second: Right,
		stack:  make([]NodeID, 0, 16),
	}
	if dir == Reverse {
		c.first, c.second = Right, Left
	}
	switch order {
	case PreOrder:
		c.step = c.nextPreOrder
	case InOrder:
		c.step = c.nextInOrder
	case PostOrder:
		c.step = c.nextPostOrder
	default:
		panic(fmt.Sprintf("bstree: unknown traversal order %d", order))
	}
	return c
}

// startCursor positions a cursor on the first node of a traversal.
func startCursor[K, V any](t *Tree[K, V], order Order, dir Direction) *cursor[K, V] {
	c := newCursor(t, order, dir)
	if t.root == NoNode {
		return c
	}
	switch order {
	case PreOrder:
		c.push(t.root)
	case InOrder:
		c.descend(t.root)
	case PostOrder:
		c.descendPost(t.root)
	}
	return c
}

// resumeCursor creates a cursor positioned on the top of stack, which must
// be a path of nodes starting at the root.
func resumeCursor[K, V any](t *Tree[K, V], order Order, dir Direction, stack []NodeID) *cursor[K, V] {
	c := newCursor(t, order, dir)
	c.stack = append(c.stack, stack...)
	return c
}

// clone returns a cursor with its own copy of the stack. step is bound to
// the new cursor.
func (c *cursor[K, V]) clone() *cursor[K, V] {
	d := newCursor(c.tree, c.order, c.dir)
	d.stack = append(d.stack, c.stack...)
	return d
}

func (c *cursor[K, V]) done() bool {
	return len(c.stack) == 0
}

func (c *cursor[K, V]) top() NodeID {
	return c.stack[len(c.stack)-1]
}

func (c *cursor[K, V]) depth() int {
	return len(c.stack) - 1
}

func (c *cursor[K, V]) push(id NodeID) {
	c.stack = append(c.stack, id)
}

func (c *cursor[K, V]) pop() NodeID {
	id := c.top()
	c.stack = c.stack[:len(c.stack)-1]
	return id
}

func (c *cursor[K, V]) child(id NodeID, side Side) NodeID {
	return c.tree.arena.child(id, side)
}

// advance moves to the next node of the traversal. Advancing an exhausted
// cursor is a no-op.
func (c *cursor[K, V]) advance() {
	if c.done() {
		return
	}
	c.step()
}

// descend pushes id and the chain of its first-side descendants.
func (c *cursor[K, V]) descend(id NodeID) {
	for ; id != NoNode; id = c.child(id, c.first) {
		c.push(id)
	}
}

// descendPost pushes nodes from id downwards, preferring the first child,
// until reaching a leaf. The leaf is the first node of id's subtree in
// post-order.
func (c *cursor[K, V]) descendPost(id NodeID) {
	for id != NoNode {
		c.push(id)
		if next := c.child(id, c.first); next != NoNode {
			id = next
		} else {
			id = c.child(id, c.second)
		}
	}
}

func (c *cursor[K, V]) nextPreOrder() {
	cur := c.top()
	if next := c.child(cur, c.first); next != NoNode {
		c.push(next)
		return
	}
	if next := c.child(cur, c.second); next != NoNode {
		c.push(next)
		return
	}
	for {
		visited := c.pop()
		if c.done() {
			return
		}
		parent := c.top()
		if c.child(parent, c.first) == visited {
			if next := c.child(parent, c.second); next != NoNode {
				c.push(next)
				return
			}
		}
	}
}

func (c *cursor[K, V]) nextInOrder() {
	cur := c.top()
	if next := c.child(cur, c.second); next != NoNode {
		c.descend(next)
		return
	}
	for {
		visited := c.pop()
		if c.done() || c.child(c.top(), c.first) == visited {
			return
		}
	}
}

func (c *cursor[K, V]) nextPostOrder() {
	visited := c.pop()
	if c.done() {
		return
	}
	parent := c.top()
	if next := c.child(parent, c.second); next != NoNode && next != visited {
		c.descendPost(next)
	}
}

// --- Iterators -------------------------------------------------------------

// IterOption configures an iterator.
type IterOption func(*iterOptions)

type iterOptions struct {
	detached bool
}

// Detached makes an iterator materialize owned copies of keys and values
// (see Entry). Without it, entries reference the tree's node storage.
func Detached() IterOption {
	return func(o *iterOptions) {
		o.detached = true
	}
}

// ConstIterator walks a tree in one of the traversal orders. It does not
// allow changing the tree.
//
// Create iterators with the Begin/End family of Tree methods. An iterator
// is exhausted once it has moved past the last node; End returns iterators
// which start out exhausted.
//
// Iterators hold a reference to their traversal state. A copy of an
// iterator value shares that state with the original, so advancing one
// moves the other; use Clone for an independent iterator.
type ConstIterator[K, V any] struct {
	cur      *cursor[K, V]
	detached bool
	entry    Entry[K, V]
}

func newConstIterator[K, V any](c *cursor[K, V], opts []IterOption) ConstIterator[K, V] {
	var o iterOptions
	for _, opt := range opts {
		opt(&o)
	}
	it := ConstIterator[K, V]{cur: c, detached: o.detached}
	it.materialize()
	return it
}

func (it *ConstIterator[K, V]) materialize() {
	if it.cur.done() {
		it.entry = Entry[K, V]{}
		return
	}
	t := it.cur.tree
	id := it.cur.top()
	n := t.arena.at(id)
	it.entry = Entry[K, V]{depth: it.cur.depth(), tree: t, id: id, gen: n.gen}
	if it.detached {
		it.entry.mode = owned
		it.entry.key = t.cfg.CopyKey(n.key)
		it.entry.value = t.cfg.CopyValue(n.value)
	} else {
		it.entry.mode = borrowed
	}
}

// Valid reports whether the iterator is positioned at a node.
func (it *ConstIterator[K, V]) Valid() bool {
	return !it.cur.done()
}

// Next moves to the next node and reports whether there is one.
func (it *ConstIterator[K, V]) Next() bool {
	it.cur.advance()
	it.materialize()
	return it.Valid()
}

// Entry returns the snapshot of the current node. It panics if the
// iterator is exhausted.
func (it *ConstIterator[K, V]) Entry() Entry[K, V] {
	assert(it.Valid(), "bstree: dereferencing an exhausted iterator")
	return it.entry
}

// Depth returns the depth of the current node, 0 for the root.
func (it *ConstIterator[K, V]) Depth() int {
	return it.Entry().Depth()
}

// Key returns the key of the current node.
func (it *ConstIterator[K, V]) Key() K {
	return it.Entry().Key()
}

// Value returns the value of the current node.
func (it *ConstIterator[K, V]) Value() V {
	return it.Entry().Value()
}

// Order returns the traversal order of the iterator.
func (it *ConstIterator[K, V]) Order() Order {
	return it.cur.order
}

// Direction returns the traversal direction of the iterator.
func (it *ConstIterator[K, V]) Direction() Direction {
	return it.cur.dir
}

// Equal reports whether two iterators of the same kind over the same tree
// are both exhausted or both positioned at the same node.
func (it *ConstIterator[K, V]) Equal(other *ConstIterator[K, V]) bool {
	if other == nil || it.cur.tree != other.cur.tree ||
		it.cur.order != other.cur.order || it.cur.dir != other.cur.dir {
		return false
	}
	if it.cur.done() || other.cur.done() {
		return it.cur.done() && other.cur.done()
	}
	return it.cur.top() == other.cur.top()
}

// Clone returns an independent iterator positioned at the same node.
func (it *ConstIterator[K, V]) Clone() *ConstIterator[K, V] {
	cp := *it
	cp.cur = it.cur.clone()
	return &cp
}

// Iterator is a ConstIterator which may replace values in place.
type Iterator[K, V any] struct {
	ConstIterator[K, V]
}

// SetValue replaces the value of the current node. It panics if the
// iterator is exhausted.
func (it *Iterator[K, V]) SetValue(value V) {
	assert(it.Valid(), "bstree: setting value through an exhausted iterator")
	t := it.cur.tree
	t.arena.at(it.cur.top()).value = value
	if it.detached {
		it.entry.value = t.cfg.CopyValue(value)
	}
}

// Clone returns an independent iterator positioned at the same node.
func (it *Iterator[K, V]) Clone() *Iterator[K, V] {
	return &Iterator[K, V]{*it.ConstIterator.Clone()}
}

// Equal reports whether two iterators of the same kind over the same tree
// are both exhausted or both positioned at the same node.
func (it *Iterator[K, V]) Equal(other *Iterator[K, V]) bool {
	if other == nil {
		return false
	}
	return it.ConstIterator.Equal(&other.ConstIterator)
}

// --- Accessors -------------------------------------------------------------

// Begin returns a mutable iterator positioned at the first node of the
// given traversal.
func (t *Tree[K, V]) Begin(order Order, dir Direction, opts ...IterOption) *Iterator[K, V] {
	return &Iterator[K, V]{newConstIterator(startCursor(t, order, dir), opts)}
}

// End returns an exhausted mutable iterator for the given traversal.
func (t *Tree[K, V]) End(order Order, dir Direction) *Iterator[K, V] {
	return &Iterator[K, V]{newConstIterator(newCursor(t, order, dir), nil)}
}

// CBegin returns a read-only iterator positioned at the first node of the
// given traversal.
func (t *Tree[K, V]) CBegin(order Order, dir Direction, opts ...IterOption) *ConstIterator[K, V] {
	it := newConstIterator(startCursor(t, order, dir), opts)
	return &it
}

// CEnd returns an exhausted read-only iterator for the given traversal.
func (t *Tree[K, V]) CEnd(order Order, dir Direction) *ConstIterator[K, V] {
	it := newConstIterator(newCursor(t, order, dir), nil)
	return &it
}

// BeginPrefix returns a mutable pre-order iterator.
func (t *Tree[K, V]) BeginPrefix(opts ...IterOption) *Iterator[K, V] {
	return t.Begin(PreOrder, Forward, opts...)
}

// BeginInfix returns a mutable in-order iterator (ascending keys).
func (t *Tree[K, V]) BeginInfix(opts ...IterOption) *Iterator[K, V] {
	return t.Begin(InOrder, Forward, opts...)
}

// BeginPostfix returns a mutable post-order iterator.
func (t *Tree[K, V]) BeginPostfix(opts ...IterOption) *Iterator[K, V] {
	return t.Begin(PostOrder, Forward, opts...)
}

// RBeginPrefix returns a mutable mirrored pre-order iterator (node, right, left).
func (t *Tree[K, V]) RBeginPrefix(opts ...IterOption) *Iterator[K, V] {
	return t.Begin(PreOrder, Reverse, opts...)
}

// RBeginInfix returns a mutable reverse in-order iterator (descending keys).
func (t *Tree[K, V]) RBeginInfix(opts ...IterOption) *Iterator[K, V] {
	return t.Begin(InOrder, Reverse, opts...)
}

// RBeginPostfix returns a mutable mirrored post-order iterator (right, left, node).
func (t *Tree[K, V]) RBeginPostfix(opts ...IterOption) *Iterator[K, V] {
	return t.Begin(PostOrder, Reverse, opts...)
}

// CBeginPrefix returns a read-only pre-order iterator.
func (t *Tree[K, V]) CBeginPrefix(opts ...IterOption) *ConstIterator[K, V] {
	return t.CBegin(PreOrder, Forward, opts...)
}

// CBeginInfix returns a read-only in-order iterator (ascending keys).
func (t *Tree[K, V]) CBeginInfix(opts ...IterOption) *ConstIterator[K, V] {
	return t.CBegin(InOrder, Forward, opts...)
}

// CBeginPostfix returns a read-only post-order iterator.
func (t *Tree[K, V]) CBeginPostfix(opts ...IterOption) *ConstIterator[K, V] {
	return t.CBegin(PostOrder, Forward, opts...)
}

// CRBeginPrefix returns a read-only mirrored pre-order iterator.
func (t *Tree[K, V]) CRBeginPrefix(opts ...IterOption) *ConstIterator[K, V] {
	return t.CBegin(PreOrder, Reverse, opts...)
}

// CRBeginInfix returns a read-only reverse in-order iterator (descending keys).
func (t *Tree[K, V]) CRBeginInfix(opts ...IterOption) *ConstIterator[K, V] {
	return t.CBegin(InOrder, Reverse, opts...)
}

// CRBeginPostfix returns a read-only mirrored post-order iterator.
func (t *Tree[K, V]) CRBeginPostfix(opts ...IterOption) *ConstIterator[K, V] {
	return t.CBegin(PostOrder, Reverse, opts...)
}

// --- Range functions -------------------------------------------------------

// All returns an iterator over the entries of a traversal. Entries reference
// node storage unless Detached is given.
// The tree must not be changed structurally during iteration.
func (t *Tree[K, V]) All(order Order, dir Direction, opts ...IterOption) iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		for it := t.CBegin(order, dir, opts...); it.Valid(); it.Next() {
			if !yield(it.Entry()) {
				return
			}
		}
	}
}

// Ascend returns an iterator over all key/value pairs in ascending key order.
func (t *Tree[K, V]) Ascend() iter.Seq2[K, V] {
	return t.pairs(Forward)
}

// Descend returns an iterator over all key/value pairs in descending key order.
func (t *Tree[K, V]) Descend() iter.Seq2[K, V] {
	return t.pairs(Reverse)
}

func (t *Tree[K, V]) pairs(dir Direction) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for c := startCursor(t, InOrder, dir); !c.done(); c.advance() {
			n := t.arena.at(c.top())
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Keys returns an iterator over all keys in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.Ascend() {
			if !yield(k) {
				return
			}
		}
	}
}
