package bstree

import (
	"cmp"
	"fmt"
	"iter"
	"unsafe"
)

// Tree is an ordered key/value container organized as a binary search tree.
//
// For every node, all keys in its left subtree compare less than the node's
// key and all keys in its right subtree compare greater, using the
// comparer of the tree's Config.
//
// A tree is not balanced by itself; see Balancer.
type Tree[K, V any] struct {
	cfg       Config[K, V]
	arena     arena[K, V]
	root      NodeID
	size      int
	nodeSize  uintptr
	insertion *insertion[K, V]
	obtaining *obtaining[K, V]
	disposal  *disposal[K, V]
}

// Pair is a key/value pair as returned by range queries.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// New creates an empty tree with validated configuration.
func New[K, V any](cfg Config[K, V]) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	t := &Tree[K, V]{
		cfg:      cfg,
		root:     NoNode,
		nodeSize: unsafe.Sizeof(node[K, V]{}),
	}
	t.insertion = &insertion[K, V]{templateBasics: templateBasics[K, V]{t}, strategy: cfg.Insertion}
	t.obtaining = &obtaining[K, V]{templateBasics: templateBasics[K, V]{t}}
	t.disposal = &disposal[K, V]{templateBasics: templateBasics[K, V]{t}, strategy: cfg.Disposal}
	return t, nil
}

// NewOrdered creates an empty tree for key types with a natural order.
func NewOrdered[K cmp.Ordered, V any]() *Tree[K, V] {
	t, err := New(Ordered[K, V]())
	assert(err == nil, "NewOrdered: cannot create tree")
	return t
}

// Config returns a copy of the effective tree configuration. The strategy
// fields reflect the current defaults.
func (t *Tree[K, V]) Config() Config[K, V] {
	cfg := t.cfg
	cfg.Insertion = t.insertion.strategy
	cfg.Disposal = t.disposal.strategy
	return cfg
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[K, V]) IsEmpty() bool {
	return t == nil || t.root == NoNode
}

// Height returns the number of nodes on the longest root-to-leaf path,
// 0 for an empty tree.
func (t *Tree[K, V]) Height() int {
	h := 0
	for c := startCursor(t, PreOrder, Forward); !c.done(); c.advance() {
		if d := c.depth() + 1; d > h {
			h = d
		}
	}
	return h
}

// --- Keyed operations ------------------------------------------------------

// Insert stores value under key, resolving an existing key with the tree's
// insertion strategy.
func (t *Tree[K, V]) Insert(key K, value V) error {
	return t.insertion.insert(key, value, t.insertion.strategy)
}

// InsertWith stores value under key, resolving an existing key with strategy.
func (t *Tree[K, V]) InsertWith(key K, value V, strategy InsertStrategy) error {
	return t.insertion.insert(key, value, strategy)
}

// Obtain returns the value stored under key. If key is not present, the
// returned error is a *KeyError wrapping ErrMissingKey.
func (t *Tree[K, V]) Obtain(key K) (V, error) {
	return t.obtaining.obtain(key)
}

// Contains reports whether key is present. Unlike Obtain it does not count
// as an access for the balancer.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.get(t.findPath(key).Target()) != NoNode
}

// ObtainBetween returns the pairs with keys between lower and upper, in
// ascending key order. The inclusive flags decide whether keys equal to a
// bound are part of the result. Keys and values are copies.
func (t *Tree[K, V]) ObtainBetween(lower, upper K, lowerInclusive, upperInclusive bool) []Pair[K, V] {
	var pairs []Pair[K, V]
	t.obtaining.between(lower, upper, lowerInclusive, upperInclusive, func(id NodeID) bool {
		n := t.arena.at(id)
		pairs = append(pairs, Pair[K, V]{Key: t.cfg.CopyKey(n.key), Value: t.cfg.CopyValue(n.value)})
		return true
	})
	return pairs
}

// RangeBetween is the lazy variant of ObtainBetween.
// The tree must not be changed structurally during iteration.
func (t *Tree[K, V]) RangeBetween(lower, upper K, lowerInclusive, upperInclusive bool) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.obtaining.between(lower, upper, lowerInclusive, upperInclusive, func(id NodeID) bool {
			n := t.arena.at(id)
			return yield(n.key, n.value)
		})
	}
}

// Dispose removes key and returns its value, resolving an absent key with
// the tree's disposal strategy.
func (t *Tree[K, V]) Dispose(key K) (V, error) {
	return t.disposal.dispose(key, t.disposal.strategy)
}

// DisposeWith removes key and returns its value, resolving an absent key
// with strategy.
func (t *Tree[K, V]) DisposeWith(key K, strategy DisposeStrategy) (V, error) {
	return t.disposal.dispose(key, strategy)
}

// SetInsertionStrategy changes the default strategy for Insert.
func (t *Tree[K, V]) SetInsertionStrategy(strategy InsertStrategy) {
	T().Debugf("bstree: insertion strategy %s -> %s", t.insertion.strategy, strategy)
	t.insertion.strategy = strategy
}

// SetDisposalStrategy changes the default strategy for Dispose.
func (t *Tree[K, V]) SetDisposalStrategy(strategy DisposeStrategy) {
	T().Debugf("bstree: disposal strategy %s -> %s", t.disposal.strategy, strategy)
	t.disposal.strategy = strategy
}

// Min returns the smallest key and its value.
func (t *Tree[K, V]) Min() (K, V, bool) {
	return t.extreme(Left)
}

// Max returns the largest key and its value.
func (t *Tree[K, V]) Max() (K, V, bool) {
	return t.extreme(Right)
}

func (t *Tree[K, V]) extreme(side Side) (K, V, bool) {
	if t.root == NoNode {
		var k K
		var v V
		return k, v, false
	}
	id := t.root
	for next := t.arena.child(id, side); next != NoNode; next = t.arena.child(id, side) {
		id = next
	}
	n := t.arena.at(id)
	return n.key, n.value, true
}

// --- Whole-tree operations -------------------------------------------------

// Clear disposes all nodes. Children are released before their parents.
// The balancer is not called.
func (t *Tree[K, V]) Clear() {
	if t.root == NoNode {
		return
	}
	T().Debugf("bstree: clearing %d nodes", t.size)
	ids := make([]NodeID, 0, t.size)
	for c := startCursor(t, PostOrder, Forward); !c.done(); c.advance() {
		ids = append(ids, c.top())
	}
	for _, id := range ids {
		t.arena.release(id)
	}
	t.cfg.Allocator.Deallocate(t.nodeSize, len(ids))
	t.root = NoNode
	t.size = 0
}

// Clone returns a deep copy of the tree, sharing configuration (comparer,
// allocator, balancer) with t. Keys and values are copied with the
// configured copy functions. Clone fails if the allocator refuses storage
// for the copy.
//
// As the balancer is shared, a stateful balancer observes both trees. Wrap
// the clone's balancer anew if per-tree state (e.g., size metrics) matters.
func (t *Tree[K, V]) Clone() (*Tree[K, V], error) {
	cloned, err := New(t.Config())
	if err != nil {
		return nil, err
	}
	if t.root == NoNode {
		return cloned, nil
	}
	if err := t.cfg.Allocator.Allocate(t.nodeSize, t.size); err != nil {
		return nil, fmt.Errorf("clone of %d nodes: %w", t.size, err)
	}
	T().Debugf("bstree: cloning %d nodes", t.size)
	type job struct {
		src  NodeID
		slot Slot
	}
	stack := []job{{src: t.root, slot: RootSlot()}}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		src := t.arena.at(j.src)
		id := cloned.arena.alloc(t.cfg.CopyKey(src.key), t.cfg.CopyValue(src.value))
		cloned.set(j.slot, id)
		for _, side := range [2]Side{Right, Left} {
			if ch := src.child[side]; ch != NoNode {
				stack = append(stack, job{src: ch, slot: ChildSlot(id, side)})
			}
		}
	}
	cloned.size = t.size
	return cloned, nil
}
