package bstree

// The three keyed operations share one skeleton: compute the search path,
// resolve the absent/present case by strategy, mutate the target slot and
// hand the path to the balancer.

type templateBasics[K, V any] struct {
	tree *Tree[K, V]
}

func (tm templateBasics[K, V]) findPath(key K) Path {
	return tm.tree.findPath(key)
}

// --- Insertion -------------------------------------------------------------

type insertion[K, V any] struct {
	templateBasics[K, V]
	strategy InsertStrategy
}

func (ins *insertion[K, V]) insert(key K, value V, strategy InsertStrategy) error {
	t := ins.tree
	path := ins.findPath(key)
	target := path.Target()
	if id := t.get(target); id != NoNode {
		switch strategy {
		case InsertUpdateValue:
			t.arena.at(id).value = value
			return nil
		default:
			return &KeyError[K]{Op: "insert", Key: key, Err: ErrDuplicateKey}
		}
	}
	if err := t.cfg.Allocator.Allocate(t.nodeSize, 1); err != nil {
		return &KeyError[K]{Op: "insert", Key: key, Err: err}
	}
	id := t.arena.alloc(key, value)
	t.set(target, id)
	t.size++
	t.cfg.Balancer.AfterInsert(t, path)
	return nil
}

// --- Obtaining -------------------------------------------------------------

type obtaining[K, V any] struct {
	templateBasics[K, V]
}

func (ob *obtaining[K, V]) obtain(key K) (V, error) {
	t := ob.tree
	path := ob.findPath(key)
	id := t.get(path.Target())
	if id == NoNode {
		var zero V
		return zero, &KeyError[K]{Op: "obtain", Key: key, Err: ErrMissingKey}
	}
	value := t.arena.at(id).value
	t.cfg.Balancer.AfterAccess(t, path)
	return value, nil
}

// lowerBound positions an in-order cursor at the first node with a key
// greater than lower (or equal to it, if inclusive).
//
// The cursor's stack is the search path for lower. If the search ends in an
// empty slot, the deepest ancestor with a key above lower is the in-order
// successor; all deeper path nodes compare below lower and are popped.
func (ob *obtaining[K, V]) lowerBound(lower K, inclusive bool) *cursor[K, V] {
	t := ob.tree
	stack := make([]NodeID, 0, 16)
	for id := t.root; id != NoNode; {
		stack = append(stack, id)
		c := t.cfg.Compare(lower, t.arena.at(id).key)
		if c == 0 {
			break
		}
		if c < 0 {
			id = t.arena.child(id, Left)
		} else {
			id = t.arena.child(id, Right)
		}
	}
	for len(stack) > 0 && t.cfg.Compare(t.arena.at(stack[len(stack)-1]).key, lower) < 0 {
		stack = stack[:len(stack)-1]
	}
	c := resumeCursor(t, InOrder, Forward, stack)
	if !c.done() && !inclusive && t.cfg.Compare(t.arena.at(c.top()).key, lower) == 0 {
		c.advance()
	}
	return c
}

// between yields the in-order slice of keys between lower and upper.
func (ob *obtaining[K, V]) between(lower, upper K, lowerIncl, upperIncl bool,
	yield func(id NodeID) bool) {
	//
	t := ob.tree
	for c := ob.lowerBound(lower, lowerIncl); !c.done(); c.advance() {
		id := c.top()
		cmp := t.cfg.Compare(t.arena.at(id).key, upper)
		if cmp > 0 || (cmp == 0 && !upperIncl) {
			return
		}
		if !yield(id) {
			return
		}
	}
}

// --- Disposal --------------------------------------------------------------

type disposal[K, V any] struct {
	templateBasics[K, V]
	strategy DisposeStrategy
}

func (d *disposal[K, V]) dispose(key K, strategy DisposeStrategy) (V, error) {
	t := d.tree
	var zero V
	path := d.findPath(key)
	target := path.Target()
	id := t.get(target)
	if id == NoNode {
		if strategy == DisposeDoNothing {
			return zero, nil
		}
		return zero, &KeyError[K]{Op: "dispose", Key: key, Err: ErrMissingKey}
	}
	n := t.arena.at(id)
	if n.child[Left] != NoNode && n.child[Right] != NoNode {
		// Move the content of the in-order predecessor into n and dispose of
		// the predecessor's node instead. The predecessor has no right child.
		slot := ChildSlot(id, Left)
		for cur := t.get(slot); cur != NoNode; cur = t.get(slot) {
			path = append(path, slot)
			slot = ChildSlot(cur, Right)
		}
		target = path.Target()
		id = t.get(target)
		pred := t.arena.at(id)
		n.key, pred.key = pred.key, n.key
		n.value, pred.value = pred.value, n.value
		n = pred
	}
	value := n.value
	leftover := n.child[Left]
	if leftover == NoNode {
		leftover = n.child[Right]
	}
	t.set(target, leftover)
	t.arena.release(id)
	t.cfg.Allocator.Deallocate(t.nodeSize, 1)
	t.size--
	t.cfg.Balancer.AfterDispose(t, path)
	return value, nil
}
