package bstree

// Balancer is the extension point for self-balancing strategies.
//
// The tree calls AfterInsert once a new node has been linked into the last
// slot of path, AfterDispose once a node has been unlinked from the last slot
// of path (the slot now holds the spliced-in child, if any), and AfterAccess
// after a successful point lookup. A balancer may restructure the tree with
// the rotation methods of Tree; path becomes invalid as soon as it does.
//
// Balancers are never called for a value update of an existing key.
type Balancer[K, V any] interface {
	AfterInsert(t *Tree[K, V], path Path)
	AfterDispose(t *Tree[K, V], path Path)
	AfterAccess(t *Tree[K, V], path Path)
}

// NodeUpdater may additionally be implemented by balancers which keep
// per-node data (heights, colors, subtree sizes). After each single rotation
// UpdateNode is called for the demoted node first, then for the promoted one.
type NodeUpdater[K, V any] interface {
	UpdateNode(t *Tree[K, V], id NodeID)
}

// NoBalance leaves the tree as it is. It is the default balancer.
type NoBalance[K, V any] struct{}

// AfterInsert does nothing.
func (NoBalance[K, V]) AfterInsert(*Tree[K, V], Path) {}

// AfterDispose does nothing.
func (NoBalance[K, V]) AfterDispose(*Tree[K, V], Path) {}

// AfterAccess does nothing.
func (NoBalance[K, V]) AfterAccess(*Tree[K, V], Path) {}

// BalancerFuncs adapts plain functions to the Balancer interface. Nil
// functions are skipped.
type BalancerFuncs[K, V any] struct {
	Insert  func(*Tree[K, V], Path)
	Dispose func(*Tree[K, V], Path)
	Access  func(*Tree[K, V], Path)
}

// AfterInsert calls b.Insert, if set.
func (b BalancerFuncs[K, V]) AfterInsert(t *Tree[K, V], path Path) {
	if b.Insert != nil {
		b.Insert(t, path)
	}
}

// AfterDispose calls b.Dispose, if set.
func (b BalancerFuncs[K, V]) AfterDispose(t *Tree[K, V], path Path) {
	if b.Dispose != nil {
		b.Dispose(t, path)
	}
}

// AfterAccess calls b.Access, if set.
func (b BalancerFuncs[K, V]) AfterAccess(t *Tree[K, V], path Path) {
	if b.Access != nil {
		b.Access(t, path)
	}
}
