package bstree

// NodeID addresses a node within the arena of a tree. IDs of disposed nodes
// are recycled.
type NodeID int32

// NoNode is the ID of an empty slot.
const NoNode NodeID = -1

// Side selects one of the two child links of a node.
type Side uint8

const (
	Left Side = iota // child with smaller keys
	Right            // child with greater keys
)

func (s Side) mirror() Side {
	return s ^ 1
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// node holds a key, a value and two child links. gen is incremented each
// time the arena cell is released, so stale references may be detected.
type node[K, V any] struct {
	key   K
	value V
	child [2]NodeID
	gen   uint32
	live  bool
}

// arena stores the nodes of a tree. Released cells are kept on a free list
// and reused for new nodes.
type arena[K, V any] struct {
	nodes []node[K, V]
	free  []NodeID
	live  int
}

// alloc places a new leaf node into the arena. Pointers returned by at()
// before a call to alloc must not be used afterwards.
func (a *arena[K, V]) alloc(key K, value V) NodeID {
	var id NodeID
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.nodes = append(a.nodes, node[K, V]{})
		id = NodeID(len(a.nodes) - 1)
	}
	cell := &a.nodes[id]
	assert(!cell.live, "arena: allocating a live cell")
	cell.key, cell.value = key, value
	cell.child = [2]NodeID{NoNode, NoNode}
	cell.live = true
	a.live++
	return id
}

func (a *arena[K, V]) release(id NodeID) {
	cell := a.at(id)
	var zk K
	var zv V
	cell.key, cell.value = zk, zv
	cell.child = [2]NodeID{NoNode, NoNode}
	cell.live = false
	cell.gen++
	a.free = append(a.free, id)
	a.live--
}

func (a *arena[K, V]) at(id NodeID) *node[K, V] {
	assert(id >= 0 && int(id) < len(a.nodes), "arena: node id out of range")
	cell := &a.nodes[id]
	assert(cell.live, "arena: access to released node")
	return cell
}

// borrow returns a node referenced by a snapshot taken at generation gen.
func (a *arena[K, V]) borrow(id NodeID, gen uint32) *node[K, V] {
	cell := a.at(id)
	assert(cell.gen == gen, "arena: borrowed node has been disposed")
	return cell
}

func (a *arena[K, V]) child(id NodeID, side Side) NodeID {
	return a.at(id).child[side]
}
