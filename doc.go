/*
Package bstree implements an ordered key/value container on top of an explicit
binary search tree.

The tree itself is not self-balancing. It is meant as the engine underneath
balanced variants (AVL, red-black, splay, …): every structural change is
reported to a Balancer together with the full path from the root to the
changed position, and balancers may reshape the tree with the rotation
primitives this package exports. The default balancer does nothing.

Nodes live in an arena owned by the tree and are addressed by index. Links
between nodes are child indices; there are no parent links. A position in the
tree which holds a subtree is called a slot: either the root slot or the left
or right child slot of a node. Insert, Obtain and Dispose all start by
computing the path of slots from the root down to the position of a key.

	          ┌───┐
	root ───▶ │ 5 │
	          └───┘
	   left ╱       ╲ right
	  ┌───┐           ┌───┐
	  │ 3 │           │ 8 │
	  └───┘           └───┘

Iteration is done by explicit-stack state machines; no operation of this
package recurses over the tree. There are three orders (pre-, in- and
post-order), each forward or mirrored (reverse), each as a read-only
ConstIterator or as an Iterator which may replace values in place.

Trees are not safe for concurrent use. Any structural change invalidates
iterators and paths obtained before the change.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package bstree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
