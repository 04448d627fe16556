package bstree

import "fmt"

// Allocator accounts for the node storage a tree takes.
//
// A tree calls Allocate before it creates nodes and Deallocate after it has
// released them. If Allocate returns an error, no node is created and the
// error is handed to the caller of the tree operation.
type Allocator interface {
	Allocate(size uintptr, count int) error
	Deallocate(size uintptr, count int)
}

// Unbounded is an allocator which never refuses.
type Unbounded struct{}

// Allocate always succeeds.
func (Unbounded) Allocate(uintptr, int) error { return nil }

// Deallocate does nothing.
func (Unbounded) Deallocate(uintptr, int) {}

// Budget is an allocator with an upper bound on the number of bytes in use.
// It keeps track of the bytes currently handed out, which makes it useful
// for leak checks: after a tree has been cleared, InUse must be 0.
type Budget struct {
	max   uintptr
	inUse uintptr
	peak  uintptr
}

// NewBudget creates an allocator refusing to hand out more than maxBytes.
func NewBudget(maxBytes uintptr) *Budget {
	return &Budget{max: maxBytes}
}

// Allocate reserves size*count bytes or fails with ErrAllocation.
func (b *Budget) Allocate(size uintptr, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrAllocation, count)
	}
	need := size * uintptr(count)
	if b.inUse+need > b.max {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrAllocation,
			need, b.inUse, b.max)
	}
	b.inUse += need
	if b.inUse > b.peak {
		b.peak = b.inUse
	}
	return nil
}

// Deallocate gives back size*count bytes.
func (b *Budget) Deallocate(size uintptr, count int) {
	free := size * uintptr(count)
	assert(free <= b.inUse, "budget: deallocating more than allocated")
	b.inUse -= free
}

// InUse returns the number of bytes currently allocated.
func (b *Budget) InUse() uintptr {
	return b.inUse
}

// Peak returns the high-water mark of allocated bytes.
func (b *Budget) Peak() uintptr {
	return b.peak
}
