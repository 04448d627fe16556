package bstree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("bstree: invalid configuration")
	// ErrDuplicateKey signals an insertion of a key which is already present.
	ErrDuplicateKey = errors.New("bstree: key already present")
	// ErrMissingKey signals a lookup or disposal of a key which is not present.
	ErrMissingKey = errors.New("bstree: key not present")
	// ErrInvalidRotation signals a rotation on a subtree lacking a required child.
	ErrInvalidRotation = errors.New("bstree: invalid rotation")
	// ErrAllocation signals that the allocator refused to provide node storage.
	ErrAllocation = errors.New("bstree: allocation failed")
	// ErrCorruptTree is reported by Check for a violated structural invariant.
	ErrCorruptTree = errors.New("bstree: corrupt tree")
)

// KeyError is returned by keyed operations and carries the offending key.
// Err is one of the package's sentinel errors (or an allocator error), so
// clients test for the cause with errors.Is.
type KeyError[K any] struct {
	Op  string // "insert", "obtain" or "dispose"
	Key K
	Err error
}

func (e *KeyError[K]) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Op, e.Key, e.Err)
}

func (e *KeyError[K]) Unwrap() error {
	return e.Err
}
