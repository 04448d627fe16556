package bstree

import (
	"cmp"
	"fmt"
)

// InsertStrategy decides what Insert does with a key which is already present.
type InsertStrategy uint8

const (
	// InsertThrow rejects the insertion with ErrDuplicateKey.
	InsertThrow InsertStrategy = iota
	// InsertUpdateValue overwrites the value stored for the key.
	InsertUpdateValue
)

func (s InsertStrategy) String() string {
	switch s {
	case InsertThrow:
		return "throw"
	case InsertUpdateValue:
		return "update-value"
	}
	return fmt.Sprintf("InsertStrategy(%d)", uint8(s))
}

// DisposeStrategy decides what Dispose does with a key which is not present.
type DisposeStrategy uint8

const (
	// DisposeThrow rejects the disposal with ErrMissingKey.
	DisposeThrow DisposeStrategy = iota
	// DisposeDoNothing silently returns the zero value.
	DisposeDoNothing
)

func (s DisposeStrategy) String() string {
	switch s {
	case DisposeThrow:
		return "throw"
	case DisposeDoNothing:
		return "do-nothing"
	}
	return fmt.Sprintf("DisposeStrategy(%d)", uint8(s))
}

// Config configures a tree.
//
// Compare is mandatory and must be a strict weak ordering which stays fixed
// for the lifetime of the tree. All other fields are optional.
type Config[K, V any] struct {
	// Compare returns a negative number, zero or a positive number if a is
	// less than, equal to or greater than b.
	Compare func(a, b K) int
	// Allocator accounts for node storage. Defaults to Unbounded.
	Allocator Allocator
	// Balancer is called after structural changes. Defaults to NoBalance.
	Balancer Balancer[K, V]
	// Insertion is the default strategy for Insert.
	Insertion InsertStrategy
	// Disposal is the default strategy for Dispose.
	Disposal DisposeStrategy
	// CopyKey and CopyValue produce detached copies for owned snapshots and
	// range queries. Both default to plain assignment.
	CopyKey   func(K) K
	CopyValue func(V) V
}

// Ordered returns a configuration for key types with a natural order.
func Ordered[K cmp.Ordered, V any]() Config[K, V] {
	return Config[K, V]{Compare: cmp.Compare[K]}
}

func (cfg Config[K, V]) normalized() Config[K, V] {
	if cfg.Allocator == nil {
		cfg.Allocator = Unbounded{}
	}
	if cfg.Balancer == nil {
		cfg.Balancer = NoBalance[K, V]{}
	}
	if cfg.CopyKey == nil {
		cfg.CopyKey = func(k K) K { return k }
	}
	if cfg.CopyValue == nil {
		cfg.CopyValue = func(v V) V { return v }
	}
	return cfg
}

func (cfg Config[K, V]) validate() error {
	if cfg.Compare == nil {
		return fmt.Errorf("%w: comparer is required", ErrInvalidConfig)
	}
	if cfg.Insertion > InsertUpdateValue {
		return fmt.Errorf("%w: unknown insertion strategy %d", ErrInvalidConfig, cfg.Insertion)
	}
	if cfg.Disposal > DisposeDoNothing {
		return fmt.Errorf("%w: unknown disposal strategy %d", ErrInvalidConfig, cfg.Disposal)
	}
	return nil
}
