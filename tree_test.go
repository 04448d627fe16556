package bstree

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeIntTree(t *testing.T, keys ...int) *Tree[int, string] {
	t.Helper()
	tree := NewOrdered[int, string]()
	for _, k := range keys {
		if err := tree.Insert(k, fmt.Sprintf("v%d", k)); err != nil {
			t.Fatalf("insert %d failed: %v", k, err)
		}
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("tree invalid after setup: %v", err)
	}
	return tree
}

func inorderKeys[V any](tree *Tree[int, V]) []int {
	var keys []int
	for k := range tree.Keys() {
		keys = append(keys, k)
	}
	return keys
}

func TestNewRejectsMissingComparer(t *testing.T) {
	_, err := New(Config[int, int]{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	_, err = New(Config[int, int]{Compare: func(a, b int) int { return a - b }, Insertion: 7})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for unknown strategy, got %v", err)
	}
}

func TestEmptyTree(t *testing.T) {
	tree := NewOrdered[string, int]()
	if !tree.IsEmpty() || tree.Len() != 0 || tree.Height() != 0 {
		t.Fatalf("unexpected empty tree state len=%d height=%d", tree.Len(), tree.Height())
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("expected empty tree to be valid, got %v", err)
	}
	if _, _, ok := tree.Min(); ok {
		t.Errorf("Min of empty tree should report false")
	}
	if got := tree.ObtainBetween("a", "z", true, true); len(got) != 0 {
		t.Errorf("range over empty tree should be empty, is %v", got)
	}
}

func TestInsertScenario(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree := makeIntTree(t, 5, 3, 8, 1, 4, 7, 9)
	if got, want := inorderKeys(tree), []int{1, 3, 4, 5, 7, 8, 9}; !slices.Equal(got, want) {
		t.Fatalf("in-order = %v, want %v", got, want)
	}
	if tree.Len() != 7 || tree.Height() != 3 {
		t.Errorf("len=%d height=%d, want 7/3", tree.Len(), tree.Height())
	}
	if k, v, ok := tree.Min(); !ok || k != 1 || v != "v1" {
		t.Errorf("Min = %d/%q", k, v)
	}
	if k, _, ok := tree.Max(); !ok || k != 9 {
		t.Errorf("Max = %d", k)
	}
}

func TestObtainRoundTrip(t *testing.T) {
	tree := makeIntTree(t, 5, 3, 8)
	for _, k := range []int{5, 3, 8} {
		v, err := tree.Obtain(k)
		if err != nil || v != fmt.Sprintf("v%d", k) {
			t.Errorf("Obtain(%d) = %q, %v", k, v, err)
		}
	}
	_, err := tree.Obtain(4)
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	var kerr *KeyError[int]
	if !errors.As(err, &kerr) || kerr.Key != 4 || kerr.Op != "obtain" {
		t.Errorf("expected key error for key 4, got %#v", err)
	}
	if !tree.Contains(3) || tree.Contains(4) {
		t.Errorf("Contains misreports presence")
	}
}

func TestDuplicateKeyStrategies(t *testing.T) {
	tree := NewOrdered[int, string]()
	if err := tree.Insert(2, "a"); err != nil {
		t.Fatal(err)
	}
	err := tree.Insert(2, "b")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if v, _ := tree.Obtain(2); v != "a" {
		t.Errorf("value after rejected insert = %q, want a", v)
	}
	if err := tree.InsertWith(2, "b", InsertUpdateValue); err != nil {
		t.Fatalf("update insert failed: %v", err)
	}
	if v, _ := tree.Obtain(2); v != "b" {
		t.Errorf("value after update = %q, want b", v)
	}
	tree.SetInsertionStrategy(InsertUpdateValue)
	if err := tree.Insert(2, "c"); err != nil {
		t.Fatalf("update insert with default strategy failed: %v", err)
	}
	if v, _ := tree.Obtain(2); v != "c" || tree.Len() != 1 {
		t.Errorf("value = %q, len = %d", v, tree.Len())
	}
	if tree.Config().Insertion != InsertUpdateValue {
		t.Errorf("config does not reflect strategy change")
	}
}

func TestUpdateKeepsShape(t *testing.T) {
	tree := makeIntTree(t, 5, 3, 8, 1, 4, 7, 9)
	before := collect(tree.CBeginPrefix())
	for _, k := range []int{1, 5, 9} {
		if err := tree.InsertWith(k, "new", InsertUpdateValue); err != nil {
			t.Fatal(err)
		}
	}
	if after := collect(tree.CBeginPrefix()); !slices.Equal(before, after) {
		t.Errorf("shape changed by value update: %v -> %v", before, after)
	}
	if v, _ := tree.Obtain(5); v != "new" {
		t.Errorf("value not updated")
	}
}

func TestDisposeTwoChildren(t *testing.T) {
	tree := makeIntTree(t, 5, 3, 8, 1, 4, 7, 9)
	rootBefore := tree.root
	v, err := tree.Dispose(5)
	if err != nil || v != "v5" {
		t.Fatalf("Dispose(5) = %q, %v", v, err)
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
	if got, want := inorderKeys(tree), []int{1, 3, 4, 7, 8, 9}; !slices.Equal(got, want) {
		t.Fatalf("in-order = %v, want %v", got, want)
	}
	// the root node stays in place and receives the predecessor's content
	if tree.root != rootBefore || tree.KeyOf(tree.root) != 4 || tree.ValueOf(tree.root) != "v4" {
		t.Errorf("root content after dispose: node %d key %d", tree.root, tree.KeyOf(tree.root))
	}
	if got, want := collect(tree.CBeginPrefix()), []int{4, 3, 1, 8, 7, 9}; !slices.Equal(got, want) {
		t.Errorf("pre-order = %v, want %v", got, want)
	}
}

func TestDisposeOneAndZeroChildren(t *testing.T) {
	tree := makeIntTree(t, 5, 3, 8, 1, 9)
	for _, k := range []int{3, 8, 1} { // one child, one child, leaf
		if _, err := tree.Dispose(k); err != nil {
			t.Fatalf("Dispose(%d): %v", k, err)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("after Dispose(%d): %v", k, err)
		}
	}
	if got, want := inorderKeys(tree), []int{5, 9}; !slices.Equal(got, want) {
		t.Errorf("in-order = %v, want %v", got, want)
	}
	if _, err := tree.Dispose(5); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Dispose(9); err != nil {
		t.Fatal(err)
	}
	if !tree.IsEmpty() || tree.Len() != 0 {
		t.Errorf("tree should be empty")
	}
}

func TestDisposeAllReturnsBudget(t *testing.T) {
	budget := NewBudget(1 << 20)
	cfg := Ordered[int, string]()
	cfg.Allocator = budget
	tree, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	keys := []int{5, 3, 8, 1, 4, 7, 9, 2, 6}
	for _, k := range keys {
		if err := tree.Insert(k, fmt.Sprintf("v%d", k)); err != nil {
			t.Fatal(err)
		}
	}
	if budget.InUse() != uintptr(len(keys))*tree.nodeSize {
		t.Fatalf("budget in use = %d after %d inserts", budget.InUse(), len(keys))
	}
	// root with two children first, then inner nodes and leaves
	for _, k := range []int{5, 3, 8, 1, 9, 4, 7, 2, 6} {
		v, err := tree.Dispose(k)
		if err != nil {
			t.Fatalf("Dispose(%d): %v", k, err)
		}
		if v != fmt.Sprintf("v%d", k) {
			t.Errorf("Dispose(%d) returned %q", k, v)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("after Dispose(%d): %v", k, err)
		}
		if budget.InUse() != uintptr(tree.Len())*tree.nodeSize {
			t.Fatalf("after Dispose(%d): %d bytes in use for %d nodes", k, budget.InUse(), tree.Len())
		}
	}
	if !tree.IsEmpty() || tree.Len() != 0 {
		t.Errorf("tree should be empty")
	}
	if budget.InUse() != 0 {
		t.Errorf("leak: %d bytes in use after disposing all keys", budget.InUse())
	}
}

func TestDisposeMissingKey(t *testing.T) {
	tree := makeIntTree(t, 5, 3, 8)
	if _, err := tree.Dispose(4); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	v, err := tree.DisposeWith(4, DisposeDoNothing)
	if err != nil || v != "" {
		t.Fatalf("do-nothing dispose returned %q, %v", v, err)
	}
	tree.SetDisposalStrategy(DisposeDoNothing)
	if _, err := tree.Dispose(42); err != nil {
		t.Fatalf("expected no error with do-nothing default, got %v", err)
	}
	if tree.Len() != 3 || !slices.Equal(inorderKeys(tree), []int{3, 5, 8}) {
		t.Errorf("tree changed by missing-key disposal")
	}
}

func TestAllocationFailureLeavesTreeUnchanged(t *testing.T) {
	probe := NewOrdered[int, string]()
	budget := NewBudget(3 * probe.nodeSize)
	cfg := Ordered[int, string]()
	cfg.Allocator = budget
	tree, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []int{2, 1, 3} {
		if err := tree.Insert(k, "x"); err != nil {
			t.Fatalf("insert %d: %v", k, err)
		}
	}
	err = tree.Insert(4, "x")
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
	if tree.Len() != 3 || tree.Contains(4) {
		t.Errorf("failed insert changed the tree")
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Clone(); !errors.Is(err, ErrAllocation) {
		t.Errorf("expected clone to fail on exhausted budget, got %v", err)
	}
	if _, err := tree.Dispose(2); err != nil {
		t.Fatal(err)
	}
	if budget.InUse() != 2*probe.nodeSize {
		t.Errorf("budget in use = %d, want %d", budget.InUse(), 2*probe.nodeSize)
	}
	tree.Clear()
	if budget.InUse() != 0 || budget.Peak() != 3*probe.nodeSize {
		t.Errorf("leak: %d bytes in use after clear, peak %d", budget.InUse(), budget.Peak())
	}
	if !tree.IsEmpty() {
		t.Errorf("tree not empty after Clear")
	}
}

func TestArenaReusesDisposedCells(t *testing.T) {
	tree := makeIntTree(t, 5, 3, 8)
	cells := len(tree.arena.nodes)
	if _, err := tree.Dispose(3); err != nil {
		t.Fatal(err)
	}
	if err := tree.Insert(2, "v2"); err != nil {
		t.Fatal(err)
	}
	if len(tree.arena.nodes) != cells {
		t.Errorf("arena grew from %d to %d cells", cells, len(tree.arena.nodes))
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tree := makeIntTree(t, 5, 3, 8, 1, 4, 7, 9)
	cloned, err := tree.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if err := cloned.Check(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(collect(tree.CBeginPrefix()), collect(cloned.CBeginPrefix())) {
		t.Fatalf("clone has a different shape")
	}
	if _, err := cloned.Dispose(5); err != nil {
		t.Fatal(err)
	}
	if err := cloned.InsertWith(1, "changed", InsertUpdateValue); err != nil {
		t.Fatal(err)
	}
	if v, _ := tree.Obtain(1); v != "v1" || !tree.Contains(5) || tree.Len() != 7 {
		t.Errorf("source tree affected by changes to its clone")
	}
}

func TestKeyErrorMessage(t *testing.T) {
	tree := makeIntTree(t, 1)
	err := tree.Insert(1, "again")
	if err == nil || err.Error() != "insert 1: bstree: key already present" {
		t.Errorf("unexpected error message %q", err)
	}
}
