/*
Package instrument exports metrics about binary search trees to Prometheus.

Instrumentation is done by wrapping a tree's balancer: every call of a
balance hook is counted, and the length of the path handed to the hook is
observed. Path lengths are the number of comparisons an operation needed,
which makes them a direct measure of how well a balancing policy works.

	reg := prometheus.NewRegistry()
	b, err := instrument.Wrap[string, int](myBalancer, reg, "phonebook")
	cfg := bstree.Ordered[string, int]()
	cfg.Balancer = b
	tree, err := bstree.New(cfg)

An instrumented balancer reports on every tree it is configured for. Trees
created by Tree.Clone share the balancer of their source, so the size gauge
shows whichever of them changed last. Wrap a separate balancer (with its
own namespace or registry) for each tree to be observed on its own.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package instrument

import (
	"errors"
	"fmt"

	"github.com/npillmayer/bstree"
	"github.com/prometheus/client_golang/prometheus"
)

// Hook label values.
const (
	HookInsert  = "insert"
	HookDispose = "dispose"
	HookAccess  = "access"
)

// Balancer is a bstree.Balancer which records metrics and delegates to an
// inner balancer.
type Balancer[K, V any] struct {
	inner   bstree.Balancer[K, V]
	updater bstree.NodeUpdater[K, V] // nil if inner does not update nodes
	hooks   *prometheus.CounterVec
	paths   *prometheus.HistogramVec
	updates prometheus.Counter
	size    prometheus.Gauge
}

// Wrap creates an instrumented balancer around inner and registers its
// collectors with reg. A nil inner balancer is replaced by
// bstree.NoBalance. The metric names are prefixed with namespace.
func Wrap[K, V any](inner bstree.Balancer[K, V], reg prometheus.Registerer, namespace string) (*Balancer[K, V], error) {
	if inner == nil {
		inner = bstree.NoBalance[K, V]{}
	}
	b := &Balancer[K, V]{
		inner: inner,
		hooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bstree_hook_calls_total",
			Help:      "number of balance hook invocations",
		}, []string{"hook"}),
		paths: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bstree_path_length",
			Help:      "length of the search path handed to a balance hook",
			Buckets:   prometheus.LinearBuckets(1, 2, 16),
		}, []string{"hook"}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bstree_node_updates_total",
			Help:      "number of node updates after rotations",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bstree_size",
			Help:      "number of keys in the tree after the last structural change",
		}),
	}
	if u, ok := inner.(bstree.NodeUpdater[K, V]); ok {
		b.updater = u
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{b.hooks, b.paths, b.updates, b.size} {
			if err := reg.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if errors.As(err, &are) {
					return nil, fmt.Errorf("instrument: metrics for namespace %q already registered: %w", namespace, err)
				}
				return nil, err
			}
		}
	}
	return b, nil
}

// Inner returns the wrapped balancer.
func (b *Balancer[K, V]) Inner() bstree.Balancer[K, V] {
	return b.inner
}

func (b *Balancer[K, V]) observe(hook string, path bstree.Path) {
	b.hooks.WithLabelValues(hook).Inc()
	b.paths.WithLabelValues(hook).Observe(float64(len(path)))
}

// AfterInsert is part of interface bstree.Balancer.
func (b *Balancer[K, V]) AfterInsert(t *bstree.Tree[K, V], path bstree.Path) {
	b.observe(HookInsert, path)
	b.inner.AfterInsert(t, path)
	b.size.Set(float64(t.Len()))
}

// AfterDispose is part of interface bstree.Balancer.
func (b *Balancer[K, V]) AfterDispose(t *bstree.Tree[K, V], path bstree.Path) {
	b.observe(HookDispose, path)
	b.inner.AfterDispose(t, path)
	b.size.Set(float64(t.Len()))
}

// AfterAccess is part of interface bstree.Balancer.
func (b *Balancer[K, V]) AfterAccess(t *bstree.Tree[K, V], path bstree.Path) {
	b.observe(HookAccess, path)
	b.inner.AfterAccess(t, path)
}

// UpdateNode is part of interface bstree.NodeUpdater. It is forwarded to
// the inner balancer if that one updates nodes.
func (b *Balancer[K, V]) UpdateNode(t *bstree.Tree[K, V], id bstree.NodeID) {
	b.updates.Inc()
	if b.updater != nil {
		b.updater.UpdateNode(t, id)
	}
}
