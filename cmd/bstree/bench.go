package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/bstree"
	"github.com/npillmayer/bstree/instrument"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type benchParams struct {
	Ops      int
	KeySpace int
	Seed     int64
	Budget   uint64 // bytes; 0 means unbounded
	Metrics  bool
	Progress int // log progress every Progress ops
}

type benchResult struct {
	Inserted, Duplicates int
	Found, Missing       int
	Disposed, Absent     int
	Size, Height         int
	Peak                 uintptr
	Elapsed              time.Duration
}

func benchCommand(logger func(*cobra.Command) zerolog.Logger) *cobra.Command {
	var (
		params benchParams
		budget string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a random insert/obtain/dispose workload on an unbalanced tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger(cmd)
			if budget != "" {
				b, err := humanize.ParseBytes(budget)
				if err != nil {
					return fmt.Errorf("invalid budget: %w", err)
				}
				params.Budget = b
			}
			if params.Ops <= 0 || params.KeySpace <= 0 {
				return errors.New("ops and keys must be positive")
			}
			reg := prometheus.NewRegistry()
			res, err := runBench(params, reg, log)
			if err != nil {
				return err
			}
			log.Info().Msgf("%s ops in %s; %s ops/s",
				humanize.Comma(int64(params.Ops)),
				res.Elapsed,
				humanize.Comma(int64(float64(params.Ops)/res.Elapsed.Seconds())))
			log.Info().
				Int("size", res.Size).
				Int("height", res.Height).
				Str("peak", humanize.Bytes(uint64(res.Peak))).
				Msg("final tree")
			log.Debug().
				Int("inserted", res.Inserted).Int("duplicates", res.Duplicates).
				Int("found", res.Found).Int("missing", res.Missing).
				Int("disposed", res.Disposed).Int("absent", res.Absent).
				Msg("operations")
			if params.Metrics {
				return logMetrics(reg, log)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&params.Ops, "ops", 100_000, "number of operations")
	cmd.Flags().IntVar(&params.KeySpace, "keys", 10_000, "keys are drawn from [0, keys)")
	cmd.Flags().Int64Var(&params.Seed, "seed", 1234, "seed for the random number generator")
	cmd.Flags().StringVar(&budget, "budget", "", "limit node storage, e.g. \"64 MiB\"")
	cmd.Flags().BoolVar(&params.Metrics, "metrics", false, "report balance hook metrics")
	cmd.Flags().IntVar(&params.Progress, "progress", 100_000, "log progress every n operations")
	return cmd
}

// runBench runs the workload. Allocation failures end the run with an
// error wrapping bstree.ErrAllocation.
func runBench(params benchParams, reg prometheus.Registerer, log zerolog.Logger) (benchResult, error) {
	var res benchResult
	limit := ^uintptr(0) >> 1
	if params.Budget > 0 {
		limit = uintptr(params.Budget)
	}
	budget := bstree.NewBudget(limit)
	balancer, err := instrument.Wrap[int, int](nil, reg, "bench")
	if err != nil {
		return res, err
	}
	cfg := bstree.Ordered[int, int]()
	cfg.Allocator = budget
	cfg.Balancer = balancer
	tree, err := bstree.New(cfg)
	if err != nil {
		return res, err
	}
	r := rand.New(rand.NewSource(params.Seed))
	start := time.Now()
	since := start
	for i := 1; i <= params.Ops; i++ {
		key := r.Intn(params.KeySpace)
		switch r.Intn(3) {
		case 0:
			err := tree.Insert(key, i)
			switch {
			case err == nil:
				res.Inserted++
			case errors.Is(err, bstree.ErrDuplicateKey):
				res.Duplicates++
			default:
				return res, fmt.Errorf("operation %d: %w", i, err)
			}
		case 1:
			if _, err := tree.Obtain(key); err == nil {
				res.Found++
			} else {
				res.Missing++
			}
		case 2:
			n := tree.Len()
			if _, err := tree.DisposeWith(key, bstree.DisposeDoNothing); err != nil {
				return res, fmt.Errorf("operation %d: %w", i, err)
			}
			if tree.Len() < n {
				res.Disposed++
			} else {
				res.Absent++
			}
		}
		if params.Progress > 0 && i%params.Progress == 0 {
			log.Info().Msgf("processed %s ops in %s; %s ops/s; size=%d",
				humanize.Comma(int64(i)),
				time.Since(since),
				humanize.Comma(int64(float64(params.Progress)/time.Since(since).Seconds())),
				tree.Len())
			since = time.Now()
		}
	}
	res.Elapsed = time.Since(start)
	if err := tree.Check(); err != nil {
		bstree.T().Errorf("bench: tree invariants violated: %v", err)
		return res, err
	}
	res.Size = tree.Len()
	res.Height = tree.Height()
	res.Peak = budget.Peak()
	tree.Clear()
	if budget.InUse() != 0 {
		return res, fmt.Errorf("bench: %s of node storage not returned", humanize.Bytes(uint64(budget.InUse())))
	}
	return res, nil
}

// logMetrics reports the collected balance hook metrics.
func logMetrics(g prometheus.Gatherer, log zerolog.Logger) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			hook := ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "hook" {
					hook = lp.GetValue()
				}
			}
			switch {
			case m.GetCounter() != nil:
				log.Info().Str("metric", mf.GetName()).Str("hook", hook).
					Str("value", humanize.Comma(int64(m.GetCounter().GetValue()))).Msg("counter")
			case m.GetGauge() != nil:
				log.Info().Str("metric", mf.GetName()).
					Float64("value", m.GetGauge().GetValue()).Msg("gauge")
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				mean := 0.0
				if h.GetSampleCount() > 0 {
					mean = h.GetSampleSum() / float64(h.GetSampleCount())
				}
				log.Info().Str("metric", mf.GetName()).Str("hook", hook).
					Uint64("samples", h.GetSampleCount()).Float64("mean", mean).Msg("histogram")
			}
		}
	}
	return nil
}
