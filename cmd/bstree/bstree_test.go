package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/bstree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	root := RootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestShowConsole(t *testing.T) {
	out, _, err := execute(t, "show", "--width", "40", "5", "3", "8")
	require.NoError(t, err)
	require.Equal(t, "  8\n5\n  3\n", out)
}

func TestShowValues(t *testing.T) {
	out, _, err := execute(t, "show", "--width", "40", "--values", "2", "1")
	require.NoError(t, err)
	require.Equal(t, "2: 2\n  1: 1\n", out)
}

func TestShowDot(t *testing.T) {
	out, _, err := execute(t, "show", "--dot", "5", "3", "8")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "strict digraph {"))
	require.Equal(t, 2, strings.Count(out, "->"))
}

func TestShowRandomKeys(t *testing.T) {
	out, _, err := execute(t, "show", "--width", "80", "--random", "20")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	require.LessOrEqual(t, len(lines), 20)
}

func TestShowRejectsNonIntegerKeys(t *testing.T) {
	_, _, err := execute(t, "show", "5", "x")
	require.Error(t, err)
}

func TestUnknownTraceLevel(t *testing.T) {
	_, _, err := execute(t, "show", "--trace", "loud", "1")
	require.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	_, logs, err := execute(t, "bench", "--ops", "5000", "--keys", "500", "--progress", "1000", "--metrics")
	require.NoError(t, err)
	require.Contains(t, logs, "final tree")
	require.Contains(t, logs, "bench_bstree_hook_calls_total")
	require.Contains(t, logs, "processed 5,000 ops")
}

func TestRunBenchAccounting(t *testing.T) {
	params := benchParams{Ops: 3000, KeySpace: 200, Seed: 7}
	res, err := runBench(params, prometheus.NewRegistry(), zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, params.Ops, res.Inserted+res.Duplicates+res.Found+res.Missing+res.Disposed+res.Absent)
	require.Equal(t, res.Inserted-res.Disposed, res.Size)
	require.LessOrEqual(t, res.Size, params.KeySpace)
	require.Greater(t, uint64(res.Peak), uint64(0))
}

func TestRunBenchBudgetExhausted(t *testing.T) {
	params := benchParams{Ops: 1000, KeySpace: 1000, Seed: 1, Budget: 1}
	_, err := runBench(params, prometheus.NewRegistry(), zerolog.Nop())
	require.Error(t, err)
	require.True(t, errors.Is(err, bstree.ErrAllocation))
}

func TestBenchInvalidBudget(t *testing.T) {
	_, _, err := execute(t, "bench", "--budget", "lots")
	require.Error(t, err)
}
