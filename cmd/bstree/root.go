package main

import (
	"fmt"
	"io"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Str("cmd", "bstree").
		Logger()
}

// setupTracing routes the engine's tracer to the standard logger.
func setupTracing(level string) error {
	var l tracing.TraceLevel
	switch level {
	case "":
		return nil
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	default:
		return fmt.Errorf("unknown trace level %q (use debug or info)", level)
	}
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(l)
	return nil
}

// RootCommand creates the command tree of the bstree tool.
func RootCommand() *cobra.Command {
	var (
		traceLevel string
		verbose    bool
	)
	root := &cobra.Command{
		Use:           "bstree",
		Short:         "Inspect and benchmark binary search trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupTracing(traceLevel)
		},
	}
	root.PersistentFlags().StringVar(&traceLevel, "trace", "", "trace the tree engine at level debug or info")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	logger := func(cmd *cobra.Command) zerolog.Logger {
		return newLogger(cmd.ErrOrStderr(), verbose)
	}
	root.AddCommand(showCommand(), benchCommand(logger))
	return root
}
