package main

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/npillmayer/bstree"
	"github.com/npillmayer/bstree/console"
	"github.com/npillmayer/uax/uax11"
	"github.com/spf13/cobra"
)

func showCommand() *cobra.Command {
	var (
		random int
		seed   int64
		dot    bool
		values bool
		width  int
	)
	cmd := &cobra.Command{
		Use:   "show [keys...]",
		Short: "Insert integer keys in the given order and print the resulting tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := bstree.NewOrdered[int, string]()
			for _, arg := range args {
				k, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("key %q is not an integer: %w", arg, err)
				}
				if err := tree.InsertWith(k, arg, bstree.InsertUpdateValue); err != nil {
					return err
				}
			}
			r := rand.New(rand.NewSource(seed))
			for range random {
				k := r.Intn(10 * random)
				if err := tree.InsertWith(k, strconv.Itoa(k), bstree.InsertUpdateValue); err != nil {
					return err
				}
			}
			if dot {
				return bstree.Tree2Dot(tree, cmd.OutOrStdout())
			}
			var config *console.Config
			if width > 0 {
				config = &console.Config{LineWidth: width, Context: uax11.ContextFromEnvironment()}
			} else {
				config = console.ConfigFromTerminal()
				config.Context = uax11.ContextFromEnvironment()
			}
			config.ShowValues = values
			return console.Fprint(cmd.OutOrStdout(), tree, config)
		},
	}
	cmd.Flags().IntVar(&random, "random", 0, "additionally insert this many random keys")
	cmd.Flags().Int64Var(&seed, "seed", 1234, "seed for the random number generator")
	cmd.Flags().BoolVar(&dot, "dot", false, "output Graphviz DOT instead of a console dump")
	cmd.Flags().BoolVar(&values, "values", false, "print values next to keys")
	cmd.Flags().IntVar(&width, "width", 0, "line width; 0 means the terminal's width")
	return cmd
}
