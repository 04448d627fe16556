/*
Command bstree exercises the binary search tree engine.

	bstree show 5 3 8 1 4        # print a tree to the console
	bstree show --dot 5 3 8 1 4  # output Graphviz DOT
	bstree bench --ops 1000000   # random insert/obtain/dispose workload

Use --trace=debug to see the engine's tracing output.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	root := RootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}
