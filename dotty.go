package bstree

import (
	"fmt"
	"io"
)

// Tree2Dot outputs the structure of a tree in Graphviz DOT format
// (for debugging purposes). Empty child slots of inner nodes are drawn as
// small circles, so that left and right children can be told apart.
func Tree2Dot[K, V any](t *Tree[K, V], w io.Writer) error {
	var nodelist, edgelist string
	nilid := 0
	for c := startCursor(t, PreOrder, Forward); !c.done(); c.advance() {
		id := c.top()
		n := t.arena.at(id)
		label := fmt.Sprintf("%v", n.key)
		nodelist += fmt.Sprintf("\"%d\" [label=%q %s];\n", id, label, nodeDotStyles(c.depth()))
		if n.child[Left] == NoNode && n.child[Right] == NoNode {
			continue
		}
		for _, ch := range n.child {
			if ch == NoNode {
				nilid++
				nodelist += fmt.Sprintf("\"nil%d\" %s;\n", nilid, emptyNode())
				edgelist += fmt.Sprintf("\"%d\" -> \"nil%d\";\n", id, nilid)
			} else {
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", id, ch)
			}
		}
	}
	for _, s := range []string{
		"strict digraph {\n",
		"\tnode [fontname=Arial,fontsize=12];\n",
		nodelist,
		edgelist,
		"}\n",
	} {
		if _, err := io.WriteString(w, s); err != nil {
			T().Errorf("tree DOT: %s", err.Error())
			return err
		}
	}
	return nil
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles(depth int) string {
	s := ",style=filled,color=black,shape=circle"
	s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[depth%len(hexcolors)])
	return s
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
