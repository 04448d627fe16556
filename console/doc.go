/*
Package console prints binary search trees to terminals with fixed-width
fonts.

Trees are printed sideways: the root is at the left margin, right subtrees
above and left subtrees below their parent, each level indented further.
Tilting your head to the left shows the usual picture of the tree.

	    9
	  8
	    7
	5
	    4
	  3
	    1

Each depth is colored differently (if the output device supports colors).
Labels are cut to the configured line width. Widths are measured in
fixed-width positions according to UAX#11, so East Asian wide characters
count twice.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package console

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
