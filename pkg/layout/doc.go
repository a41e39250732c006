// Package layout assigns grid positions to chart nodes that have no saved
// canvas position.
//
// # Depth
//
// A node's depth is the length of the longest needs chain from any root
// (a node with no needs) down to it: roots are at depth 0 and every other
// node sits at one plus the deepest of its parents. This keeps every
// child strictly below all of its ancestors.
//
// [Depths] walks the needs relation with an explicit stack rather than
// recursion and marks nodes white, gray or black as it goes. Reaching a
// gray node means the needs relation loops back on itself; the walk stops
// with an error wrapping [ErrCycle] that names the loop. Depths are
// memoised on [chart.Node.Depth].
//
// # Placement
//
// [Place] puts every node without a position on a grid:
//
//	x = (nodes already placed at this depth) * Offsets.X + Offsets.X
//	y = depth * Offsets.Y + Offsets.Y
//
// Nodes are visited in chart order, so the first unplaced node of each
// depth lands in the first column.
package layout
