package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/flowboard/pkg/chart"
	fberrors "github.com/matzehuels/flowboard/pkg/errors"
)

// ErrCycle is wrapped by the error [Depths] returns when needs form a loop.
var ErrCycle = errors.New("cyclic dependency")

type color uint8

const (
	white color = iota
	gray
	black
)

// frame is one entry of the explicit DFS stack: a node and the index of
// the next parent to visit.
type frame struct {
	id   string
	next int
}

// Depths computes the depth of every node, stores it on the node and
// returns the result keyed by node ID.
//
// Parents are visited in needs order. A needs entry that names a node not
// in the chart yields an error wrapping [chart.ErrUnknownNode] with code
// UNKNOWN_NODE; a loop yields one wrapping [ErrCycle] with code
// CYCLIC_DEPENDENCY.
func Depths(c *chart.Chart) (map[string]int, error) {
	depths := make(map[string]int, c.Nodes.Len())
	colors := make(map[string]color, c.Nodes.Len())
	parents := make(map[string][]string, c.Nodes.Len())
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		parents[p.Key] = p.Value.Parents()
	}

	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		if colors[p.Key] == black {
			continue
		}
		if err := visit(c, p.Key, parents, colors, depths); err != nil {
			return nil, err
		}
	}

	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		d := depths[p.Key]
		p.Value.Depth = &d
	}
	return depths, nil
}

func visit(c *chart.Chart, root string, parents map[string][]string, colors map[string]color, depths map[string]int) error {
	stack := []frame{{id: root}}
	colors[root] = gray

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		ps := parents[top.id]

		if top.next == len(ps) {
			d := 0
			for _, parent := range ps {
				if pd := depths[parent] + 1; pd > d {
					d = pd
				}
			}
			depths[top.id] = d
			colors[top.id] = black
			stack = stack[:len(stack)-1]
			continue
		}

		parent := ps[top.next]
		top.next++

		if _, ok := c.Nodes.Get(parent); !ok {
			return fberrors.Wrap(fberrors.ErrCodeUnknownNode, chart.ErrUnknownNode,
				"%s needs %s", top.id, parent)
		}

		switch colors[parent] {
		case white:
			colors[parent] = gray
			stack = append(stack, frame{id: parent})
		case gray:
			return fberrors.Wrap(fberrors.ErrCodeCyclicDependency, ErrCycle,
				"%s", cyclePath(stack, parent))
		}
	}
	return nil
}

// cyclePath renders the loop closed by an edge back to target, which is on
// the stack. The stack runs child to parent, so the path is reversed to
// read in dependency order.
func cyclePath(stack []frame, target string) string {
	start := 0
	for i, f := range stack {
		if f.id == target {
			start = i
			break
		}
	}
	ids := make([]string, 0, len(stack)-start+1)
	for i := len(stack) - 1; i >= start; i-- {
		ids = append(ids, stack[i].id)
	}
	ids = append(ids, stack[len(stack)-1].id)
	return fmt.Sprintf("needs loop %s", strings.Join(ids, " -> "))
}
