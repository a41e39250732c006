package pipeline

import (
	"github.com/matzehuels/flowboard/pkg/chart"
	"github.com/matzehuels/flowboard/pkg/layout"
)

// Layout places every node without a position. With reset, all saved
// positions are discarded first.
func Layout(c *chart.Chart, opts Options, reset bool) (int, error) {
	if reset {
		layout.Reset(c)
	}
	return layout.Place(c, opts.Offsets())
}
