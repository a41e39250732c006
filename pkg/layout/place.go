package layout

import "github.com/matzehuels/flowboard/pkg/chart"

// Default grid spacing in canvas pixels.
const (
	DefaultOffsetX = 250
	DefaultOffsetY = 150
)

// Offsets is the grid spacing used by [Place].
type Offsets struct {
	X int
	Y int
}

// DefaultOffsets returns the default grid spacing.
func DefaultOffsets() Offsets {
	return Offsets{X: DefaultOffsetX, Y: DefaultOffsetY}
}

// withDefaults replaces non-positive spacing with the defaults.
func (o Offsets) withDefaults() Offsets {
	if o.X <= 0 {
		o.X = DefaultOffsetX
	}
	if o.Y <= 0 {
		o.Y = DefaultOffsetY
	}
	return o
}

// Place computes depths for all nodes and positions every node whose
// Position is nil. Nodes that already have a position are left alone and
// do not take up a grid slot. It returns the number of nodes placed.
func Place(c *chart.Chart, off Offsets) (int, error) {
	depths, err := Depths(c)
	if err != nil {
		return 0, err
	}

	off = off.withDefaults()
	placedAtDepth := make(map[int]int)
	placed := 0
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		n := p.Value
		if n.Position != nil {
			continue
		}
		d := depths[p.Key]
		n.Position = &chart.Position{
			X: placedAtDepth[d]*off.X + off.X,
			Y: d*off.Y + off.Y,
		}
		placedAtDepth[d]++
		placed++
	}
	return placed, nil
}

// Reset clears every node position so the next [Place] lays out the whole
// chart.
func Reset(c *chart.Chart) {
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		p.Value.Position = nil
	}
}

// MaxDepth returns the largest memoised depth in the chart, or -1 when no
// node has a depth.
func MaxDepth(c *chart.Chart) int {
	max := -1
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		if d := p.Value.Depth; d != nil && *d > max {
			max = *d
		}
	}
	return max
}
