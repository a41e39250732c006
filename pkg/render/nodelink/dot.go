package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowboard/pkg/chart"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes depth and properties in node labels.
	// When false, only the label is shown.
	Detailed bool

	// Positions pins nodes at their chart coordinates.
	Positions bool
}

// pointsPerPixel scales canvas pixels to Graphviz points.
const pointsPerPixel = 0.75

// ToDOT converts a chart to Graphviz DOT source. Nodes and edges follow
// chart order. Unlabeled nodes are drawn with a dashed outline and their
// ID as the label.
func ToDOT(c *chart.Chart, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.8];\n")
	if opts.Positions {
		buf.WriteString("  splines=true;\n")
	}
	buf.WriteString("\n")

	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		fmt.Fprintf(&buf, "  %q [%s];\n", p.Key, strings.Join(fmtAttrs(p.Value, opts), ", "))
	}

	buf.WriteString("\n")
	for p := c.Links.Oldest(); p != nil; p = p.Next() {
		l := p.Value
		if l.Color != "" {
			fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", l.From.NodeID, l.To.NodeID, l.Color)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", l.From.NodeID, l.To.NodeID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *chart.Node, detailed bool) string {
	name := n.Label
	if name == "" {
		name = n.ID
	}
	if !detailed {
		return name
	}

	var parts []string
	if n.Depth != nil {
		parts = append(parts, fmt.Sprintf("depth: %d", *n.Depth))
	}
	for p := n.Properties.Oldest(); p != nil; p = p.Next() {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Key, p.Value))
	}
	if len(parts) == 0 {
		return name
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *chart.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
	if n.Label == "" {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	if opts.Positions && n.Position != nil {
		// Graphviz y grows upwards; the canvas grows downwards.
		x := float64(n.Position.X) * pointsPerPixel
		y := -float64(n.Position.Y) * pointsPerPixel
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(x), fmtFloat(y)))
	}
	return attrs
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG. With opts.Positions the neato
// engine is used so pinned positions are honored.
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if opts.Positions {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales to its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
