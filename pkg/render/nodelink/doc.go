// Package nodelink renders charts as Graphviz node-link diagrams.
//
// # Usage
//
//	dot := nodelink.ToDOT(c, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//
// # Options
//
//   - Detailed: node labels also list the depth and every property.
//   - Positions: nodes are pinned at their chart coordinates and the
//     graph is laid out with neato instead of dot, so the picture matches
//     the editor canvas.
//
// Links keep their chart color.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
