// Package render turns charts into diagrams for inspection outside the
// browser editor.
//
// # Renderers
//
// The [nodelink] subpackage writes Graphviz DOT and renders it to SVG
// in-process. The [mermaid] subpackage writes a Mermaid flowchart that
// can be pasted into Markdown.
//
//	dot := nodelink.ToDOT(c, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//
//	src := mermaid.Generate(c)
//
// Both expect a chart that has been through the importer or layout, so
// every node has a depth and a position.
//
// [nodelink]: github.com/matzehuels/flowboard/pkg/render/nodelink
// [mermaid]: github.com/matzehuels/flowboard/pkg/render/mermaid
package render
