// Package pkg holds the flowboard libraries.
//
// # Overview
//
// Flowboard edits Jina Flow documents as charts: pods become nodes, needs
// become links, and canvas positions are stored back into the document
// under with.board.canvas. The packages are:
//
//  1. [flow] - Flow YAML documents (order-preserving parse and encode)
//  2. [chart] - the chart model and its editing operations
//  3. [layout] - dependency depths and grid placement
//  4. [io] - Flow to chart import, chart to Flow export, chart JSON
//  5. [proptype] - declared pod property types used on export
//  6. [render] - DOT, SVG and Mermaid output
//  7. [pipeline] - orchestration with caching and hooks
//
// Supporting packages are [cache], [errors], [format], [observability]
// and [buildinfo].
//
// # Data flow
//
//	Flow YAML
//	    ↓
//	[flow] parse
//	    ↓
//	[io] import  →  [layout] place
//	    ↓
//	chart  ⇄  chart JSON
//	    ↓
//	[io] export → Flow YAML    [render] → DOT/SVG/Mermaid
//
// # Quick Start
//
//	f, err := flow.Parse(data)
//	canvas, err := f.Canvas()
//	c, err := io.Import(f, canvas, io.ImportOptions{Offsets: layout.DefaultOffsets()})
//
//	// ... edit c with the chart package ...
//
//	err = io.WriteYAML(c, os.Stdout, io.ExportOptions{Types: proptype.Default()})
//
// [flow]: github.com/matzehuels/flowboard/pkg/flow
// [chart]: github.com/matzehuels/flowboard/pkg/chart
// [layout]: github.com/matzehuels/flowboard/pkg/layout
// [io]: github.com/matzehuels/flowboard/pkg/io
// [proptype]: github.com/matzehuels/flowboard/pkg/proptype
// [render]: github.com/matzehuels/flowboard/pkg/render
// [pipeline]: github.com/matzehuels/flowboard/pkg/pipeline
// [cache]: github.com/matzehuels/flowboard/pkg/cache
// [errors]: github.com/matzehuels/flowboard/pkg/errors
// [format]: github.com/matzehuels/flowboard/pkg/format
// [observability]: github.com/matzehuels/flowboard/pkg/observability
// [buildinfo]: github.com/matzehuels/flowboard/pkg/buildinfo
package pkg
