// Package flow reads and writes Flow pipeline documents.
//
// # Overview
//
// A Flow document is YAML tagged with a leading !Flow line. It lists the
// pipeline's pods (steps) by name and carries free-form top-level
// metadata under "with", including the editor's saved canvas layout:
//
//	!Flow
//	with:
//	  board:
//	    canvas:
//	      encoder: {x: 250, y: 150}
//	pods:
//	  encoder:
//	    uses: encode.yml
//	  indexer:
//	    needs: encoder
//	    read_only: "true"
//
// # Ordering
//
// Pod order is part of the document's meaning: a pod that does not
// declare "needs" depends on the pod before it. [Parse] therefore walks
// the YAML node tree instead of decoding into Go maps, and [Flow] keeps
// pods in a slice and metadata in ordered maps.
//
// # Needs
//
// "needs" is either a single pod name or a list. [Pod.Needs] is nil
// when the pod does not declare needs (absent, null or empty string),
// and a non-nil empty slice for an explicit empty list.
//
// # Canvas
//
// [Flow.Canvas] extracts with.board.canvas, truncating coordinates to
// integers the way the browser editor does ("10.7" becomes 10).
// Entries that carry no usable coordinate are omitted.
package flow
