// Package io converts between Flow documents and charts.
//
// # Overview
//
// A Flow is the YAML pipeline document; a chart is the graph the editor
// works on. [Import] builds a chart from a parsed Flow and [Export] turns
// a chart back into a Flow. The YAML and file helpers ([ReadYAML],
// [ImportYAML], [WriteYAML], [ExportYAML], [Marshal]) wrap both with
// [flow.Parse] and [flow.Encode].
//
// Charts also have a JSON form, the one the browser store keeps: see
// [ReadJSON], [WriteJSON], [ImportJSON] and [ExportJSON].
//
// # Import
//
// Pods are processed in document order. A pod that declares no needs
// depends on the pod written just before it, so a plain list of pods
// forms a chain:
//
//	pods:
//	  crafter: {}
//	  encoder: {}       # needs crafter
//	  indexer:
//	    needs: crafter  # explicit, no chaining
//
// Each parent becomes a needs entry on the node and a link from the
// parent's output port to the node's input port. Positions saved under
// with.board.canvas are restored; every other node is placed on the
// depth grid by [layout.Place].
//
// Import fails fast: a needs entry naming a pod that does not exist is an
// UNKNOWN_NODE error, and a dependency loop is a CYCLIC_DEPENDENCY error.
//
// # Export
//
// Needs are rebuilt from links. A pod with one parent is written with a
// bare needs string, a pod with several gets a list, and a pod with none
// has no needs key. Property values go through the property type registry
// so boolean properties are written as YAML booleans. Node positions are
// saved under with.board.canvas, replacing any earlier board.
//
// Nodes without a label have no pod name and are left out of both the
// pods and the canvas. Needs pointing at them are dropped too.
package io
