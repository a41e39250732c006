// Package chart provides the in-memory graph a Flow is edited as.
//
// # Overview
//
// A [Chart] is the shape the browser flowchart widget works on: nodes
// keyed by id, links keyed by id, a pan offset, and transient selection
// state. Every node has exactly two ports, [InPort] and [OutPort]; a
// link always runs from a parent's OutPort to a child's InPort and is
// identified as "<from>-to-<to>" (see [LinkID]).
//
// A node's Needs set mirrors its incoming links. [Chart.AddLink] and
// [Chart.RemoveLink] keep both in step.
//
// # Ordering
//
// Nodes, links, properties and needs are held in insertion-ordered maps
// because order carries meaning on export: pods are written in node
// order and a node's needs list follows link order. The ordered maps
// keep that order through encoding/json as well.
//
// # Editing
//
// The editor never mutates a chart in place; each edit works on a copy
// ([Chart.Clone]) that then replaces the previous value. [Chart.UpdateNode],
// [Chart.DeleteSelection] and [Chart.ClearSelection] implement the
// editor's actions on top of that.
//
// # Concurrency
//
// Charts are not safe for concurrent use.
package chart
