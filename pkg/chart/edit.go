package chart

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrInvalidLink is returned by [Chart.Connect] when a link would not run
// from an output port to an input port of a different node.
var ErrInvalidLink = errors.New("invalid link")

// ValidateLink reports whether a link drawn in the editor is acceptable:
// it must leave through an OutPort, enter through an InPort, and join two
// different nodes.
func ValidateLink(from Endpoint, to Endpoint) error {
	if from.PortID != OutPort || to.PortID != InPort {
		return fmt.Errorf("%w: %s.%s -> %s.%s", ErrInvalidLink, from.NodeID, from.PortID, to.NodeID, to.PortID)
	}
	if from.NodeID == to.NodeID {
		return fmt.Errorf("%w: %s links to itself", ErrInvalidLink, from.NodeID)
	}
	return nil
}

// Connect validates and adds a link drawn between two ports.
func (c *Chart) Connect(from, to Endpoint, color string) (*Link, error) {
	if err := ValidateLink(from, to); err != nil {
		return nil, err
	}
	return c.AddLink(from.NodeID, to.NodeID, color)
}

// UpdateNode applies a property-panel edit. The label is replaced and the
// node's properties become props overlaid with newProps; keys whose
// resulting value is empty are removed, as is the reserved "needs" key.
// Key order follows props, then keys only present in newProps.
func (c *Chart) UpdateNode(id, label string, props, newProps *orderedmap.OrderedMap[string, string]) (*Node, error) {
	n, ok := c.Nodes.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	merged := orderedmap.New[string, string]()
	for _, m := range []*orderedmap.OrderedMap[string, string]{props, newProps} {
		if m == nil {
			continue
		}
		for p := m.Oldest(); p != nil; p = p.Next() {
			merged.Set(p.Key, p.Value)
		}
	}

	result := orderedmap.New[string, string]()
	for p := merged.Oldest(); p != nil; p = p.Next() {
		if p.Value == "" || p.Key == "needs" {
			continue
		}
		result.Set(p.Key, p.Value)
	}

	n.Label = label
	n.Properties = result
	return n, nil
}

// Select marks a node or link as selected.
func (c *Chart) Select(kind, id string) error {
	switch kind {
	case SelectNode:
		if _, ok := c.Nodes.Get(id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	case SelectLink:
		if _, ok := c.Links.Get(id); !ok {
			return fmt.Errorf("unknown link: %s", id)
		}
	default:
		return fmt.Errorf("unknown selection type %q", kind)
	}
	c.Selected = Selection{Type: kind, ID: id}
	return nil
}

// ClearSelection drops the current selection and hover state.
func (c *Chart) ClearSelection() {
	c.Selected = Selection{}
	c.Hovered = Selection{}
}

// DeleteSelection removes the selected node, with every link touching it,
// or the selected link, and then clears the selection. It reports whether
// anything was removed.
func (c *Chart) DeleteSelection() bool {
	sel := c.Selected
	c.ClearSelection()

	switch sel.Type {
	case SelectNode:
		return c.RemoveNode(sel.ID) == nil
	case SelectLink:
		if _, ok := c.Links.Get(sel.ID); !ok {
			return false
		}
		c.RemoveLink(sel.ID)
		return true
	}
	return false
}

// Clone returns a deep copy of the chart. Values inside With are shared.
func (c *Chart) Clone() *Chart {
	out := &Chart{
		Offset:   c.Offset,
		Nodes:    orderedmap.New[string, *Node](),
		Links:    orderedmap.New[string, *Link](),
		Selected: c.Selected,
		Hovered:  c.Hovered,
		With:     orderedmap.New[string, any](),
	}
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		out.Nodes.Set(p.Key, p.Value.clone())
	}
	for p := c.Links.Oldest(); p != nil; p = p.Next() {
		l := *p.Value
		out.Links.Set(p.Key, &l)
	}
	if c.With != nil {
		for p := c.With.Oldest(); p != nil; p = p.Next() {
			out.With.Set(p.Key, p.Value)
		}
	}
	return out
}

func (n *Node) clone() *Node {
	out := &Node{
		ID:         n.ID,
		Label:      n.Label,
		Ports:      orderedmap.New[string, Port](),
		Needs:      orderedmap.New[string, bool](),
		Properties: orderedmap.New[string, string](),
	}
	copyInto(out.Ports, n.Ports)
	copyInto(out.Needs, n.Needs)
	copyInto(out.Properties, n.Properties)
	if n.Position != nil {
		pos := *n.Position
		out.Position = &pos
	}
	if n.Depth != nil {
		d := *n.Depth
		out.Depth = &d
	}
	return out
}

func copyInto[V any](dst, src *orderedmap.OrderedMap[string, V]) {
	if src == nil {
		return
	}
	for p := src.Oldest(); p != nil; p = p.Next() {
		dst.Set(p.Key, p.Value)
	}
}
