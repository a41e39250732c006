package chart

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrInvalidNodeID is returned by [Chart.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Chart.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Chart.AddLink] when the parent
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Chart.AddLink] when the child
	// node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownNode is returned when an operation names a node that is
	// not in the chart, including needs entries that reference a missing node.
	ErrUnknownNode = errors.New("unknown node")
)

// Fixed port identifiers. Every node carries exactly these two ports.
const (
	InPort  = "inPort"
	OutPort = "outPort"
)

// Port types.
const (
	PortInput  = "input"
	PortOutput = "output"
)

// Selection kinds.
const (
	SelectNode = "node"
	SelectLink = "link"
)

// DefaultLinkColor is the stroke color of imported links.
const DefaultLinkColor = "red"

// Position is a point on the canvas.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Port is a connection point on a node.
type Port struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Endpoint identifies one end of a link.
type Endpoint struct {
	NodeID string `json:"nodeId"`
	PortID string `json:"portId"`
}

// Selection is the currently selected or hovered item. The zero value
// selects nothing.
type Selection struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool { return s.Type == "" && s.ID == "" }

// Node is one pod on the canvas.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	Ports *orderedmap.OrderedMap[string, Port] `json:"ports"`

	// Needs holds parent node IDs; values are always true.
	Needs *orderedmap.OrderedMap[string, bool] `json:"needs"`

	Properties *orderedmap.OrderedMap[string, string] `json:"properties"`

	// Position is nil until the node has been placed.
	Position *Position `json:"position,omitempty"`

	// Depth is the longest needs-chain distance from a root, nil until computed.
	Depth *int `json:"depth,omitempty"`
}

// Link is a dependency edge from a parent's OutPort to a child's InPort.
type Link struct {
	ID    string   `json:"id"`
	Color string   `json:"color,omitempty"`
	From  Endpoint `json:"from"`
	To    Endpoint `json:"to"`
}

// Chart is the editable graph.
type Chart struct {
	Offset   Position                             `json:"offset"`
	Nodes    *orderedmap.OrderedMap[string, *Node] `json:"nodes"`
	Links    *orderedmap.OrderedMap[string, *Link] `json:"links"`
	Selected Selection                            `json:"selected"`
	Hovered  Selection                            `json:"hovered"`

	// With carries the Flow's passthrough "with" metadata.
	With *orderedmap.OrderedMap[string, any] `json:"with,omitempty"`
}

// New returns an empty chart at the origin.
func New() *Chart {
	return &Chart{
		Nodes: orderedmap.New[string, *Node](),
		Links: orderedmap.New[string, *Link](),
		With:  orderedmap.New[string, any](),
	}
}

// NewPodNode returns a node for the named pod with the two fixed ports
// and no needs or properties.
func NewPodNode(id string) *Node {
	ports := orderedmap.New[string, Port]()
	ports.Set(InPort, Port{ID: InPort, Type: PortInput})
	ports.Set(OutPort, Port{ID: OutPort, Type: PortOutput})
	return &Node{
		ID:         id,
		Label:      id,
		Ports:      ports,
		Needs:      orderedmap.New[string, bool](),
		Properties: orderedmap.New[string, string](),
	}
}

// NewNode returns a node for a pod dropped onto the canvas. Its ID is a
// fresh UUID so it cannot collide with existing pod names; the label is
// what the pod is exported as.
func NewNode(label string, pos Position) *Node {
	n := NewPodNode(uuid.NewString())
	n.Label = label
	n.Position = &pos
	return n
}

// LinkID returns the identifier of the link from one node to another.
func LinkID(from, to string) string {
	return fmt.Sprintf("%s-to-%s", from, to)
}

// Parents returns the node's needs in insertion order.
func (n *Node) Parents() []string {
	parents := make([]string, 0, n.Needs.Len())
	for p := n.Needs.Oldest(); p != nil; p = p.Next() {
		parents = append(parents, p.Key)
	}
	return parents
}

// Node returns the node with the given ID.
func (c *Chart) Node(id string) (*Node, bool) {
	return c.Nodes.Get(id)
}

// NodeIDs returns node IDs in insertion order.
func (c *Chart) NodeIDs() []string {
	ids := make([]string, 0, c.Nodes.Len())
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		ids = append(ids, p.Key)
	}
	return ids
}

// AddNode appends a node. The node's ports, needs and properties maps
// are initialized if nil.
func (c *Chart) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := c.Nodes.Get(n.ID); exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if n.Ports == nil {
		n.Ports = NewPodNode(n.ID).Ports
	}
	if n.Needs == nil {
		n.Needs = orderedmap.New[string, bool]()
	}
	if n.Properties == nil {
		n.Properties = orderedmap.New[string, string]()
	}
	c.Nodes.Set(n.ID, n)
	return nil
}

// AddLink connects from's OutPort to to's InPort and records from in
// to's needs. Adding an existing link only updates its color.
func (c *Chart) AddLink(from, to, color string) (*Link, error) {
	if _, ok := c.Nodes.Get(from); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSourceNode, from)
	}
	child, ok := c.Nodes.Get(to)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTargetNode, to)
	}

	id := LinkID(from, to)
	link := &Link{
		ID:    id,
		Color: color,
		From:  Endpoint{NodeID: from, PortID: OutPort},
		To:    Endpoint{NodeID: to, PortID: InPort},
	}
	c.Links.Set(id, link)
	child.Needs.Set(from, true)
	return link, nil
}

// RemoveLink deletes a link and the matching needs entry. Removing a
// link that does not exist is a no-op.
func (c *Chart) RemoveLink(id string) {
	link, ok := c.Links.Delete(id)
	if !ok {
		return
	}
	if child, ok := c.Nodes.Get(link.To.NodeID); ok {
		child.Needs.Delete(link.From.NodeID)
	}
}

// RemoveNode deletes a node together with every link that touches it.
func (c *Chart) RemoveNode(id string) error {
	if _, ok := c.Nodes.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	var touching []string
	for p := c.Links.Oldest(); p != nil; p = p.Next() {
		if p.Value.From.NodeID == id || p.Value.To.NodeID == id {
			touching = append(touching, p.Key)
		}
	}
	for _, linkID := range touching {
		c.RemoveLink(linkID)
	}
	c.Nodes.Delete(id)
	return nil
}

// SyncNeeds rebuilds every node's needs set from the links, in link order.
func (c *Chart) SyncNeeds() {
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		p.Value.Needs = orderedmap.New[string, bool]()
	}
	for p := c.Links.Oldest(); p != nil; p = p.Next() {
		if child, ok := c.Nodes.Get(p.Value.To.NodeID); ok {
			child.Needs.Set(p.Value.From.NodeID, true)
		}
	}
}

// Validate checks that every needs entry and link endpoint names an
// existing node and that needs and links agree.
func (c *Chart) Validate() error {
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		for _, parent := range p.Value.Parents() {
			if _, ok := c.Nodes.Get(parent); !ok {
				return fmt.Errorf("%w: %s needs %s", ErrUnknownNode, p.Key, parent)
			}
			if _, ok := c.Links.Get(LinkID(parent, p.Key)); !ok {
				return fmt.Errorf("missing link %s", LinkID(parent, p.Key))
			}
		}
	}
	for p := c.Links.Oldest(); p != nil; p = p.Next() {
		l := p.Value
		if _, ok := c.Nodes.Get(l.From.NodeID); !ok {
			return fmt.Errorf("%w: link %s from %s", ErrUnknownNode, l.ID, l.From.NodeID)
		}
		if _, ok := c.Nodes.Get(l.To.NodeID); !ok {
			return fmt.Errorf("%w: link %s to %s", ErrUnknownNode, l.ID, l.To.NodeID)
		}
	}
	return nil
}
