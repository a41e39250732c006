package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flowboard/pkg/chart"
	fberrors "github.com/matzehuels/flowboard/pkg/errors"
)

// ReadJSON decodes a chart from its JSON form.
//
// Links are authoritative: needs sets are rebuilt from them, since the
// browser widget does not keep needs in step when links are drawn or
// removed. Missing ports, needs and property maps are filled in. A link
// whose endpoint is not a node is an UNKNOWN_NODE error.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*chart.Chart, error) {
	c := chart.New()
	if err := json.NewDecoder(r).Decode(c); err != nil {
		return nil, fberrors.Wrap(fberrors.ErrCodeInvalidFormat, err, "decode chart")
	}
	if err := normalize(c); err != nil {
		return nil, fberrors.Wrap(fberrors.ErrCodeInvalidFormat, err, "decode chart")
	}
	c.SyncNeeds()
	if err := c.Validate(); err != nil {
		return nil, fberrors.Wrap(fberrors.ErrCodeUnknownNode, err, "invalid chart")
	}
	return c, nil
}

// ImportJSON reads a chart JSON file at path.
func ImportJSON(path string) (*chart.Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fberrors.Wrap(fberrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes the chart as indented JSON, keeping node, link and
// property order.
func WriteJSON(c *chart.Chart, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the chart to a JSON file at path.
func ExportJSON(c *chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(c, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// normalize fills maps that were null or absent in a decoded chart.
func normalize(c *chart.Chart) error {
	if c.Nodes == nil {
		c.Nodes = chart.New().Nodes
	}
	if c.Links == nil {
		c.Links = chart.New().Links
	}
	if c.With == nil {
		c.With = chart.New().With
	}
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		n := p.Value
		if n == nil {
			return fmt.Errorf("node %s is null", p.Key)
		}
		if n.ID == "" {
			n.ID = p.Key
		}
		base := chart.NewPodNode(n.ID)
		if n.Ports == nil || n.Ports.Len() == 0 {
			n.Ports = base.Ports
		}
		if n.Needs == nil {
			n.Needs = base.Needs
		}
		if n.Properties == nil {
			n.Properties = base.Properties
		}
	}
	for p := c.Links.Oldest(); p != nil; p = p.Next() {
		if p.Value == nil {
			return fmt.Errorf("link %s is null", p.Key)
		}
		if p.Value.ID == "" {
			p.Value.ID = p.Key
		}
	}
	return nil
}
