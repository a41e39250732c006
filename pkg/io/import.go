package io

import (
	"errors"
	"fmt"
	"io"

	"github.com/matzehuels/flowboard/pkg/chart"
	fberrors "github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/layout"
)

// ImportOptions configures [Import].
type ImportOptions struct {
	// Offsets is the grid spacing for nodes without a saved position.
	// Zero fields fall back to the layout defaults.
	Offsets layout.Offsets

	// LinkColor is the stroke color given to every link. Defaults to
	// chart.DefaultLinkColor.
	LinkColor string

	// IgnoreCanvas discards saved positions so every node is laid out.
	// Only consulted by ReadYAML and ImportYAML.
	IgnoreCanvas bool
}

func (o ImportOptions) linkColor() string {
	if o.LinkColor == "" {
		return chart.DefaultLinkColor
	}
	return o.LinkColor
}

// Import builds a chart from a Flow. canvas may be nil.
func Import(f *flow.Flow, canvas flow.Canvas, opts ImportOptions) (*chart.Chart, error) {
	c := chart.New()
	if f.With != nil {
		for p := f.With.Oldest(); p != nil; p = p.Next() {
			c.With.Set(p.Key, p.Value)
		}
	}

	for _, pod := range f.Pods {
		if err := fberrors.ValidateName(pod.Name); err != nil {
			return nil, err
		}
		n := chart.NewPodNode(pod.Name)
		if pod.Properties != nil {
			for p := pod.Properties.Oldest(); p != nil; p = p.Next() {
				if p.Key == flow.NeedsKey {
					continue
				}
				n.Properties.Set(p.Key, stringify(p.Value))
			}
		}
		if pt, ok := canvas[pod.Name]; ok {
			n.Position = &chart.Position{X: pt.X, Y: pt.Y}
		}
		if err := c.AddNode(n); err != nil {
			return nil, fberrors.Wrap(fberrors.ErrCodeInvalidInput, err, "pod %q", pod.Name)
		}
	}

	prev := ""
	for _, pod := range f.Pods {
		needs := pod.Needs
		if needs == nil && prev != "" {
			needs = []string{prev}
		}
		for _, parent := range needs {
			if _, err := c.AddLink(parent, pod.Name, opts.linkColor()); err != nil {
				if errors.Is(err, chart.ErrUnknownSourceNode) {
					return nil, fberrors.Wrap(fberrors.ErrCodeUnknownNode, chart.ErrUnknownNode,
						"pod %q needs unknown pod %q", pod.Name, parent)
				}
				return nil, err
			}
		}
		prev = pod.Name
	}

	if _, err := layout.Place(c, opts.Offsets); err != nil {
		return nil, err
	}
	return c, nil
}

// stringify renders a property value the way it reads in YAML.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	return fmt.Sprint(v)
}

// ReadYAML parses a Flow document from r and imports it, restoring saved
// positions unless opts.IgnoreCanvas is set.
func ReadYAML(r io.Reader, opts ImportOptions) (*chart.Chart, error) {
	f, err := flow.Read(r)
	if err != nil {
		return nil, err
	}
	return importFlow(f, opts)
}

// ImportYAML reads a Flow file at path and imports it.
func ImportYAML(path string, opts ImportOptions) (*chart.Chart, error) {
	f, err := flow.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return importFlow(f, opts)
}

func importFlow(f *flow.Flow, opts ImportOptions) (*chart.Chart, error) {
	var canvas flow.Canvas
	if !opts.IgnoreCanvas {
		var err error
		if canvas, err = f.Canvas(); err != nil {
			return nil, err
		}
	}
	return Import(f, canvas, opts)
}
