package io

import (
	"bytes"
	"io"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/flowboard/pkg/chart"
	fberrors "github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/proptype"
)

// ExportOptions configures [Export].
type ExportOptions struct {
	// Types decodes property values. A nil registry writes every value
	// as a string.
	Types *proptype.Registry
}

// Export converts a chart to a Flow. Pods follow node order; a node's
// needs follow link order.
func Export(c *chart.Chart, opts ExportOptions) *flow.Flow {
	neededBy := make(map[string][]string)
	for p := c.Links.Oldest(); p != nil; p = p.Next() {
		l := p.Value
		neededBy[l.To.NodeID] = append(neededBy[l.To.NodeID], l.From.NodeID)
	}

	f := flow.New()
	if c.With != nil {
		for p := c.With.Oldest(); p != nil; p = p.Next() {
			f.With.Set(p.Key, p.Value)
		}
	}

	canvas := orderedmap.New[string, flow.Point]()
	index := make(map[string]int)
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		n := p.Value
		if n.Label == "" {
			continue
		}

		pod := flow.NewPod(n.Label)
		for prop := n.Properties.Oldest(); prop != nil; prop = prop.Next() {
			if prop.Key == flow.NeedsKey {
				continue
			}
			pod.Properties.Set(prop.Key, opts.Types.Decode(prop.Key, prop.Value))
		}
		for _, parent := range neededBy[p.Key] {
			if label := labelOf(c, parent); label != "" {
				pod.Needs = append(pod.Needs, label)
			}
		}

		// A repeated label overwrites the earlier pod in place.
		if i, ok := index[n.Label]; ok {
			f.Pods[i] = pod
		} else {
			index[n.Label] = len(f.Pods)
			f.Pods = append(f.Pods, pod)
		}

		if n.Position != nil {
			canvas.Set(n.Label, flow.Point{X: n.Position.X, Y: n.Position.Y})
		}
	}

	f.SetCanvas(canvas)
	return f
}

func labelOf(c *chart.Chart, id string) string {
	if n, ok := c.Nodes.Get(id); ok {
		return n.Label
	}
	return ""
}

// Unlabeled returns the IDs of nodes that [Export] leaves out.
func Unlabeled(c *chart.Chart) []string {
	var ids []string
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		if p.Value.Label == "" {
			ids = append(ids, p.Key)
		}
	}
	return ids
}

// Marshal exports the chart and encodes it as Flow YAML.
func Marshal(c *chart.Chart, opts ExportOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteYAML(c, &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteYAML exports the chart and writes the Flow YAML to w.
func WriteYAML(c *chart.Chart, w io.Writer, opts ExportOptions) error {
	if err := flow.Encode(w, Export(c, opts)); err != nil {
		return fberrors.Wrap(fberrors.ErrCodeInternal, err, "encode flow")
	}
	return nil
}

// ExportYAML writes the chart as a Flow file at path.
func ExportYAML(c *chart.Chart, path string, opts ExportOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fberrors.Wrap(fberrors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := WriteYAML(c, f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
