package pipeline

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/matzehuels/flowboard/pkg/chart"
	"github.com/matzehuels/flowboard/pkg/flow"
	flowio "github.com/matzehuels/flowboard/pkg/io"
)

// InputKind identifies what a source document contains.
type InputKind string

const (
	// InputFlow is a Flow YAML document.
	InputFlow InputKind = "flow"

	// InputChart is a chart in its JSON form.
	InputChart InputKind = "chart"
)

// DetectInput decides whether data is a Flow document or chart JSON. A
// .json extension means chart JSON, a .yml or .yaml extension means Flow;
// otherwise a leading '{' means chart JSON.
func DetectInput(name string, data []byte) InputKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return InputChart
	case ".yml", ".yaml":
		return InputFlow
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return InputChart
	}
	return InputFlow
}

// Parse decodes data into a chart without laying it out. Flow documents
// are imported with the saved canvas unless opts.IgnoreCanvas is set.
func Parse(data []byte, name string, opts Options) (*chart.Chart, error) {
	if DetectInput(name, data) == InputChart {
		return flowio.ReadJSON(bytes.NewReader(data))
	}

	f, err := flow.Parse(data)
	if err != nil {
		return nil, err
	}
	var canvas flow.Canvas
	if !opts.IgnoreCanvas {
		if canvas, err = f.Canvas(); err != nil {
			return nil, err
		}
	}
	return flowio.Import(f, canvas, flowio.ImportOptions{
		Offsets:   opts.Offsets(),
		LinkColor: opts.LinkColor,
	})
}
