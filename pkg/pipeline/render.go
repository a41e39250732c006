package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/flowboard/pkg/chart"
	flowio "github.com/matzehuels/flowboard/pkg/io"
	"github.com/matzehuels/flowboard/pkg/render/mermaid"
	"github.com/matzehuels/flowboard/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	dotOpts := opts.nodelinkOptions()
	dot := nodelink.ToDOT(c, dotOpts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, c, dot, format, dotOpts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, c *chart.Chart, dot, format string, dotOpts nodelink.Options) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot, dotOpts)
	case FormatMermaid:
		return []byte(mermaid.Generate(c)), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := flowio.WriteJSON(c, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func (o *Options) nodelinkOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed, Positions: o.Positions}
}
