package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	fberrors "github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/pipeline"
)

// extensions maps render formats to output file extensions. Chart JSON
// gets a double extension so rendering a chart.json never overwrites it.
var extensions = map[string]string{
	pipeline.FormatDOT:     ".dot",
	pipeline.FormatSVG:     ".svg",
	pipeline.FormatMermaid: ".mmd",
	pipeline.FormatJSON:    ".chart.json",
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file (single format) or base path
	formats   []string // dot, svg, mermaid, json
	detailed  bool     // show depth and properties in node labels
	positions bool     // pin nodes to their canvas positions
	noCache   bool     // skip the svg cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [flow.yml|chart.json]",
		Short: "Render a flow as DOT, SVG, Mermaid or chart JSON",
		Long: `Render a flow as DOT, SVG, Mermaid or chart JSON.

The input may be a Flow document or chart JSON. SVG output is produced by
Graphviz and cached locally; pass --no-cache to render it again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, mermaid, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show depth and properties in node labels")
	cmd.Flags().BoolVar(&opts.positions, "positions", false, "pin nodes to their canvas positions")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts) error {
	opts, err := c.options()
	if err != nil {
		return err
	}
	opts.Formats = ro.formats
	opts.Detailed = ro.detailed
	opts.Positions = ro.positions
	opts.Refresh = ro.noCache

	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ch, err := runner.Import(ctx, data, input, opts)
	if err != nil {
		c.printError("Render failed: %s", fberrors.UserMessage(err))
		return err
	}

	var spin *spinner
	if opts.Wants(pipeline.FormatSVG) {
		spin = startSpinner(ctx, c.errOut, "Rendering svg...")
	}
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, ch, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		c.printError("Render failed: %s", fberrors.UserMessage(err))
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(ro.output, input, ro.formats)
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	c.printSuccess("Render complete")
	for _, f := range formats {
		path := paths[f]
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.printFile(path)
	}
	c.printStats(ch.Nodes.Len(), ch.Links.Len(), cached)
	return nil
}

// outputPaths decides where each format is written. A single format goes
// to output verbatim when given; otherwise every format is written next
// to basePath(output, input) with its own extension.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + extensions[f]
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a known format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range extensions {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
