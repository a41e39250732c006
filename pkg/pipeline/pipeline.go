// Package pipeline runs the flowboard stages: import, layout, export and
// render.
//
// The CLI drives every command through a [Runner] so that logging, hooks
// and caching behave the same everywhere.
//
// # Stages
//
//  1. Import: parse a Flow document (or a chart JSON file) into a chart
//  2. Layout: place nodes that have no canvas position
//  3. Export: write the chart back as a Flow document
//  4. Render: produce DOT, SVG, Mermaid or chart JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, data, "flow.yml", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	c, err := runner.Import(ctx, data, "flow.yml", opts)
//	yml, err := runner.Export(ctx, c, opts)
//	artifacts, err := runner.Render(ctx, c, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/chart"
	"github.com/matzehuels/flowboard/pkg/layout"
	"github.com/matzehuels/flowboard/pkg/proptype"
)

// ArtifactTTL is how long rendered SVG stays in the cache.
const ArtifactTTL = 7 * 24 * time.Hour

// Format constants for render outputs.
const (
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatMermaid = "mermaid"
	FormatJSON    = "json"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT:     true,
	FormatSVG:     true,
	FormatMermaid: true,
	FormatJSON:    true,
}

// formatList is ValidFormats in display order.
var formatList = []string{FormatDOT, FormatSVG, FormatMermaid, FormatJSON}

// Options configures every stage. Zero values take the defaults applied
// by [Options.ValidateAndSetDefaults].
type Options struct {
	// Import and layout options
	OffsetX      int    `json:"offset_x,omitempty"`
	OffsetY      int    `json:"offset_y,omitempty"`
	LinkColor    string `json:"link_color,omitempty"`
	IgnoreCanvas bool   `json:"ignore_canvas,omitempty"`

	// Export options
	Types *proptype.Registry `json:"-"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	Positions bool     `json:"positions,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"` // bypass the render cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the imported and laid out chart.
	Chart *chart.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	MaxDepth   int
	Placed     int
	ImportTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether the SVG came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(formatList, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OffsetX < 0 || o.OffsetY < 0 {
		return fmt.Errorf("offsets must not be negative (got %d, %d)", o.OffsetX, o.OffsetY)
	}
	o.SetImportDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetImportDefaults sets default values for import and layout.
func (o *Options) SetImportDefaults() {
	if o.OffsetX == 0 {
		o.OffsetX = layout.DefaultOffsetX
	}
	if o.OffsetY == 0 {
		o.OffsetY = layout.DefaultOffsetY
	}
	if o.LinkColor == "" {
		o.LinkColor = chart.DefaultLinkColor
	}
	if o.Types == nil {
		o.Types = proptype.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Offsets returns the layout grid spacing.
func (o *Options) Offsets() layout.Offsets {
	return layout.Offsets{X: o.OffsetX, Y: o.OffsetY}
}

// Wants reports whether format is among the requested render formats.
func (o *Options) Wants(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
