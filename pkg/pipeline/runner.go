package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/cache"
	"github.com/matzehuels/flowboard/pkg/chart"
	flowio "github.com/matzehuels/flowboard/pkg/io"
	"github.com/matzehuels/flowboard/pkg/layout"
	"github.com/matzehuels/flowboard/pkg/observability"
	"github.com/matzehuels/flowboard/pkg/render/nodelink"
)

// Runner executes pipeline stages with caching and logging.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner as long as they work on different charts.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs import, layout and render on data.
func (r *Runner) Execute(ctx context.Context, data []byte, source string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	importStart := time.Now()
	c, err := r.Import(ctx, data, source, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = c
	result.Stats.ImportTime = time.Since(importStart)
	result.Stats.NodeCount = c.Nodes.Len()
	result.Stats.LinkCount = c.Links.Len()

	layoutStart := time.Now()
	placed, err := r.Layout(ctx, c, opts, false)
	if err != nil {
		return nil, err
	}
	result.Stats.Placed = placed
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.MaxDepth = layout.MaxDepth(c)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// Import decodes a Flow document or chart JSON into a chart. Flow
// documents come back fully laid out; chart JSON keeps whatever
// positions it carries.
func (r *Runner) Import(ctx context.Context, data []byte, source string, opts Options) (*chart.Chart, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, source)
	start := time.Now()

	c, err := Parse(data, source, opts)
	if err != nil {
		hooks.OnImportComplete(ctx, source, 0, 0, time.Since(start), err)
		return nil, err
	}

	duration := time.Since(start)
	hooks.OnImportComplete(ctx, source, c.Nodes.Len(), c.Links.Len(), duration, nil)
	r.Logger.Info("imported flow",
		"source", source,
		"kind", DetectInput(source, data),
		"nodes", c.Nodes.Len(),
		"links", c.Links.Len(),
		"duration", duration)
	return c, nil
}

// Layout places unpositioned nodes, or every node when reset is set.
func (r *Runner) Layout(ctx context.Context, c *chart.Chart, opts Options, reset bool) (int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return 0, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, c.Nodes.Len())
	start := time.Now()

	placed, err := Layout(c, opts, reset)
	duration := time.Since(start)
	hooks.OnLayoutComplete(ctx, placed, duration, err)
	if err != nil {
		return 0, err
	}

	r.Logger.Debug("computed layout",
		"placed", placed,
		"max_depth", layout.MaxDepth(c),
		"reset", reset,
		"duration", duration)
	return placed, nil
}

// Export writes the chart as a Flow document. Unlabeled nodes cannot be
// exported; they are dropped with a warning.
func (r *Runner) Export(ctx context.Context, c *chart.Chart, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, c.Nodes.Len())
	start := time.Now()

	skipped := flowio.Unlabeled(c)
	if len(skipped) > 0 {
		r.Logger.Warn("skipping unlabeled nodes", "ids", skipped)
	}

	var buf bytes.Buffer
	err := flowio.WriteYAML(c, &buf, flowio.ExportOptions{Types: opts.Types})
	duration := time.Since(start)
	pods := c.Nodes.Len() - len(skipped)
	hooks.OnExportComplete(ctx, pods, len(skipped), duration, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("exported flow",
		"pods", pods,
		"bytes", buf.Len(),
		"duration", duration)
	return buf.Bytes(), nil
}

// RenderWithCacheInfo renders the requested formats and reports whether
// the SVG came from the cache. Only SVG is cached; the other formats are
// cheap to regenerate.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, c, opts)
	duration := time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, duration, err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", duration)
	return artifacts, hit, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, bool, error) {
	if !opts.Wants(FormatSVG) {
		artifacts, err := Render(ctx, c, opts)
		return artifacts, false, err
	}

	dotOpts := opts.nodelinkOptions()
	dot := nodelink.ToDOT(c, dotOpts)
	key := cache.Key(FormatSVG, cache.Hash([]byte(dot)), dotOpts.Positions)

	var svg []byte
	hit := false
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			svg, hit = data, true
			observability.Cache().OnCacheHit(ctx, FormatSVG)
		} else {
			observability.Cache().OnCacheMiss(ctx, FormatSVG)
		}
	}

	if svg == nil {
		data, err := nodelink.RenderSVG(ctx, dot, dotOpts)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", FormatSVG, err)
		}
		svg = data
		if err := r.Cache.Set(ctx, key, svg, ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, FormatSVG, len(svg))
		}
	}

	rest := opts
	rest.Formats = nil
	for _, f := range opts.Formats {
		if f != FormatSVG {
			rest.Formats = append(rest.Formats, f)
		}
	}
	artifacts := map[string][]byte{}
	if len(rest.Formats) > 0 {
		var err error
		if artifacts, err = Render(ctx, c, rest); err != nil {
			return nil, false, err
		}
	}
	artifacts[FormatSVG] = svg
	return artifacts, hit, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
