// Package cli implements the flowboard command-line interface.
//
// The commands convert between Jina Flow YAML documents and chart JSON,
// lay charts out on a grid and render them as DOT, SVG or Mermaid. The
// CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - import: Flow YAML to chart JSON
//   - export: chart JSON to Flow YAML, optionally copied to the clipboard
//   - layout: recompute canvas positions in a Flow document
//   - render: DOT, SVG, Mermaid or chart JSON output
//   - validate: parse a flow and print its shape
//   - cache: manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is carried on the CLI and in the command context, and pipeline hooks
// are routed to it.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Imported flow.yml (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnImportStart(_ context.Context, source string) {
	h.logger.Debug("import started", "source", source)
}

func (h *logHooks) OnImportComplete(_ context.Context, source string, nodes, links int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("import failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("import finished", "source", source, "nodes", nodes, "links", links, "duration", d)
}

func (h *logHooks) OnLayoutStart(_ context.Context, nodes int) {
	h.logger.Debug("layout started", "nodes", nodes)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, placed int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "error", err)
		return
	}
	h.logger.Debug("layout finished", "placed", placed, "duration", d)
}

func (h *logHooks) OnExportStart(_ context.Context, nodes int) {
	h.logger.Debug("export started", "nodes", nodes)
}

func (h *logHooks) OnExportComplete(_ context.Context, pods, skipped int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "error", err)
		return
	}
	h.logger.Debug("export finished", "pods", pods, "skipped", skipped, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render finished", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "kind", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "kind", key)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "kind", key, "size", size)
}
