package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/flowboard/pkg/cache"
	"github.com/matzehuels/flowboard/pkg/layout"
	"github.com/matzehuels/flowboard/pkg/render/nodelink"
)

const sample = `
with:
  logserver: true
pods:
  crafter:
    uses: crafter.yml
  encoder:
    uses: encoder.yml
    replicas: 2
  indexer:
    uses: indexer.yml
    needs: [crafter, encoder]
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"mermaid", false},
		{"json", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.OffsetX != layout.DefaultOffsetX || opts.OffsetY != layout.DefaultOffsetY {
		t.Errorf("offsets = %d,%d", opts.OffsetX, opts.OffsetY)
	}
	if opts.LinkColor != "red" {
		t.Errorf("LinkColor = %q, want red", opts.LinkColor)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Types == nil || opts.Logger == nil {
		t.Error("Types and Logger should be set")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}

	bad := Options{OffsetX: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative offset should fail")
	}

	bad = Options{Formats: []string{"pdf"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestDetectInput(t *testing.T) {
	tests := []struct {
		name string
		data string
		want InputKind
	}{
		{"flow.yml", "pods: {}", InputFlow},
		{"flow.YAML", "{}", InputFlow},
		{"chart.json", "pods: {}", InputChart},
		{"-", "  {\"nodes\": {}}", InputChart},
		{"-", "pods:\n  a: {}", InputFlow},
		{"", "", InputFlow},
	}
	for _, tt := range tests {
		if got := DetectInput(tt.name, []byte(tt.data)); got != tt.want {
			t.Errorf("DetectInput(%q, %q) = %s, want %s", tt.name, tt.data, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	c, err := Parse([]byte(sample), "flow.yml", opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Nodes.Len() != 3 {
		t.Errorf("nodes = %d, want 3", c.Nodes.Len())
	}
	if c.Links.Len() != 3 {
		t.Errorf("links = %d, want 3", c.Links.Len())
	}
	n, ok := c.Node("indexer")
	if !ok || n.Position == nil {
		t.Fatal("indexer should be placed")
	}
	// encoder chains to crafter, so indexer sits at depth 2.
	if n.Position.Y != 3*layout.DefaultOffsetY {
		t.Errorf("indexer y = %d, want %d", n.Position.Y, 3*layout.DefaultOffsetY)
	}

	if _, err := Parse([]byte("pods: [a"), "flow.yml", opts); err == nil {
		t.Error("malformed YAML should fail")
	}
	if _, err := Parse([]byte("{"), "chart.json", opts); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestParseIgnoreCanvas(t *testing.T) {
	doc := `
with:
  board:
    canvas:
      a: {x: 900, y: 900}
pods:
  a: {}
`
	opts := Options{IgnoreCanvas: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	c, err := Parse([]byte(doc), "flow.yml", opts)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := c.Node("a")
	if n.Position == nil || n.Position.X == 900 {
		t.Errorf("canvas should be ignored, got %+v", n.Position)
	}
}

func TestLayoutReset(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	c, err := Parse([]byte(sample), "flow.yml", opts)
	if err != nil {
		t.Fatal(err)
	}

	placed, err := Layout(c, opts, false)
	if err != nil {
		t.Fatal(err)
	}
	if placed != 0 {
		t.Errorf("placed = %d, want 0 (already laid out)", placed)
	}

	placed, err = Layout(c, opts, true)
	if err != nil {
		t.Fatal(err)
	}
	if placed != 3 {
		t.Errorf("placed after reset = %d, want 3", placed)
	}
}

func TestRenderTextFormats(t *testing.T) {
	opts := Options{Formats: []string{FormatDOT, FormatMermaid, FormatJSON}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	c, err := Parse([]byte(sample), "flow.yml", opts)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := Render(context.Background(), c, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(artifacts))
	}
	if !strings.HasPrefix(string(artifacts[FormatDOT]), "digraph flow {") {
		t.Errorf("dot output = %q", artifacts[FormatDOT])
	}
	if !strings.HasPrefix(string(artifacts[FormatMermaid]), "graph TD") {
		t.Errorf("mermaid output = %q", artifacts[FormatMermaid])
	}
	if !bytes.Contains(artifacts[FormatJSON], []byte(`"indexer"`)) {
		t.Errorf("json output missing indexer")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	opts := Options{Formats: []string{FormatDOT, FormatJSON}}
	res, err := r.Execute(context.Background(), []byte(sample), "flow.yml", opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.NodeCount != 3 || res.Stats.LinkCount != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", res.Stats.MaxDepth)
	}
	if res.CacheInfo.RenderHit {
		t.Error("render should not hit the null cache")
	}
	if _, ok := res.Artifacts[FormatSVG]; ok {
		t.Error("svg was not requested")
	}
}

func TestRunnerExport(t *testing.T) {
	r := NewRunner(nil, nil)
	ctx := context.Background()

	c, err := r.Import(ctx, []byte(sample), "flow.yml", Options{})
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Export(ctx, c, Options{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	for _, want := range []string{"pods:", "crafter:", "needs:", "canvas:"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestRunnerSVGCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil)
	defer r.Close()
	ctx := context.Background()

	opts := Options{Formats: []string{FormatSVG, FormatDOT}}
	c, err := r.Import(ctx, []byte(sample), "flow.yml", opts)
	if err != nil {
		t.Fatal(err)
	}

	// Seed the cache so the graphviz renderer is never reached.
	dot := nodelink.ToDOT(c, nodelink.Options{})
	key := cache.Key(FormatSVG, cache.Hash([]byte(dot)), false)
	want := []byte("<svg>cached</svg>")
	if err := fc.Set(ctx, key, want, ArtifactTTL); err != nil {
		t.Fatal(err)
	}

	artifacts, hit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		t.Fatalf("RenderWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("expected cache hit")
	}
	if !bytes.Equal(artifacts[FormatSVG], want) {
		t.Errorf("svg = %q, want %q", artifacts[FormatSVG], want)
	}
	if string(artifacts[FormatDOT]) != dot {
		t.Error("dot artifact should match ToDOT output")
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil)
	if _, err := r.Execute(context.Background(), []byte(sample), "flow.yml", Options{Formats: []string{"gif"}}); err == nil {
		t.Error("invalid format should fail")
	}
}
