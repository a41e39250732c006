package flow

import (
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowboard/pkg/errors"
)

type boardSection struct {
	Canvas map[string]canvasEntry `mapstructure:"canvas"`
}

type canvasEntry struct {
	X any `mapstructure:"x"`
	Y any `mapstructure:"y"`
}

// Canvas returns the saved positions stored under with.board.canvas.
// It returns an empty canvas if the document has none, and an
// INVALID_INPUT error if the board section is not a mapping.
func (f *Flow) Canvas() (Canvas, error) {
	canvas := Canvas{}
	if f.With == nil {
		return canvas, nil
	}
	raw, ok := f.With.Get(BoardKey)
	if !ok || raw == nil {
		return canvas, nil
	}
	if b, ok := raw.(Board); ok {
		for p := b.Canvas.Oldest(); p != nil; p = p.Next() {
			canvas[p.Key] = p.Value
		}
		return canvas, nil
	}

	var board boardSection
	if err := mapstructure.Decode(raw, &board); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s.%s", WithKey, BoardKey)
	}
	for name, e := range board.Canvas {
		x, okX := truncInt(e.X)
		y, okY := truncInt(e.Y)
		if okX && okY {
			canvas[name] = Point{X: x, Y: y}
		}
	}
	return canvas, nil
}

// Board is the editor state written under with.board on export.
// Canvas keeps node order so the output is stable.
type Board struct {
	Canvas *orderedmap.OrderedMap[string, Point]
}

// MarshalYAML writes the board as a block mapping with ordered canvas entries.
func (b Board) MarshalYAML() (any, error) {
	canvas := mappingNode()
	if b.Canvas != nil {
		for p := b.Canvas.Oldest(); p != nil; p = p.Next() {
			canvas.Content = append(canvas.Content, keyNode(p.Key), p.Value.node())
		}
	}
	board := mappingNode()
	board.Content = []*yaml.Node{keyNode(CanvasKey), canvas}
	return board, nil
}

// MarshalYAML writes the point as {x, y} with both keys unquoted.
func (p Point) MarshalYAML() (any, error) {
	return p.node(), nil
}

func (p Point) node() *yaml.Node {
	n := mappingNode()
	n.Content = []*yaml.Node{
		plainString("x"), intNode(p.X),
		plainString("y"), intNode(p.Y),
	}
	return n
}

// plainString is an unquoted string scalar. The encoder would quote a
// bare "y" as a YAML 1.1 boolean.
func plainString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

// SetCanvas stores canvas as the flow's board, replacing any previous
// board in place so the key keeps its position under "with".
func (f *Flow) SetCanvas(canvas *orderedmap.OrderedMap[string, Point]) {
	if f.With == nil {
		f.With = orderedmap.New[string, any]()
	}
	f.With.Set(BoardKey, Board{Canvas: canvas})
}

// truncInt converts a loosely typed coordinate to an integer, keeping
// only the leading integer part of strings and truncating floats.
func truncInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		return parseIntPrefix(n)
	}
	return 0, false
}

func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
