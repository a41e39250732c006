package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

func TestCanvas(t *testing.T) {
	doc := `with:
  board:
    canvas:
      a: {x: 10.7, y: "20.9"}
      b: {x: "-3px", y: 4}
      c: {x: abc, y: 1}
      d: {y: 1}
      e: ~
pods: {}
`
	f, err := Parse([]byte(doc))
	require.NoError(t, err)

	canvas, err := f.Canvas()
	require.NoError(t, err)
	assert.Equal(t, Canvas{
		"a": {X: 10, Y: 20},
		"b": {X: -3, Y: 4},
	}, canvas)
}

func TestCanvasAbsent(t *testing.T) {
	f, err := Parse([]byte("with:\n  other: 1\npods: {}\n"))
	require.NoError(t, err)
	canvas, err := f.Canvas()
	require.NoError(t, err)
	assert.Empty(t, canvas)
}

func TestCanvasInvalidBoard(t *testing.T) {
	f, err := Parse([]byte("with:\n  board: nope\n"))
	require.NoError(t, err)
	_, err = f.Canvas()
	assert.Error(t, err)
}

func TestCanvasFromBoard(t *testing.T) {
	f := New()
	c := orderedmap.New[string, Point]()
	c.Set("a", Point{X: 1, Y: 2})
	f.SetCanvas(c)

	canvas, err := f.Canvas()
	require.NoError(t, err)
	assert.Equal(t, Canvas{"a": {X: 1, Y: 2}}, canvas)
}

func TestTruncInt(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{10, 10, true},
		{int64(7), 7, true},
		{10.7, 10, true},
		{-10.7, -10, true},
		{"10.7", 10, true},
		{" 42 ", 42, true},
		{"+5", 5, true},
		{"-", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := truncInt(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("truncInt(%#v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCanvasScalarLookingNames(t *testing.T) {
	doc := `with:
  board:
    canvas:
      1: {x: 10, y: 20}
      true: {x: 1, y: 2}
      null: {x: 3, y: 4}
      1.50: {x: 5, y: 6}
pods:
  1:
    uses: a
  true: {}
  null: {}
  1.50: {}
`
	f, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "true", "null", "1.50"}, f.PodNames())

	canvas, err := f.Canvas()
	require.NoError(t, err)
	assert.Equal(t, Canvas{
		"1":    {X: 10, Y: 20},
		"true": {X: 1, Y: 2},
		"null": {X: 3, Y: 4},
		"1.50": {X: 5, Y: 6},
	}, canvas)
}

func TestCanvasMergeKey(t *testing.T) {
	doc := `with:
  board:
    canvas:
      base: &base {x: 7, y: 8}
      a:
        <<: *base
pods: {}
`
	f, err := Parse([]byte(doc))
	require.NoError(t, err)
	canvas, err := f.Canvas()
	require.NoError(t, err)
	assert.Equal(t, Point{X: 7, Y: 8}, canvas["a"])
}

func TestPointMarshalUnquotedKeys(t *testing.T) {
	data, err := yaml.Marshal(Point{X: 250, Y: 150})
	require.NoError(t, err)
	assert.Equal(t, "x: 250\ny: 150\n", string(data))
}
