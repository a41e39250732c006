package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fberrors "github.com/matzehuels/flowboard/pkg/errors"
)

func TestJSONRoundTripKeepsOrder(t *testing.T) {
	c := importDoc(t, `
with:
  logserver: "true"
pods:
  zeta:
    uses: Z
    replicas: 2
  alpha:
    needs: []
  mid:
    needs: [zeta, alpha]
`)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(c, &buf))
	out := buf.String()
	assert.Less(t, strings.Index(out, `"zeta"`), strings.Index(out, `"alpha"`))
	assert.Less(t, strings.Index(out, `"uses"`), strings.Index(out, `"replicas"`))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, got.NodeIDs())
	assert.Equal(t, []string{"zeta", "alpha"}, parents(t, got, "mid"))
	assert.Equal(t, position(t, c, "mid"), position(t, got, "mid"))
	n, _ := got.Node("zeta")
	assert.Equal(t, 2, n.Ports.Len())
	v, _ := got.With.Get("logserver")
	assert.Equal(t, "true", v)
}

func TestReadJSONFillsMissingFields(t *testing.T) {
	doc := `{
  "offset": {"x": 0, "y": 0},
  "nodes": {
    "a": {"label": "a"},
    "b": {"label": "b", "needs": {"gone": true}}
  },
  "links": {
    "a-to-b": {"from": {"nodeId": "a", "portId": "outPort"}, "to": {"nodeId": "b", "portId": "inPort"}}
  }
}`
	c, err := ReadJSON(strings.NewReader(doc))
	require.NoError(t, err)

	a, _ := c.Node("a")
	assert.Equal(t, "a", a.ID)
	assert.Equal(t, 2, a.Ports.Len())
	assert.Nil(t, a.Position)
	assert.Equal(t, []string{"a"}, parents(t, c, "b"))
	l, _ := c.Links.Get("a-to-b")
	assert.Equal(t, "a-to-b", l.ID)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code fberrors.Code
	}{
		{"syntax", `{"nodes":`, fberrors.ErrCodeInvalidFormat},
		{"null node", `{"nodes": {"a": null}}`, fberrors.ErrCodeInvalidFormat},
		{"dangling link", `{"nodes": {"a": {}}, "links": {"a-to-b": {"from": {"nodeId": "a"}, "to": {"nodeId": "b"}}}}`, fberrors.ErrCodeUnknownNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.code, fberrors.GetCode(err))
		})
	}
}

func TestJSONFile(t *testing.T) {
	c := importDoc(t, "pods:\n  a: {}\n  b: {}\n")
	path := filepath.Join(t.TempDir(), "chart.json")

	require.NoError(t, ExportJSON(c, path))
	got, err := ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, c.NodeIDs(), got.NodeIDs())

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, fberrors.Is(err, fberrors.ErrCodeFileNotFound))
}

func TestJSONThenExport(t *testing.T) {
	c := importDoc(t, "pods:\n  a: {}\n  b:\n    read_only: \"true\"\n")
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(c, &buf))
	got, err := ReadJSON(&buf)
	require.NoError(t, err)

	pod, ok := Export(got, boolTypes()).Pod("b")
	require.True(t, ok)
	ro, _ := pod.Properties.Get("read_only")
	assert.Equal(t, true, ro)
	assert.Equal(t, []string{"a"}, pod.Needs)
}
