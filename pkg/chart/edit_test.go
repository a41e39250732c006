package chart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func props(kv ...string) *orderedmap.OrderedMap[string, string] {
	m := orderedmap.New[string, string]()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

func keys(m *orderedmap.OrderedMap[string, string]) []string {
	var out []string
	for p := m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

func TestValidateLink(t *testing.T) {
	tests := []struct {
		name string
		from Endpoint
		to   Endpoint
		ok   bool
	}{
		{"out to in", Endpoint{"a", OutPort}, Endpoint{"b", InPort}, true},
		{"in to in", Endpoint{"a", InPort}, Endpoint{"b", InPort}, false},
		{"out to out", Endpoint{"a", OutPort}, Endpoint{"b", OutPort}, false},
		{"self", Endpoint{"a", OutPort}, Endpoint{"a", InPort}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLink(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidLink))
			}
		})
	}
}

func TestConnect(t *testing.T) {
	c := buildChart(t, "a", "b")

	_, err := c.Connect(Endpoint{"a", OutPort}, Endpoint{"b", InPort}, "blue")
	require.NoError(t, err)
	l, ok := c.Links.Get("a-to-b")
	require.True(t, ok)
	assert.Equal(t, "blue", l.Color)

	_, err = c.Connect(Endpoint{"b", InPort}, Endpoint{"a", OutPort}, "")
	assert.True(t, errors.Is(err, ErrInvalidLink))
	assert.Equal(t, 1, c.Links.Len())
}

func TestUpdateNode(t *testing.T) {
	c := buildChart(t, "encode")

	n, err := c.UpdateNode("encode", "encoder",
		props("uses", "Encoder", "replicas", "2", "host", "remote"),
		props("replicas", "", "parallel", "4", "needs", "gateway", "host", "local"))
	require.NoError(t, err)

	assert.Equal(t, "encoder", n.Label)
	assert.Equal(t, "encode", n.ID)
	assert.Equal(t, []string{"uses", "host", "parallel"}, keys(n.Properties))
	host, _ := n.Properties.Get("host")
	assert.Equal(t, "local", host)

	_, err = c.UpdateNode("missing", "x", nil, nil)
	assert.True(t, errors.Is(err, ErrUnknownNode))
}

func TestUpdateNodeNilMaps(t *testing.T) {
	c := buildChart(t, "a")
	n, err := c.UpdateNode("a", "a", nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n.Properties.Len())
}

func TestDeleteSelectionNode(t *testing.T) {
	c := buildChart(t, "a", "b")
	_, _ = c.AddLink("a", "b", "")
	require.NoError(t, c.Select(SelectNode, "a"))

	assert.True(t, c.DeleteSelection())

	assert.Equal(t, []string{"b"}, c.NodeIDs())
	assert.Zero(t, c.Links.Len())
	b, _ := c.Node("b")
	assert.Empty(t, b.Parents())
	assert.True(t, c.Selected.IsZero())
}

func TestDeleteSelectionLink(t *testing.T) {
	c := buildChart(t, "a", "b")
	_, _ = c.AddLink("a", "b", "")
	require.NoError(t, c.Select(SelectLink, "a-to-b"))

	assert.True(t, c.DeleteSelection())

	assert.Equal(t, 2, c.Nodes.Len())
	assert.Zero(t, c.Links.Len())
	b, _ := c.Node("b")
	assert.Empty(t, b.Parents())
}

func TestDeleteSelectionNothing(t *testing.T) {
	c := buildChart(t, "a")
	assert.False(t, c.DeleteSelection())
	assert.Equal(t, 1, c.Nodes.Len())
}

func TestSelect(t *testing.T) {
	c := buildChart(t, "a")
	assert.Error(t, c.Select(SelectNode, "missing"))
	assert.Error(t, c.Select(SelectLink, "a-to-a"))
	assert.Error(t, c.Select("port", "a"))

	require.NoError(t, c.Select(SelectNode, "a"))
	c.Hovered = Selection{Type: SelectNode, ID: "a"}
	c.ClearSelection()
	assert.True(t, c.Selected.IsZero())
	assert.True(t, c.Hovered.IsZero())
}

func TestCloneIsDeep(t *testing.T) {
	c := buildChart(t, "a", "b")
	_, _ = c.AddLink("a", "b", "red")
	a, _ := c.Node("a")
	a.Position = &Position{X: 1, Y: 2}
	a.Properties.Set("uses", "X")
	c.With.Set("name", "flow")

	cp := c.Clone()
	ca, _ := cp.Node("a")
	ca.Position.X = 99
	ca.Properties.Set("uses", "Y")
	cb, _ := cp.Node("b")
	cb.Needs.Delete("a")
	cl, _ := cp.Links.Get("a-to-b")
	cl.Color = "blue"
	cp.With.Set("name", "other")

	assert.Equal(t, 1, a.Position.X)
	uses, _ := a.Properties.Get("uses")
	assert.Equal(t, "X", uses)
	b, _ := c.Node("b")
	assert.Equal(t, []string{"a"}, b.Parents())
	l, _ := c.Links.Get("a-to-b")
	assert.Equal(t, "red", l.Color)
	name, _ := c.With.Get("name")
	assert.Equal(t, "flow", name)
}
