package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/flowboard/pkg/chart"
)

func sample(t *testing.T) *chart.Chart {
	t.Helper()
	c := chart.New()
	for i, id := range []string{"gateway", "encode", "index"} {
		n := chart.NewPodNode(id)
		d := i
		n.Depth = &d
		n.Position = &chart.Position{X: 250, Y: 150 * (i + 1)}
		if err := c.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	enc, _ := c.Node("encode")
	enc.Properties.Set("uses", "Encoder")
	enc.Properties.Set("replicas", "2")
	if _, err := c.AddLink("gateway", "encode", "red"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddLink("encode", "index", ""); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t), Options{})

	for _, want := range []string{
		"digraph flow {",
		`"gateway" [label="gateway"];`,
		`"encode" [label="encode"];`,
		`"gateway" -> "encode" [color="red"];`,
		`"encode" -> "index";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "pos=") {
		t.Errorf("ToDOT() pinned positions without Positions option")
	}
	if strings.Index(dot, `"gateway" [`) > strings.Index(dot, `"index" [`) {
		t.Errorf("ToDOT() did not keep node order")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(t), Options{Detailed: true})

	want := `"encode" [label="encode\ndepth: 1\nuses: Encoder\nreplicas: 2"];`
	if !strings.Contains(dot, want) {
		t.Errorf("ToDOT() missing %q\n%s", want, dot)
	}
}

func TestToDOTPositions(t *testing.T) {
	dot := ToDOT(sample(t), Options{Positions: true})

	want := `"encode" [label="encode", pos="187.5,-225!"];`
	if !strings.Contains(dot, want) {
		t.Errorf("ToDOT() missing %q\n%s", want, dot)
	}
}

func TestToDOTUnlabeled(t *testing.T) {
	c := sample(t)
	n, _ := c.Node("index")
	n.Label = ""

	dot := ToDOT(c, Options{})
	if !strings.Contains(dot, `"index" [label="index", style="rounded,filled,dashed", fillcolor=lightgrey];`) {
		t.Errorf("ToDOT() did not mark unlabeled node\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox")
	}
}
