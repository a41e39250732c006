// Package mermaid renders charts as Mermaid flowcharts.
package mermaid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/flowboard/pkg/chart"
)

// Generate produces Mermaid flowchart source for the chart.
//
// Root pods (no needs) are drawn as stadiums and all others as
// rectangles. Each colored link gets a linkStyle line. A selected node is
// highlighted with the "selected" class.
func Generate(c *chart.Chart) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := nodeIDs(c)
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		n := p.Value
		opener, closer := "[", "]"
		if n.Needs.Len() == 0 {
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[p.Key], opener, escapeLabel(displayName(n)), closer)
	}

	var styles []string
	i := 0
	for p := c.Links.Oldest(); p != nil; p = p.Next() {
		l := p.Value
		fmt.Fprintf(&sb, "    %s --> %s\n", ids[l.From.NodeID], ids[l.To.NodeID])
		if l.Color != "" {
			styles = append(styles, fmt.Sprintf("    linkStyle %d stroke:%s;\n", i, l.Color))
		}
		i++
	}
	for _, s := range styles {
		sb.WriteString(s)
	}

	if c.Selected.Type == chart.SelectNode {
		if id, ok := ids[c.Selected.ID]; ok {
			sb.WriteString("    classDef selected stroke:#fbc02d,stroke-width:4px;\n")
			fmt.Fprintf(&sb, "    class %s selected;\n", id)
		}
	}

	return sb.String()
}

// nodeIDs assigns each node a Mermaid identifier. Node IDs that sanitize
// to the same identifier get a numeric suffix in node order, so distinct
// pods never merge into one Mermaid node.
func nodeIDs(c *chart.Chart) map[string]string {
	ids := make(map[string]string, c.Nodes.Len())
	taken := make(map[string]bool, c.Nodes.Len())
	for p := c.Nodes.Oldest(); p != nil; p = p.Next() {
		base := sanitizeID(p.Key)
		id := base
		for i := 2; taken[id]; i++ {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		taken[id] = true
		ids[p.Key] = id
	}
	return ids
}

func displayName(n *chart.Node) string {
	if n.Label == "" {
		return n.ID
	}
	return n.Label
}

// escapeLabel keeps a label inside Mermaid's quoted node text.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	).Replace(id)
}
