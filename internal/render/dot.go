// Package render emits Graphviz DOT documents for relational graphs.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/sqlviz/pkg/sqlgraph"
)

// Node fill palette, cycled in node order.
var nodeColors = []string{
	"#7dd3fc", // sky
	"#a5f3fc", // cyan
	"#bbf7d0", // green
	"#fde047", // yellow
	"#fdba74", // orange
	"#f9a8d4", // pink
	"#c4b5fd", // violet
	"#e0e7ff", // indigo
}

const (
	labelSep        = "────────────────"
	maxLabelColumns = 5
	maxLabelFilters = 3
	maxFilterWidth  = 40
	maxEdgeWidth    = 30
)

// Options controls DOT emission.
type Options struct {
	// RankDir is the graph layout direction ("LR" or "TB").
	RankDir string
	// GraphName names the digraph. Empty means "sqlviz".
	GraphName string
}

// DOT writes the graph as a Graphviz DOT document.
func DOT(w io.Writer, graph *sqlgraph.Graph, opts Options) error {
	if graph == nil || len(graph.Nodes) == 0 {
		return fmt.Errorf("graph has no nodes to render")
	}
	if opts.RankDir == "" {
		opts.RankDir = "LR"
	}
	if opts.GraphName == "" {
		opts.GraphName = "sqlviz"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", opts.GraphName)
	fmt.Fprintf(&b, "\trankdir=%s\n", opts.RankDir)
	b.WriteString("\tbgcolor=\"transparent\"\n")
	b.WriteString("\tnode [shape=box style=\"rounded,filled\" fontname=\"Helvetica\" fontsize=11]\n")
	b.WriteString("\tedge [fontsize=10 fontcolor=\"#64748b\" color=\"#94a3b8\" penwidth=1.5]\n")

	for i, node := range graph.Nodes {
		color := nodeColors[i%len(nodeColors)]
		fmt.Fprintf(&b, "\t%q [label=%q fillcolor=%q]\n", node.Name, nodeLabel(node), color)
	}
	for _, edge := range graph.Edges {
		fmt.Fprintf(&b, "\t%q -> %q [label=%q]\n", edge.From, edge.To, edgeLabel(edge))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// nodeLabel builds the multi-line node label: table name, selected
// columns, filters, and a grouping marker, separated by rule lines.
func nodeLabel(node *sqlgraph.TableNode) string {
	lines := []string{node.Name, labelSep}

	if hasStar(node) {
		lines = append(lines, "(all columns)")
	} else {
		for i, col := range node.Columns {
			if i == maxLabelColumns {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(node.Columns)-maxLabelColumns))
				break
			}
			lines = append(lines, "  • "+col.Column)
		}
	}

	if len(node.Filters) > 0 {
		lines = append(lines, labelSep, "WHERE:")
		for i, f := range node.Filters {
			if i == maxLabelFilters {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(node.Filters)-maxLabelFilters))
				break
			}
			lines = append(lines, "  "+truncate(f.String(), maxFilterWidth))
		}
	}

	if node.Grouped {
		lines = append(lines, labelSep, "[GROUP BY]")
	}

	return strings.Join(lines, "\n")
}

// edgeLabel builds the join edge label: join type plus the truncated
// condition.
func edgeLabel(edge *sqlgraph.JoinEdge) string {
	label := string(edge.Type) + " JOIN"
	if edge.Condition != nil {
		label += "\n" + truncate(edge.Condition.String(), maxEdgeWidth)
	}
	return label
}

func hasStar(node *sqlgraph.TableNode) bool {
	for _, c := range node.Columns {
		if c.Column == "*" {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
