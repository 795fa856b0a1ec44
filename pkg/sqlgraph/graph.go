package sqlgraph

import "fmt"

// TableNode is one table referenced by the query, with the selected
// columns it owns, the filter predicates that qualify it, and whether
// it appears in GROUP BY.
type TableNode struct {
	Name    string       `json:"name"`
	Columns []*ColumnRef `json:"columns,omitempty"`
	Filters []*Predicate `json:"filters,omitempty"`
	Grouped bool         `json:"grouped"`
}

// hasColumn reports whether the node already lists the column.
func (n *TableNode) hasColumn(name string) bool {
	for _, c := range n.Columns {
		if c.Column == name {
			return true
		}
	}
	return false
}

// JoinEdge is a directed edge from the left-hand table of a join (as
// written) to the joined table.
type JoinEdge struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Type      JoinType   `json:"type"`
	Condition *Predicate `json:"condition"`
}

// Graph is the relational graph a successful parse produces: one node
// per referenced table in first-appearance order, one edge per join in
// declaration order. A Graph is exclusively owned by the caller that
// requested the parse and must be treated as read-only.
type Graph struct {
	Nodes []*TableNode `json:"nodes"`
	Edges []*JoinEdge  `json:"edges"`
}

// Node returns the node for the given table name.
func (g *Graph) Node(name string) (*TableNode, bool) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Tables returns all table names in node order.
func (g *Graph) Tables() []string {
	names := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		names = append(names, n.Name)
	}
	return names
}

// buildGraph is the pure transformation from the validated clause data
// to the final graph. It can only fail if an invariant the clause
// parsers are supposed to guarantee does not hold; such a failure is an
// internal-consistency error, not a user-facing diagnostic.
func buildGraph(data *clauseData) (*Graph, error) {
	g := &Graph{}
	byName := make(map[string]*TableNode)

	for _, name := range data.declaredTables() {
		node := &TableNode{Name: name}
		g.Nodes = append(g.Nodes, node)
		byName[name] = node
	}

	for _, col := range data.columns {
		node, ok := byName[col.Table]
		if !ok {
			return nil, fmt.Errorf("internal consistency: column %s references unknown table %q", col, col.Table)
		}
		if !node.hasColumn(col.Column) {
			node.Columns = append(node.Columns, col)
		}
	}
	if data.star {
		for _, node := range g.Nodes {
			if !node.hasColumn("*") {
				node.Columns = append(node.Columns, &ColumnRef{Table: node.Name, Column: "*"})
			}
		}
	}

	for _, f := range data.filters {
		node, ok := byName[f.table]
		if !ok {
			return nil, fmt.Errorf("internal consistency: filter %s bound to unknown table %q", f.pred, f.table)
		}
		node.Filters = append(node.Filters, f.pred)
	}

	for _, col := range data.groupBy {
		node, ok := byName[col.Table]
		if !ok {
			return nil, fmt.Errorf("internal consistency: GROUP BY column %s references unknown table %q", col, col.Table)
		}
		node.Grouped = true
	}

	for _, j := range data.joins {
		g.Edges = append(g.Edges, &JoinEdge{From: j.Left, To: j.Right, Type: j.Type, Condition: j.Condition})
	}

	if err := g.verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// verify re-checks the model invariants after the build. Unreachable
// given correct upstream validation.
func (g *Graph) verify() error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("internal consistency: graph has no nodes")
	}
	byName := make(map[string]*TableNode, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := byName[n.Name]; dup {
			return fmt.Errorf("internal consistency: duplicate node %q", n.Name)
		}
		byName[n.Name] = n
	}
	for _, n := range g.Nodes {
		for _, c := range n.Columns {
			if c.Table != n.Name {
				return fmt.Errorf("internal consistency: node %q lists column %s of another table", n.Name, c)
			}
		}
		for _, f := range n.Filters {
			for _, op := range []Operand{f.Left, f.Right} {
				if col, ok := op.(*ColumnRef); ok && col.Table != n.Name {
					return fmt.Errorf("internal consistency: node %q carries filter %s referencing %q", n.Name, f, col.Table)
				}
			}
		}
	}
	for _, e := range g.Edges {
		if _, ok := byName[e.From]; !ok {
			return fmt.Errorf("internal consistency: edge references unknown node %q", e.From)
		}
		if _, ok := byName[e.To]; !ok {
			return fmt.Errorf("internal consistency: edge references unknown node %q", e.To)
		}
	}
	return nil
}
