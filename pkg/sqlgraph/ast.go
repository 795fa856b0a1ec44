package sqlgraph

import "strings"

// ColumnRef represents a selected or referenced column. Table is empty
// until the reference is resolved against the declared tables; Alias is
// set only for select-list items with an AS alias.
type ColumnRef struct {
	Table  string `json:"table,omitempty"`
	Column string `json:"column"`
	Alias  string `json:"alias,omitempty"`
}

func (c *ColumnRef) operand() {}

// String returns the reference as written, e.g. "users.id".
func (c *ColumnRef) String() string {
	if c.Table != "" {
		return c.Table + "." + c.Column
	}
	return c.Column
}

// LiteralKind classifies a literal operand.
type LiteralKind int

const (
	// LiteralNumber is a numeric literal.
	LiteralNumber LiteralKind = iota + 1
	// LiteralString is a single-quoted string literal.
	LiteralString
	// LiteralBool is TRUE or FALSE.
	LiteralBool
)

// Literal is a literal predicate operand. Value preserves the source
// text of the literal (without quotes for strings).
type Literal struct {
	Kind  LiteralKind `json:"kind"`
	Value string      `json:"value"`
}

func (l *Literal) operand() {}

// String returns the literal in SQL form.
func (l *Literal) String() string {
	if l.Kind == LiteralString {
		return "'" + strings.ReplaceAll(l.Value, "'", "''") + "'"
	}
	return l.Value
}

// Operand is either a column reference or a literal. The variant set is
// closed: only ColumnRef and Literal implement it.
type Operand interface {
	operand()
	String() string
}

// Predicate is a single comparison, e.g. users.active = 1. Compound
// AND conditions are represented as ordered lists of Predicate.
type Predicate struct {
	Left  Operand `json:"left"`
	Op    string  `json:"op"`
	Right Operand `json:"right"`
}

// String returns the predicate in SQL form.
func (p *Predicate) String() string {
	return p.Left.String() + " " + p.Op + " " + p.Right.String()
}

// JoinSpec is one parsed JOIN block: the join type, the two tables it
// relates (Left declared earlier in the query, Right the join target),
// and the equality condition.
type JoinSpec struct {
	Type      JoinType
	Left      string
	Right     string
	Condition *Predicate
}

// boundPredicate is a filter predicate together with the table it
// qualifies.
type boundPredicate struct {
	table string
	pred  *Predicate
}

// clauseData is the validated intermediate representation the clause
// parsers hand to the graph builder.
type clauseData struct {
	baseTable    string
	joins        []JoinSpec
	columns      []*ColumnRef // resolved select-list columns, source order
	star         bool         // SELECT * present
	hasAggregate bool         // COUNT(...) present in select list
	filters      []boundPredicate
	groupBy      []*ColumnRef
}

// declaredTables returns all table names in first-appearance order.
func (d *clauseData) declaredTables() []string {
	tables := []string{d.baseTable}
	for _, j := range d.joins {
		tables = append(tables, j.Right)
	}
	return tables
}
