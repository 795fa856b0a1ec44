package sqlgraph

import "strings"

// JoinType identifies a supported join variant.
type JoinType string

const (
	// JoinInner is an INNER JOIN (also the default for a bare JOIN).
	JoinInner JoinType = "INNER"
	// JoinLeft is a LEFT JOIN.
	JoinLeft JoinType = "LEFT"
)

// Dialect is the immutable configuration for one parse pipeline: which
// join keywords are accepted and which function names are recognized as
// aggregates. It is passed through the pipeline explicitly so separate
// parses never share mutable state.
type Dialect struct {
	joinTypes  map[TokenType]JoinType
	aggregates map[string]struct{}
}

// DefaultDialect returns the dialect the graph grammar supports:
// INNER and LEFT joins, and the COUNT aggregate.
func DefaultDialect() *Dialect {
	return &Dialect{
		joinTypes: map[TokenType]JoinType{
			TOKEN_INNER: JoinInner,
			TOKEN_LEFT:  JoinLeft,
			TOKEN_JOIN:  JoinInner, // bare JOIN defaults to INNER
		},
		aggregates: map[string]struct{}{
			"count": {},
		},
	}
}

// joinType returns the join type for a leading join keyword token.
func (d *Dialect) joinType(t TokenType) (JoinType, bool) {
	jt, ok := d.joinTypes[t]
	return jt, ok
}

// isAggregate reports whether name is a recognized aggregate function.
func (d *Dialect) isAggregate(name string) bool {
	_, ok := d.aggregates[strings.ToLower(name)]
	return ok
}

// Options configures a parse. The zero value uses the default dialect.
type Options struct {
	// Dialect overrides the pipeline configuration. Nil means
	// DefaultDialect().
	Dialect *Dialect
}
