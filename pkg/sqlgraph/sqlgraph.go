// Package sqlgraph parses a restricted dialect of SQL SELECT statements
// into a relational graph: tables as nodes, joins as directed labeled
// edges, with filter predicates and grouping markers attached to the
// table they apply to.
//
// # Pipeline Architecture
//
// Data flows strictly forward through the stages, each in its own file:
//
//   - lexer.go / token.go: raw text → typed tokens with positions
//   - detect.go: named rejection of unsupported constructs
//   - segment.go: tokens → per-clause segments in canonical order
//   - parser.go: clause segments → validated intermediate data
//   - graph.go: intermediate data → the final Graph
//   - errors.go: the single diagnostic type every stage reports through
//
// # Grammar Overview
//
//	query      → SELECT select_list FROM table join* [WHERE conjuncts] [GROUP BY columns]
//	select_list→ item ("," item)*
//	item       → "*" | [table "."] column [AS alias] | COUNT "(" ("*" | column_ref) ")" [AS alias]
//	join       → (INNER | LEFT [OUTER])? JOIN table ON column_ref "=" column_ref
//	conjuncts  → predicate (AND predicate)*
//	predicate  → operand ("=" | "!=" | "<>" | ">" | "<" | ">=" | "<=") operand
//	operand    → column_ref | number | string | TRUE | FALSE
//
// Subqueries, CTEs, window functions, UNION, OR, and grouping
// parentheses are rejected with errors naming the feature.
//
// # Usage
//
//	graph, err := sqlgraph.Parse("SELECT id, name FROM users WHERE active = 1")
//	if err != nil {
//	    // handle error; sqlgraph.KindOf(err) classifies it
//	}
//
// Parsing is a synchronous, side-effect-free computation with no shared
// state between invocations; independent goroutines may parse
// concurrently without coordination.
package sqlgraph

import "strings"

// Parse parses the query with the default dialect and returns its
// relational graph. On failure the returned graph is always nil and the
// error is an *Error carrying the kind, message, and offending
// fragment.
func Parse(sql string) (*Graph, error) {
	return ParseWithOptions(sql, Options{})
}

// ParseWithOptions parses the query with explicit pipeline options.
func ParseWithOptions(sql string, opts Options) (*Graph, error) {
	dialect := opts.Dialect
	if dialect == nil {
		dialect = DefaultDialect()
	}

	if strings.TrimSpace(sql) == "" {
		return nil, syntaxErr(Position{}, "", errEmptyQuery)
	}

	tokens, err := Tokenize(sql)
	if err != nil {
		return nil, err
	}
	if err := detectUnsupported(tokens); err != nil {
		return nil, err
	}
	segs, err := segment(tokens)
	if err != nil {
		return nil, err
	}
	data, err := parseClauses(segs, dialect)
	if err != nil {
		return nil, err
	}
	return buildGraph(data)
}
