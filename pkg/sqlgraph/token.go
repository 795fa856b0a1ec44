package sqlgraph

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// TOKEN_EOF represents end of input.
	TOKEN_EOF TokenType = iota
	// TOKEN_ILLEGAL represents an unrecognized character.
	TOKEN_ILLEGAL

	// TOKEN_IDENT represents an identifier.
	TOKEN_IDENT
	// TOKEN_NUMBER represents a numeric literal.
	TOKEN_NUMBER // 123, 45.67, 1e10
	// TOKEN_STRING represents a string literal.
	TOKEN_STRING // 'hello'

	TOKEN_EQ     // =
	TOKEN_NE     // != or <>
	TOKEN_LT     // <
	TOKEN_GT     // >
	TOKEN_LE     // <=
	TOKEN_GE     // >=
	TOKEN_DOT    // .
	TOKEN_COMMA  // ,
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
	TOKEN_STAR   // *

	// Keywords (alphabetical)
	TOKEN_AND
	TOKEN_AS
	TOKEN_BY
	TOKEN_CROSS
	TOKEN_DISTINCT
	TOKEN_FALSE
	TOKEN_FROM
	TOKEN_FULL
	TOKEN_GROUP
	TOKEN_HAVING
	TOKEN_INNER
	TOKEN_JOIN
	TOKEN_LEFT
	TOKEN_LIMIT
	TOKEN_ON
	TOKEN_OR
	TOKEN_ORDER
	TOKEN_OUTER
	TOKEN_OVER
	TOKEN_RIGHT
	TOKEN_SELECT
	TOKEN_TRUE
	TOKEN_UNION
	TOKEN_WHERE
	TOKEN_WITH
)

// Token represents a lexical token with position information.
// Tokens are immutable once produced by the lexer.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position represents a location in the source query.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",

	TOKEN_IDENT:  "IDENT",
	TOKEN_NUMBER: "NUMBER",
	TOKEN_STRING: "STRING",

	TOKEN_EQ:     "=",
	TOKEN_NE:     "!=",
	TOKEN_LT:     "<",
	TOKEN_GT:     ">",
	TOKEN_LE:     "<=",
	TOKEN_GE:     ">=",
	TOKEN_DOT:    ".",
	TOKEN_COMMA:  ",",
	TOKEN_LPAREN: "(",
	TOKEN_RPAREN: ")",
	TOKEN_STAR:   "*",

	TOKEN_AND:      "AND",
	TOKEN_AS:       "AS",
	TOKEN_BY:       "BY",
	TOKEN_CROSS:    "CROSS",
	TOKEN_DISTINCT: "DISTINCT",
	TOKEN_FALSE:    "FALSE",
	TOKEN_FROM:     "FROM",
	TOKEN_FULL:     "FULL",
	TOKEN_GROUP:    "GROUP",
	TOKEN_HAVING:   "HAVING",
	TOKEN_INNER:    "INNER",
	TOKEN_JOIN:     "JOIN",
	TOKEN_LEFT:     "LEFT",
	TOKEN_LIMIT:    "LIMIT",
	TOKEN_ON:       "ON",
	TOKEN_OR:       "OR",
	TOKEN_ORDER:    "ORDER",
	TOKEN_OUTER:    "OUTER",
	TOKEN_OVER:     "OVER",
	TOKEN_RIGHT:    "RIGHT",
	TOKEN_SELECT:   "SELECT",
	TOKEN_TRUE:     "TRUE",
	TOKEN_UNION:    "UNION",
	TOKEN_WHERE:    "WHERE",
	TOKEN_WITH:     "WITH",
}

// keywords maps lowercase keyword strings to their token types.
// Keyword matching is case-insensitive; identifiers preserve case.
var keywords = map[string]TokenType{
	"and":      TOKEN_AND,
	"as":       TOKEN_AS,
	"by":       TOKEN_BY,
	"cross":    TOKEN_CROSS,
	"distinct": TOKEN_DISTINCT,
	"false":    TOKEN_FALSE,
	"from":     TOKEN_FROM,
	"full":     TOKEN_FULL,
	"group":    TOKEN_GROUP,
	"having":   TOKEN_HAVING,
	"inner":    TOKEN_INNER,
	"join":     TOKEN_JOIN,
	"left":     TOKEN_LEFT,
	"limit":    TOKEN_LIMIT,
	"on":       TOKEN_ON,
	"or":       TOKEN_OR,
	"order":    TOKEN_ORDER,
	"outer":    TOKEN_OUTER,
	"over":     TOKEN_OVER,
	"right":    TOKEN_RIGHT,
	"select":   TOKEN_SELECT,
	"true":     TOKEN_TRUE,
	"union":    TOKEN_UNION,
	"where":    TOKEN_WHERE,
	"with":     TOKEN_WITH,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, TOKEN_IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENT
}

// isComparisonOp returns true for the predicate operators the grammar supports.
func isComparisonOp(t TokenType) bool {
	switch t {
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
		return true
	}
	return false
}

// isJoinKeyword returns true if the token can start a JOIN block.
func isJoinKeyword(t TokenType) bool {
	switch t {
	case TOKEN_JOIN, TOKEN_INNER, TOKEN_LEFT, TOKEN_RIGHT, TOKEN_FULL, TOKEN_CROSS:
		return true
	}
	return false
}
