package sqlgraph

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure. The kind set is closed: every
// failure the pipeline reports carries exactly one of these kinds.
type ErrorKind int

const (
	// KindSyntax covers malformed tokens and literals.
	KindSyntax ErrorKind = iota + 1
	// KindStructure covers missing, misordered, or duplicated clauses
	// and wrong clause arity.
	KindStructure
	// KindUnsupported covers recognized-but-rejected SQL features.
	// The message always names the specific feature.
	KindUnsupported
	// KindSemantic covers undeclared table references, ambiguous
	// unqualified columns, and malformed join condition shapes.
	KindSemantic
)

// String returns the conventional name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindStructure:
		return "structure error"
	case KindUnsupported:
		return "unsupported feature"
	case KindSemantic:
		return "semantic error"
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// Error is the single diagnostic type every pipeline stage reports
// through. Parsing halts at the first error; there is no accumulation.
type Error struct {
	Kind     ErrorKind
	Message  string
	Fragment string // offending source fragment, may be empty
	Pos      Position
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Common error messages
const (
	errEmptyQuery         = "empty SQL query"
	errUnterminatedString = "unterminated string literal"
	errUnterminatedIdent  = "unterminated quoted identifier"
	errUnexpectedChar     = "unrecognized character %q"
	errUnexpectedToken    = "unexpected token %s, expected %s"
	errMissingClause      = "query has no %s clause"
	errDuplicateClause    = "duplicate %s clause"
	errClauseOrder        = "%s clause may not follow %s"
	errUnknownTable       = "unknown table %q"
	errAmbiguousColumn    = "unqualified column %q is ambiguous across joined tables"
)

func syntaxErr(pos Position, fragment, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Message: fmt.Sprintf(format, args...), Fragment: fragment, Pos: pos}
}

func structureErr(pos Position, fragment, format string, args ...any) *Error {
	return &Error{Kind: KindStructure, Message: fmt.Sprintf(format, args...), Fragment: fragment, Pos: pos}
}

func unsupportedErr(pos Position, fragment, format string, args ...any) *Error {
	return &Error{Kind: KindUnsupported, Message: fmt.Sprintf(format, args...), Fragment: fragment, Pos: pos}
}

func semanticErr(pos Position, fragment, format string, args ...any) *Error {
	return &Error{Kind: KindSemantic, Message: fmt.Sprintf(format, args...), Fragment: fragment, Pos: pos}
}

// KindOf returns the error kind of err, or 0 if err is not a pipeline
// diagnostic (for example an internal-consistency failure).
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// IsSyntaxError reports whether err is a syntax-kind diagnostic.
func IsSyntaxError(err error) bool { return KindOf(err) == KindSyntax }

// IsStructureError reports whether err is a structure-kind diagnostic.
func IsStructureError(err error) bool { return KindOf(err) == KindStructure }

// IsUnsupportedError reports whether err is an unsupported-feature diagnostic.
func IsUnsupportedError(err error) bool { return KindOf(err) == KindUnsupported }

// IsSemanticError reports whether err is a semantic-kind diagnostic.
func IsSemanticError(err error) bool { return KindOf(err) == KindSemantic }
