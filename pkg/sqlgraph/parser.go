package sqlgraph

import "strings"

// parseClauses turns the clause segments into the validated
// intermediate representation. Clauses are parsed in dependency order:
// FROM and JOINs first (they declare the tables every other clause
// resolves against), then GROUP BY, the select list, and WHERE.
func parseClauses(segs *segments, dialect *Dialect) (*clauseData, error) {
	data := &clauseData{}

	base, err := parseFrom(segs.from)
	if err != nil {
		return nil, err
	}
	data.baseTable = base

	declared := map[string]bool{base: true}
	for _, block := range segs.joins {
		spec, err := parseJoin(block, declared, dialect)
		if err != nil {
			return nil, err
		}
		data.joins = append(data.joins, *spec)
		declared[spec.Right] = true
	}

	resolver := &tableResolver{base: base, declared: declared, joined: len(data.joins) > 0}

	data.groupBy, err = parseGroupBy(segs.groupBy, resolver)
	if err != nil {
		return nil, err
	}

	if err := parseSelectList(segs.sel, resolver, dialect, len(data.groupBy) > 0, data); err != nil {
		return nil, err
	}

	data.filters, err = parseWhere(segs.where, resolver)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// ---------- Table resolution ----------

// tableResolver resolves column qualifiers against the declared tables.
type tableResolver struct {
	base     string
	declared map[string]bool
	joined   bool
}

// resolve fills in the table of an unqualified column reference and
// validates a qualified one. An unqualified column resolves to the base
// table only when it is the sole table; with joins present the
// reference is ambiguous and rejected rather than guessed.
func (r *tableResolver) resolve(col *ColumnRef, pos Position) error {
	if col.Table == "" {
		if r.joined {
			return semanticErr(pos, col.Column, errAmbiguousColumn, col.Column)
		}
		col.Table = r.base
		return nil
	}
	if !r.declared[col.Table] {
		return semanticErr(pos, col.String(), errUnknownTable, col.Table)
	}
	return nil
}

// ---------- Token cursor ----------

// cursor is a lookahead-free reader over one clause segment.
type cursor struct {
	toks []Token
	pos  int
	last Position // position of the clause anchor, for empty segments
}

func newCursor(toks []Token) *cursor {
	c := &cursor{toks: toks}
	if len(toks) > 0 {
		c.last = toks[0].Pos
	}
	return c
}

func (c *cursor) cur() Token {
	if c.pos >= len(c.toks) {
		return Token{Type: TOKEN_EOF, Pos: c.last}
	}
	return c.toks[c.pos]
}

func (c *cursor) next() Token {
	tok := c.cur()
	if c.pos < len(c.toks) {
		c.last = tok.Pos
		c.pos++
	}
	return tok
}

func (c *cursor) check(t TokenType) bool {
	return c.cur().Type == t
}

func (c *cursor) match(t TokenType) bool {
	if c.check(t) {
		c.next()
		return true
	}
	return false
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.toks)
}

// tableName reads IDENT or IDENT.IDENT (schema-qualified) as one name.
func (c *cursor) tableName() (string, bool) {
	if !c.check(TOKEN_IDENT) {
		return "", false
	}
	name := c.next().Literal
	if c.check(TOKEN_DOT) {
		c.next()
		if !c.check(TOKEN_IDENT) {
			return "", false
		}
		name += "." + c.next().Literal
	}
	return name, true
}

// columnRef reads IDENT or IDENT.IDENT as a column reference.
func (c *cursor) columnRef() (*ColumnRef, bool) {
	if !c.check(TOKEN_IDENT) {
		return nil, false
	}
	first := c.next().Literal
	if !c.match(TOKEN_DOT) {
		return &ColumnRef{Column: first}, true
	}
	if !c.check(TOKEN_IDENT) {
		return nil, false
	}
	return &ColumnRef{Table: first, Column: c.next().Literal}, true
}

// ---------- FROM ----------

// parseFrom expects exactly one qualified or unqualified table name.
func parseFrom(toks []Token) (string, error) {
	c := newCursor(toks)
	if c.eof() {
		return "", structureErr(c.last, "", "FROM clause has no table")
	}
	name, ok := c.tableName()
	if !ok {
		tok := c.cur()
		return "", structureErr(tok.Pos, tok.Literal, errUnexpectedToken, tok.Type, "table name")
	}
	if !c.eof() {
		tok := c.cur()
		return "", structureErr(tok.Pos, tok.Literal, "FROM clause must name exactly one table")
	}
	return name, nil
}

// ---------- JOIN ----------

// parseJoin parses one JOIN block: the type keywords, the target table,
// and the ON condition. The condition must be an equality referencing
// exactly one column of the join target and one column of a table
// declared before this join.
func parseJoin(toks []Token, declared map[string]bool, dialect *Dialect) (*JoinSpec, error) {
	c := newCursor(toks)
	lead := c.next()

	switch lead.Type {
	case TOKEN_RIGHT, TOKEN_FULL, TOKEN_CROSS:
		return nil, unsupportedErr(lead.Pos, lead.Literal, "%s JOIN is not supported", strings.ToUpper(lead.Literal))
	}

	joinType, ok := dialect.joinType(lead.Type)
	if !ok {
		return nil, unsupportedErr(lead.Pos, lead.Literal, "%s JOIN is not supported", strings.ToUpper(lead.Literal))
	}
	if lead.Type != TOKEN_JOIN {
		c.match(TOKEN_OUTER) // LEFT OUTER JOIN
		if !c.match(TOKEN_JOIN) {
			tok := c.cur()
			return nil, structureErr(tok.Pos, tok.Literal, errUnexpectedToken, tok.Type, "JOIN")
		}
	}

	target, ok := c.tableName()
	if !ok {
		tok := c.cur()
		return nil, structureErr(tok.Pos, tok.Literal, errUnexpectedToken, tok.Type, "table name")
	}
	if declared[target] {
		return nil, unsupportedErr(lead.Pos, target, "self-joins (duplicate table %q) are not supported", target)
	}

	if !c.match(TOKEN_ON) {
		tok := c.cur()
		return nil, structureErr(tok.Pos, tok.Literal, errUnexpectedToken, tok.Type, "ON")
	}

	onPos := c.cur().Pos
	cond, err := parsePredicate(c)
	if err != nil {
		return nil, err
	}
	if !c.eof() {
		tok := c.cur()
		return nil, semanticErr(tok.Pos, tok.Literal, "join condition must be a single equality of two columns")
	}

	return buildJoinSpec(joinType, target, cond, declared, onPos)
}

// buildJoinSpec validates the ON condition shape and orients the join:
// the edge runs from the previously-declared table to the join target.
func buildJoinSpec(joinType JoinType, target string, cond *Predicate, declared map[string]bool, pos Position) (*JoinSpec, error) {
	if cond.Op != "=" {
		return nil, semanticErr(pos, cond.String(), "join condition must be an equality of two columns")
	}
	left, lok := cond.Left.(*ColumnRef)
	right, rok := cond.Right.(*ColumnRef)
	if !lok || !rok {
		return nil, semanticErr(pos, cond.String(), "join condition must compare two columns, not literals")
	}
	if left.Table == "" || right.Table == "" {
		return nil, semanticErr(pos, cond.String(), "join condition columns must be table-qualified")
	}

	var from string
	switch {
	case left.Table == target && right.Table == target:
		return nil, semanticErr(pos, cond.String(), "join condition must reference exactly one column from each side")
	case left.Table == target:
		from = right.Table
	case right.Table == target:
		from = left.Table
	default:
		return nil, semanticErr(pos, cond.String(), "join condition must reference joined table %q", target)
	}
	if !declared[from] {
		return nil, semanticErr(pos, cond.String(), errUnknownTable, from)
	}

	return &JoinSpec{Type: joinType, Left: from, Right: target, Condition: cond}, nil
}

// ---------- SELECT list ----------

// parseSelectList parses the select segment: top-level comma-separated
// items, each a bare or qualified column with an optional AS alias, a
// * wildcard, or the COUNT aggregate form. The aggregate form is only
// legal when GROUP BY is present.
func parseSelectList(toks []Token, resolver *tableResolver, dialect *Dialect, grouped bool, data *clauseData) error {
	c := newCursor(toks)
	if c.eof() {
		return structureErr(c.last, "", "empty SELECT list")
	}
	if c.check(TOKEN_DISTINCT) {
		tok := c.cur()
		return unsupportedErr(tok.Pos, tok.Literal, "SELECT DISTINCT is not supported")
	}

	for {
		if err := parseSelectItem(c, resolver, dialect, data); err != nil {
			return err
		}
		if c.eof() {
			break
		}
		if !c.match(TOKEN_COMMA) {
			tok := c.cur()
			if isComparisonOp(tok.Type) || tok.Type == TOKEN_STAR {
				return unsupportedErr(tok.Pos, tok.Literal, "expressions in the SELECT list are not supported")
			}
			return structureErr(tok.Pos, tok.Literal, errUnexpectedToken, tok.Type, `","`)
		}
		if c.eof() {
			tok := c.cur()
			return structureErr(tok.Pos, ",", "trailing comma in SELECT list")
		}
	}

	if data.hasAggregate && !grouped {
		return semanticErr(c.last, "COUNT", "aggregate COUNT requires GROUP BY")
	}
	return nil
}

func parseSelectItem(c *cursor, resolver *tableResolver, dialect *Dialect, data *clauseData) error {
	if c.match(TOKEN_STAR) {
		data.star = true
		return nil
	}

	tok := c.cur()
	if tok.Type != TOKEN_IDENT {
		return structureErr(tok.Pos, tok.Literal, errUnexpectedToken, tok.Type, "column reference")
	}

	// Aggregate form: COUNT(*) or COUNT([table.]column).
	if c.pos+1 < len(c.toks) && c.toks[c.pos+1].Type == TOKEN_LPAREN {
		name := c.next().Literal
		if !dialect.isAggregate(name) {
			return unsupportedErr(tok.Pos, name, "function %s is not supported; only the COUNT aggregate is", strings.ToUpper(name))
		}
		c.next() // consume '('
		if !c.match(TOKEN_STAR) {
			col, ok := c.columnRef()
			if !ok {
				bad := c.cur()
				return structureErr(bad.Pos, bad.Literal, errUnexpectedToken, bad.Type, "column reference or *")
			}
			// Validate the counted column's qualifier, but do not
			// attach it to a node: the aggregate belongs to the
			// grouped output, not to a table's column list.
			if err := resolver.resolve(col, tok.Pos); err != nil {
				return err
			}
		}
		if !c.match(TOKEN_RPAREN) {
			bad := c.cur()
			return structureErr(bad.Pos, bad.Literal, errUnexpectedToken, bad.Type, `")"`)
		}
		if c.match(TOKEN_AS) {
			if !c.check(TOKEN_IDENT) {
				bad := c.cur()
				return structureErr(bad.Pos, bad.Literal, errUnexpectedToken, bad.Type, "alias")
			}
			c.next()
		}
		data.hasAggregate = true
		return nil
	}

	col, ok := c.columnRef()
	if !ok {
		bad := c.cur()
		return structureErr(bad.Pos, bad.Literal, errUnexpectedToken, bad.Type, "column reference")
	}
	if c.match(TOKEN_AS) {
		if !c.check(TOKEN_IDENT) {
			bad := c.cur()
			return structureErr(bad.Pos, bad.Literal, errUnexpectedToken, bad.Type, "alias")
		}
		col.Alias = c.next().Literal
	}
	if err := resolver.resolve(col, tok.Pos); err != nil {
		return err
	}
	data.columns = append(data.columns, col)
	return nil
}

// ---------- WHERE ----------

// parseWhere splits the WHERE segment on top-level AND and parses each
// conjunct as one predicate. OR and grouping parentheses are rejected
// by name. Each conjunct is bound to the single table it references;
// predicates over literals only bind to the base table.
func parseWhere(toks []Token, resolver *tableResolver) ([]boundPredicate, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	c := newCursor(toks)

	var filters []boundPredicate
	for {
		if tok := c.cur(); tok.Type == TOKEN_LPAREN {
			return nil, unsupportedErr(tok.Pos, tok.Literal, "parenthesized WHERE conditions are not supported")
		}
		pos := c.cur().Pos
		pred, err := parsePredicate(c)
		if err != nil {
			return nil, err
		}
		owner, err := bindPredicate(pred, resolver, pos)
		if err != nil {
			return nil, err
		}
		filters = append(filters, boundPredicate{table: owner, pred: pred})

		if c.eof() {
			return filters, nil
		}
		tok := c.cur()
		switch tok.Type {
		case TOKEN_AND:
			c.next()
		case TOKEN_OR:
			return nil, unsupportedErr(tok.Pos, tok.Literal, "OR conditions are not supported")
		case TOKEN_LPAREN:
			return nil, unsupportedErr(tok.Pos, tok.Literal, "parenthesized WHERE conditions are not supported")
		default:
			return nil, structureErr(tok.Pos, tok.Literal, errUnexpectedToken, tok.Type, "AND")
		}
	}
}

// bindPredicate resolves the predicate's column operands and returns
// the table the predicate qualifies. A filter referencing columns of
// two different tables cannot be attached to a single node and is
// rejected.
func bindPredicate(pred *Predicate, resolver *tableResolver, pos Position) (string, error) {
	var tables []string
	for _, op := range []Operand{pred.Left, pred.Right} {
		col, ok := op.(*ColumnRef)
		if !ok {
			continue
		}
		if err := resolver.resolve(col, pos); err != nil {
			return "", err
		}
		if len(tables) == 0 || tables[len(tables)-1] != col.Table {
			tables = append(tables, col.Table)
		}
	}
	switch len(tables) {
	case 0:
		return resolver.base, nil
	case 1:
		return tables[0], nil
	default:
		return "", semanticErr(pos, pred.String(), "filter predicate references multiple tables (%s, %s)", tables[0], tables[1])
	}
}

// parsePredicate parses one comparison: operand op operand.
func parsePredicate(c *cursor) (*Predicate, error) {
	left, err := parseOperand(c)
	if err != nil {
		return nil, err
	}
	opTok := c.cur()
	if !isComparisonOp(opTok.Type) {
		return nil, structureErr(opTok.Pos, opTok.Literal, errUnexpectedToken, opTok.Type, "comparison operator")
	}
	c.next()
	op := opTok.Literal
	if op == "<>" {
		op = "!="
	}
	right, err := parseOperand(c)
	if err != nil {
		return nil, err
	}
	return &Predicate{Left: left, Op: op, Right: right}, nil
}

// parseOperand parses a column reference or a literal.
func parseOperand(c *cursor) (Operand, error) {
	tok := c.cur()
	switch tok.Type {
	case TOKEN_IDENT:
		col, ok := c.columnRef()
		if !ok {
			bad := c.cur()
			return nil, structureErr(bad.Pos, bad.Literal, errUnexpectedToken, bad.Type, "column name")
		}
		return col, nil
	case TOKEN_NUMBER:
		c.next()
		return &Literal{Kind: LiteralNumber, Value: tok.Literal}, nil
	case TOKEN_STRING:
		c.next()
		return &Literal{Kind: LiteralString, Value: tok.Literal}, nil
	case TOKEN_TRUE, TOKEN_FALSE:
		c.next()
		return &Literal{Kind: LiteralBool, Value: strings.ToUpper(tok.Literal)}, nil
	case TOKEN_LPAREN:
		return nil, unsupportedErr(tok.Pos, tok.Literal, "parenthesized conditions are not supported")
	}
	return nil, structureErr(tok.Pos, tok.Literal, errUnexpectedToken, tok.Type, "column or literal")
}

// ---------- GROUP BY ----------

// parseGroupBy parses the comma-separated grouping column list.
func parseGroupBy(toks []Token, resolver *tableResolver) ([]*ColumnRef, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	c := newCursor(toks)

	var cols []*ColumnRef
	for {
		pos := c.cur().Pos
		col, ok := c.columnRef()
		if !ok {
			bad := c.cur()
			return nil, structureErr(bad.Pos, bad.Literal, errUnexpectedToken, bad.Type, "column reference")
		}
		if err := resolver.resolve(col, pos); err != nil {
			return nil, err
		}
		cols = append(cols, col)

		if c.eof() {
			return cols, nil
		}
		if !c.match(TOKEN_COMMA) {
			bad := c.cur()
			return nil, structureErr(bad.Pos, bad.Literal, errUnexpectedToken, bad.Type, `","`)
		}
	}
}
