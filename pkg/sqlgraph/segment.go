package sqlgraph

// clauseRank orders the canonical clause sequence. JOIN blocks repeat;
// every other clause kind may appear at most once.
const (
	rankSelect = iota
	rankFrom
	rankJoin
	rankWhere
	rankGroupBy
)

var clauseNames = map[int]string{
	rankSelect:  "SELECT",
	rankFrom:    "FROM",
	rankJoin:    "JOIN",
	rankWhere:   "WHERE",
	rankGroupBy: "GROUP BY",
}

// segments holds the token sub-sequences of each recognized clause, in
// source order. Segment token slices exclude the anchoring keywords,
// except join blocks, which keep their leading join keywords so the
// join parser can determine the join type.
type segments struct {
	sel     []Token
	from    []Token
	joins   [][]Token
	where   []Token
	groupBy []Token
}

// segment partitions the token stream into clause segments anchored at
// top-level clause keywords. It fails with a structure-kind error on a
// missing SELECT or FROM, out-of-order clauses, or duplicate non-JOIN
// clauses, and with a named unsupported-kind error on recognized
// clauses outside the grammar (HAVING, ORDER BY, LIMIT).
func segment(tokens []Token) (*segments, error) {
	if len(tokens) == 0 {
		return nil, syntaxErr(Position{}, "", errEmptyQuery)
	}
	if tokens[0].Type != TOKEN_SELECT {
		return nil, structureErr(tokens[0].Pos, tokens[0].Literal, "query must begin with SELECT")
	}

	segs := &segments{}
	seen := map[int]bool{rankSelect: true}
	lastRank := rankSelect

	// current accumulates tokens for the clause identified by lastRank.
	var current []Token
	depth := 0

	flush := func() error {
		switch lastRank {
		case rankSelect:
			segs.sel = current
		case rankFrom:
			segs.from = current
		case rankJoin:
			segs.joins = append(segs.joins, current)
		case rankWhere:
			segs.where = current
		case rankGroupBy:
			segs.groupBy = current
		}
		current = nil
		return nil
	}

	i := 1 // skip the anchoring SELECT
	for i < len(tokens) {
		tok := tokens[i]

		switch tok.Type {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			if depth > 0 {
				depth--
			}
		}

		rank, isClause := -1, false
		if depth == 0 {
			switch {
			case tok.Type == TOKEN_SELECT:
				return nil, structureErr(tok.Pos, tok.Literal, errDuplicateClause, "SELECT")
			case tok.Type == TOKEN_FROM:
				rank, isClause = rankFrom, true
			case isJoinKeyword(tok.Type):
				rank, isClause = rankJoin, true
			case tok.Type == TOKEN_WHERE:
				rank, isClause = rankWhere, true
			case tok.Type == TOKEN_GROUP:
				rank, isClause = rankGroupBy, true
			case tok.Type == TOKEN_HAVING:
				return nil, unsupportedErr(tok.Pos, tok.Literal, "HAVING is not supported")
			case tok.Type == TOKEN_ORDER:
				return nil, unsupportedErr(tok.Pos, tok.Literal, "ORDER BY is not supported")
			case tok.Type == TOKEN_LIMIT:
				return nil, unsupportedErr(tok.Pos, tok.Literal, "LIMIT is not supported")
			}
		}

		if !isClause {
			current = append(current, tok)
			i++
			continue
		}

		if rank < lastRank {
			return nil, structureErr(tok.Pos, tok.Literal, errClauseOrder, clauseNames[rank], clauseNames[lastRank])
		}
		if rank == lastRank && rank != rankJoin {
			return nil, structureErr(tok.Pos, tok.Literal, errDuplicateClause, clauseNames[rank])
		}
		if rank != rankJoin && seen[rank] {
			return nil, structureErr(tok.Pos, tok.Literal, errDuplicateClause, clauseNames[rank])
		}

		if err := flush(); err != nil {
			return nil, err
		}
		seen[rank] = true
		lastRank = rank
		i++

		switch rank {
		case rankGroupBy:
			// GROUP must be immediately followed by BY.
			if i >= len(tokens) || tokens[i].Type != TOKEN_BY {
				return nil, structureErr(tok.Pos, tok.Literal, "expected BY after GROUP")
			}
			i++
		case rankJoin:
			// Keep the leading join keywords in the block so the join
			// parser can classify the join type. Consume the whole
			// keyword prefix (e.g. LEFT OUTER JOIN) here so the JOIN
			// token does not anchor a spurious second block.
			current = append(current, tok)
			for i < len(tokens) && (tokens[i].Type == TOKEN_OUTER || tokens[i].Type == TOKEN_JOIN) {
				current = append(current, tokens[i])
				i++
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	if !seen[rankFrom] {
		last := tokens[len(tokens)-1]
		return nil, structureErr(last.Pos, "", errMissingClause, "FROM")
	}
	return segs, nil
}
