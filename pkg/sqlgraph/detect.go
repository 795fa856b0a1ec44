package sqlgraph

// Named unsupported features. The exact phrasing follows the messages
// the front-end surfaces to users; the feature name is load-bearing.
const (
	msgSubquery = "subqueries are not supported"
	msgCTE      = "CTEs (WITH clauses) are not supported"
	msgWindow   = "window functions (OVER) are not supported"
	msgUnion    = "UNION / UNION ALL are not supported"
)

// detectUnsupported scans the full token sequence once, before
// segmentation, and rejects recognized-but-unsupported constructs with
// an error naming the feature. Running this first guarantees these
// queries never surface as generic syntax or structure failures.
func detectUnsupported(tokens []Token) error {
	if len(tokens) > 0 && tokens[0].Type == TOKEN_WITH {
		return unsupportedErr(tokens[0].Pos, tokens[0].Literal, msgCTE)
	}

	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			if depth > 0 {
				depth--
			}
		case TOKEN_SELECT:
			// SELECT inside an unclosed parenthesis is the subquery
			// signature, whether in FROM, WHERE, or the select list.
			if depth > 0 {
				return unsupportedErr(tok.Pos, tok.Literal, msgSubquery)
			}
		case TOKEN_OVER:
			return unsupportedErr(tok.Pos, tok.Literal, msgWindow)
		case TOKEN_UNION:
			return unsupportedErr(tok.Pos, tok.Literal, msgUnion)
		}
	}
	return nil
}
