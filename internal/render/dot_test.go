package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlviz/pkg/sqlgraph"
)

func renderSQL(t *testing.T, sql string, opts Options) string {
	t.Helper()
	graph, err := sqlgraph.Parse(sql)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DOT(&buf, graph, opts))
	return buf.String()
}

func TestDOT_JoinedQuery(t *testing.T) {
	out := renderSQL(t, `SELECT users.id, users.name, orders.total
		FROM users
		INNER JOIN orders ON users.id = orders.user_id
		WHERE users.active = 1`, Options{})

	assert.True(t, strings.HasPrefix(out, `digraph "sqlviz" {`))
	assert.Contains(t, out, "rankdir=LR")
	assert.Contains(t, out, `"users" [label=`)
	assert.Contains(t, out, `"orders" [label=`)
	assert.Contains(t, out, `"users" -> "orders"`)
	assert.Contains(t, out, "INNER JOIN")
	assert.Contains(t, out, "users.id = orders.user_id")
	assert.Contains(t, out, "WHERE:")
	assert.Contains(t, out, "users.active = 1")
}

func TestDOT_GroupedQuery(t *testing.T) {
	out := renderSQL(t, `SELECT customers.region, COUNT(orders.id)
		FROM customers
		LEFT JOIN orders ON customers.id = orders.customer_id
		GROUP BY customers.region`, Options{})

	assert.Contains(t, out, "[GROUP BY]")
	assert.Contains(t, out, "LEFT JOIN")
}

func TestDOT_SelectStar(t *testing.T) {
	out := renderSQL(t, "SELECT * FROM users", Options{})
	assert.Contains(t, out, "(all columns)")
}

func TestDOT_Options(t *testing.T) {
	out := renderSQL(t, "SELECT id FROM users", Options{RankDir: "TB", GraphName: "query"})
	assert.True(t, strings.HasPrefix(out, `digraph "query" {`))
	assert.Contains(t, out, "rankdir=TB")
}

func TestDOT_ColumnOverflowTruncated(t *testing.T) {
	out := renderSQL(t, "SELECT a, b, c, d, e, f, g FROM wide", Options{})
	assert.Contains(t, out, "... and 2 more")
	assert.NotContains(t, out, "• g")
}

func TestDOT_LabelQuotesEscaped(t *testing.T) {
	out := renderSQL(t, `SELECT id FROM users WHERE note = 'say "hi"'`, Options{})
	// %q quoting must keep the label a single well-formed DOT string.
	assert.Contains(t, out, `\"hi\"`)
}

func TestDOT_NilGraph(t *testing.T) {
	var buf bytes.Buffer
	err := DOT(&buf, nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no nodes")
}
