package sqlgraph

import (
	"strings"
	"testing"
)

// expectKind asserts that parsing sql fails with the given kind and
// that the message mentions every fragment in contains.
func expectKind(t *testing.T, sql string, kind ErrorKind, contains ...string) {
	t.Helper()
	_, err := Parse(sql)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, expected %s", sql, kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("Parse(%q): expected %s, got %s (%v)", sql, kind, got, err)
	}
	for _, want := range contains {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Parse(%q): error %q does not mention %q", sql, err.Error(), want)
		}
	}
}

// =============================================================================
// Test: clause segmentation structure errors
// =============================================================================

func TestSegment_MissingFrom(t *testing.T) {
	expectKind(t, "SELECT id, name", KindStructure, "FROM")
}

func TestSegment_MissingSelect(t *testing.T) {
	expectKind(t, "FROM users", KindStructure, "SELECT")
}

func TestSegment_DuplicateWhere(t *testing.T) {
	expectKind(t, "SELECT id FROM users WHERE a = 1 WHERE b = 2", KindStructure, "WHERE")
}

func TestSegment_DuplicateFrom(t *testing.T) {
	expectKind(t, "SELECT id FROM users FROM orders", KindStructure, "FROM")
}

func TestSegment_OutOfOrderWhere(t *testing.T) {
	expectKind(t, "SELECT id FROM users GROUP BY id WHERE id = 1", KindStructure, "WHERE")
}

func TestSegment_GroupWithoutBy(t *testing.T) {
	expectKind(t, "SELECT id FROM users GROUP id", KindStructure, "BY")
}

func TestSegment_JoinMayRepeat(t *testing.T) {
	sql := `SELECT a.x, b.y, c.z FROM a
		INNER JOIN b ON a.id = b.a_id
		LEFT JOIN c ON b.id = c.b_id`
	graph, err := Parse(sql)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(graph.Nodes) != 3 || len(graph.Edges) != 2 {
		t.Errorf("Expected 3 nodes and 2 edges, got %d and %d", len(graph.Nodes), len(graph.Edges))
	}
}

// =============================================================================
// Test: recognized-but-rejected clauses are named
// =============================================================================

func TestSegment_RejectedClausesAreNamed(t *testing.T) {
	cases := map[string]string{
		"SELECT id FROM users ORDER BY id":              "ORDER BY",
		"SELECT id FROM users LIMIT 10":                 "LIMIT",
		"SELECT id FROM users GROUP BY id HAVING x = 1": "HAVING",
	}
	for sql, feature := range cases {
		expectKind(t, sql, KindUnsupported, feature)
	}
}

// =============================================================================
// Test: unsupported-construct detector
// =============================================================================

func TestDetect_CTE(t *testing.T) {
	expectKind(t, "WITH t AS (SELECT id FROM users) SELECT id FROM t", KindUnsupported, "CTE")
}

func TestDetect_Union(t *testing.T) {
	expectKind(t, "SELECT id FROM users UNION SELECT id FROM admins", KindUnsupported, "UNION")
}

func TestDetect_WindowFunction(t *testing.T) {
	expectKind(t, "SELECT rank() OVER (PARTITION BY team) FROM players", KindUnsupported, "window")
}

func TestDetect_SubqueryInWhere(t *testing.T) {
	expectKind(t, "SELECT id FROM users WHERE id = (SELECT id FROM admins)", KindUnsupported, "subquer")
}

func TestDetect_SubqueryInFrom(t *testing.T) {
	expectKind(t, "SELECT id FROM (SELECT id FROM users)", KindUnsupported, "subquer")
}

func TestDetect_NeverGenericSyntaxError(t *testing.T) {
	// Every construct the detector names must surface as an
	// unsupported-feature error, never as a syntax failure.
	queries := []string{
		"WITH t AS (SELECT 1) SELECT id FROM t",
		"SELECT id FROM users UNION ALL SELECT id FROM admins",
		"SELECT sum(x) OVER () FROM t",
		"SELECT id FROM users WHERE id = (SELECT max(id) FROM users)",
	}
	for _, sql := range queries {
		_, err := Parse(sql)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, expected unsupported-feature error", sql)
			continue
		}
		if !IsUnsupportedError(err) {
			t.Errorf("Parse(%q): expected unsupported-feature error, got %v", sql, err)
		}
	}
}
