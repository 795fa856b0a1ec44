package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlviz/internal/cli/config"
	"github.com/leapstack-labs/sqlviz/internal/testutil"
)

func execParse(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewParseCommand()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	ctx := context.WithValue(context.Background(), config.LoggerKey(), testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestParseCommand_Text(t *testing.T) {
	out, _, err := execParse(t, "-o", "text",
		"SELECT users.id FROM users INNER JOIN orders ON users.id = orders.user_id")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"Tables (2)", "Joins (1)", "users", "orders"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestParseCommand_JSON(t *testing.T) {
	out, _, err := execParse(t, "-o", "json", "SELECT id FROM users WHERE active = 1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var decoded struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(decoded.Nodes) != 1 || decoded.Nodes[0].Name != "users" {
		t.Errorf("unexpected nodes: %+v", decoded.Nodes)
	}
}

func TestParseCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.sql")
	if err := os.WriteFile(path, []byte("SELECT id FROM users"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execParse(t, "-o", "text", "--file", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "users") {
		t.Errorf("output should contain users, got: %s", out)
	}
}

func TestParseCommand_UnsupportedFeature(t *testing.T) {
	_, errOut, err := execParse(t, "-o", "text",
		"WITH t AS (SELECT 1) SELECT id FROM t")
	if err == nil {
		t.Fatal("Execute() should fail for a CTE query")
	}
	if !strings.Contains(errOut, "CTE") {
		t.Errorf("error output should name the feature, got: %s", errOut)
	}
}

func TestParseCommand_NoQuery(t *testing.T) {
	_, _, err := execParse(t, "-o", "text")
	if err == nil {
		t.Fatal("Execute() should fail without a query")
	}
	if !strings.Contains(err.Error(), "no query") {
		t.Errorf("error should mention missing query, got: %v", err)
	}
}
