package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlviz/internal/cli/config"
)

func execRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_ParseSubcommand(t *testing.T) {
	out, _, err := execRoot(t, "parse", "-o", "json", "SELECT id FROM users")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"users"`) {
		t.Errorf("output should contain the users node, got: %s", out)
	}
}

func TestRootCmd_RenderSubcommand(t *testing.T) {
	out, _, err := execRoot(t, "render", "SELECT id FROM users")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "digraph") {
		t.Errorf("output should contain DOT, got: %s", out)
	}
}

func TestRootCmd_GlobalOutputFlag(t *testing.T) {
	out, _, err := execRoot(t, "-o", "text", "parse", "SELECT id FROM users")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Tables (1)") {
		t.Errorf("global -o text should select table output, got: %s", out)
	}
}

func TestRootCmd_InvalidOutputRejected(t *testing.T) {
	t.Setenv("SQLVIZ_OUTPUT", "yaml")
	_, _, err := execRoot(t, "parse", "SELECT id FROM users")
	if err == nil {
		t.Fatal("Execute() should reject an invalid output format")
	}
	if !strings.Contains(err.Error(), "invalid output format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, _, err := execRoot(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "sqlviz") {
		t.Errorf("version output should contain the binary name, got: %s", out)
	}
}

func TestRootCmd_UnsupportedQueryFails(t *testing.T) {
	_, _, err := execRoot(t, "parse", "SELECT id FROM a UNION SELECT id FROM b")
	if err == nil {
		t.Fatal("Execute() should fail for a UNION query")
	}
	if !strings.Contains(err.Error(), "UNION") {
		t.Errorf("error should name the feature, got: %v", err)
	}
}
