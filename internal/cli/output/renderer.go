// Package output provides rendering helpers for CLI command output.
//
// Output adapts to the environment: styled tables on a terminal,
// machine-readable JSON when piped or when requested explicitly.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/sqlviz/pkg/sqlgraph"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks text on a terminal and JSON otherwise.
	ModeAuto Mode = "auto"
	// ModeText renders styled tables.
	ModeText Mode = "text"
	// ModeJSON renders machine-readable JSON.
	ModeJSON Mode = "json"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errKindStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Renderer writes command output in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer writing to out and errOut.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// EffectiveMode resolves ModeAuto against the output destination.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return ModeText
		}
	}
	return ModeJSON
}

// Graph writes the relational graph in the effective mode.
func (r *Renderer) Graph(graph *sqlgraph.Graph) error {
	if r.EffectiveMode() == ModeJSON {
		return r.GraphJSON(graph)
	}
	return r.GraphText(graph)
}

// GraphJSON writes the graph as indented JSON.
func (r *Renderer) GraphJSON(graph *sqlgraph.Graph) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(graph)
}

// GraphText writes the graph as a tables section and a joins section.
func (r *Renderer) GraphText(graph *sqlgraph.Graph) error {
	fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("Tables (%d)", len(graph.Nodes))))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Columns", "Filters", "Grouped"})
	for _, node := range graph.Nodes {
		t.AppendRow(table.Row{
			node.Name,
			joinColumns(node.Columns),
			joinFilters(node.Filters),
			formatBool(node.Grouped),
		})
	}
	t.Render()

	if len(graph.Edges) == 0 {
		fmt.Fprintln(r.out, dimStyle.Render("(no joins)"))
		return nil
	}

	fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("Joins (%d)", len(graph.Edges))))

	e := table.NewWriter()
	e.SetOutputMirror(r.out)
	e.SetStyle(table.StyleLight)
	e.AppendHeader(table.Row{"From", "Type", "To", "Condition"})
	for _, edge := range graph.Edges {
		e.AppendRow(table.Row{edge.From, string(edge.Type), edge.To, edge.Condition.String()})
	}
	e.Render()
	return nil
}

// ParseError writes a parse diagnostic to the error stream, styled in
// text mode and as a JSON object in JSON mode.
func (r *Renderer) ParseError(err error) {
	if r.EffectiveMode() == ModeJSON {
		enc := json.NewEncoder(r.errOut)
		enc.SetIndent("", "  ")
		_ = enc.Encode(errorJSON(err))
		return
	}

	var perr *sqlgraph.Error
	if !errors.As(err, &perr) {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.errOut, "%s %s\n", errKindStyle.Render(perr.Kind.String()+":"), perr.Message)
	if perr.Pos.Line > 0 {
		fmt.Fprintln(r.errOut, dimStyle.Render(fmt.Sprintf("  at line %d, column %d", perr.Pos.Line, perr.Pos.Column)))
	}
	if perr.Fragment != "" {
		fmt.Fprintln(r.errOut, dimStyle.Render("  near: "+perr.Fragment))
	}
}

// errorJSON shapes a diagnostic for machine consumption.
func errorJSON(err error) map[string]any {
	out := map[string]any{"error": err.Error()}
	var perr *sqlgraph.Error
	if errors.As(err, &perr) {
		out["kind"] = perr.Kind.String()
		out["message"] = perr.Message
		if perr.Fragment != "" {
			out["fragment"] = perr.Fragment
		}
		if perr.Pos.Line > 0 {
			out["line"] = perr.Pos.Line
			out["column"] = perr.Pos.Column
		}
	}
	return out
}

func joinColumns(cols []*sqlgraph.ColumnRef) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Column
		if c.Alias != "" {
			names[i] += " AS " + c.Alias
		}
	}
	return strings.Join(names, ", ")
}

func joinFilters(filters []*sqlgraph.Predicate) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = f.String()
	}
	return strings.Join(parts, " AND ")
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
