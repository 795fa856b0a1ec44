package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlviz/internal/render"
	"github.com/leapstack-labs/sqlviz/pkg/sqlgraph"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	File      string
	Out       string
	RankDir   string
	GraphName string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [query]",
		Short: "Render a SELECT query as a Graphviz DOT document",
		Long: `Parse a restricted SQL SELECT query and emit its relational graph
as a Graphviz DOT document, suitable for piping into dot:

  sqlviz render "SELECT ..." | dot -Tsvg -o graph.svg

Each table becomes a rounded box listing its selected columns, filter
predicates, and grouping marker; each join becomes a labeled edge.`,
		Example: `  # Emit DOT to stdout
  sqlviz render "SELECT users.id FROM users INNER JOIN orders ON users.id = orders.user_id"

  # Write DOT to a file with top-to-bottom layout
  sqlviz render --file query.sql --out graph.dot --rankdir TB`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", `Read the query from a file ("-" for stdin)`)
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write DOT to a file instead of stdout")
	cmd.Flags().StringVar(&opts.RankDir, "rankdir", "", "Layout direction (LR|TB)")
	cmd.Flags().StringVar(&opts.GraphName, "graph-name", "", "Name of the emitted digraph")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)

	sql, err := readQuery(cmd, args, opts.File)
	if err != nil {
		return err
	}

	graph, err := sqlgraph.Parse(sql)
	if err != nil {
		cmdCtx.Renderer.ParseError(err)
		return err
	}

	// Flags override the configured render options.
	renderOpts := render.Options{
		RankDir:   cmdCtx.Cfg.Render.RankDir,
		GraphName: cmdCtx.Cfg.Render.GraphName,
	}
	if opts.RankDir != "" {
		renderOpts.RankDir = opts.RankDir
	}
	if opts.GraphName != "" {
		renderOpts.GraphName = opts.GraphName
	}

	out := cmd.OutOrStdout()
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	cmdCtx.Logger.Debug("rendering graph",
		"tables", len(graph.Nodes),
		"joins", len(graph.Edges),
		"rankdir", renderOpts.RankDir)

	return render.DOT(out, graph, renderOpts)
}
