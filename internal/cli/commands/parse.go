package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlviz/internal/cli/output"
	"github.com/leapstack-labs/sqlviz/pkg/sqlgraph"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	File         string
	OutputFormat string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse a SELECT query into its relational graph",
		Long: `Parse a restricted SQL SELECT query and print the resulting
relational graph: the referenced tables, the columns each table owns,
the filter predicates bound to each table, and the join edges.

Unsupported SQL features (subqueries, CTEs, window functions, UNION,
and others) are rejected with an error naming the feature.`,
		Example: `  # Parse a query given as an argument
  sqlviz parse "SELECT users.id FROM users INNER JOIN orders ON users.id = orders.user_id"

  # Parse a query from a file
  sqlviz parse --file query.sql

  # Parse a query from stdin
  cat query.sql | sqlviz parse --file -

  # Output as JSON
  sqlviz parse --output json "SELECT id FROM users"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", `Read the query from a file ("-" for stdin)`)
	cmd.Flags().StringVarP(&opts.OutputFormat, "output", "o", "", "Output format (auto|text|json)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.OutputFormat != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.OutputFormat))
	}

	sql, err := readQuery(cmd, args, opts.File)
	if err != nil {
		return err
	}

	cmdCtx.Logger.Debug("parsing query", "query", summarize(sql))

	graph, err := sqlgraph.Parse(sql)
	if err != nil {
		r.ParseError(err)
		return err
	}

	cmdCtx.Logger.Debug("parsed query",
		"tables", len(graph.Nodes),
		"joins", len(graph.Edges))

	return r.Graph(graph)
}
