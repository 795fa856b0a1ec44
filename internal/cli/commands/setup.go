package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlviz/internal/cli/config"
	"github.com/leapstack-labs/sqlviz/internal/cli/output"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's
// configuration and context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		OutputFormat: getEnvOrDefault("SQLVIZ_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("SQLVIZ_VERBOSE") == "true",
		Render: config.Render{
			RankDir:   getEnvOrDefault("SQLVIZ_RENDER_RANKDIR", config.DefaultRankDir),
			GraphName: getEnvOrDefault("SQLVIZ_RENDER_GRAPH_NAME", config.DefaultGraphName),
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// readQuery returns the SQL text for a command: the argument if given,
// the file named by --file otherwise, or stdin when the file is "-".
func readQuery(cmd *cobra.Command, args []string, filePath string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if filePath == "" {
		return "", fmt.Errorf("no query given: pass it as an argument or via --file")
	}
	if filePath == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read query from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read query file: %w", err)
	}
	return string(data), nil
}

// summarize compacts a query for log output.
func summarize(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if len(s) > 80 {
		s = s[:80] + "..."
	}
	return s
}
