// Package config provides configuration management for the sqlviz CLI.
//
// Configuration is layered: built-in defaults, then an optional
// sqlviz.yaml file, then SQLVIZ_-prefixed environment variables, then
// command-line flags. Later layers override earlier ones.
package config

import "fmt"

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	Render       Render `koanf:"render"`
}

// Render holds options for DOT emission.
type Render struct {
	RankDir   string `koanf:"rankdir"`
	GraphName string `koanf:"graph_name"`
}

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=json
	DefaultRankDir   = "LR"
	DefaultGraphName = "sqlviz"
)

// Validate checks the configuration for values no command could act on.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("invalid output format %q (valid: auto, text, json)", c.OutputFormat)
	}
	switch c.Render.RankDir {
	case "LR", "TB":
	default:
		return fmt.Errorf("invalid rankdir %q (valid: LR, TB)", c.Render.RankDir)
	}
	return nil
}
