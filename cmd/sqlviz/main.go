// Package main provides the sqlviz CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlviz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
