package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "macrolens",
	Short: "MacroLens - motor de sesgo macro y correlaciones",
	Long: `MacroLens Unified CLI

Macro bias and correlation engine for FX, metals and indices.
Scores a weighted macro factor set per asset, maintains rolling
correlations against the dollar benchmark and serves tactical
signals with quality diagnostics.

Usage:
  go run ./cmd/macrolens [command]

Examples:
  go run ./cmd/macrolens api
  go run ./cmd/macrolens scheduler start
  go run ./cmd/macrolens bias EURUSD
  go run ./cmd/macrolens check`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
