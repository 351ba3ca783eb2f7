// Package cli implements the sheetcalc command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// configPath is the --config flag shared by every command
var configPath string

var rootCmd = &cobra.Command{
	Use:   "sheetcalc",
	Short: "Evaluate spreadsheet formulas",
	Long: `sheetcalc drives a single sheet of cells from the command line.

Cells hold numbers, text or formulas ("=A1+B2*2"). Formulas are re-evaluated
when the cells they read change, and cycles are rejected.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a TOML config file (default "+DefaultConfigFile+" if present)")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
