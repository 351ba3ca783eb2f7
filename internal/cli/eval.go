package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vogtb/sheetcalc/packages/spreadsheet"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate one formula on an empty sheet",
	Long: `Parse an expression, print its normalized form and its value.

The leading "=" is optional. Cell references read an empty sheet, so they
evaluate to 0.`,
	Example: `  sheetcalc eval "(1+2)*3"
  sheetcalc eval "=-(A1+2)^2"`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	expression := strings.TrimPrefix(strings.TrimSpace(args[0]), "=")

	formula, err := spreadsheet.ParseFormula(expression)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", args[0], err)
	}

	value := formula.Evaluate(spreadsheet.NewSheet())
	fmt.Fprintf(cmd.OutOrStdout(), "=%s\n%s\n", formula.Expression(), spreadsheet.FormatValue(value))
	return nil
}
