// sheetcalc evaluates spreadsheet scripts and formulas from the command line.
package main

import (
	"os"

	"github.com/vogtb/sheetcalc/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
