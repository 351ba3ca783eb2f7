package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	runKeepGoing bool
	runPrint     string
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a sheet script",
	Long: `Run a sheet script from a file, or from stdin when no file (or "-") is given.

Directives, one per line:
  set <A1> <text>      assign text; "=..." is a formula, "'..." escapes
  clear <A1>           empty a cell
  get <A1>             print the cell's value
  text <A1>            print the cell's text
  print values|texts   print the printable region, tab separated
  size                 print the printable size as <rows>x<cols>

Blank lines and lines starting with # are ignored.`,
	Example: `  sheetcalc run budget.sheet
  printf 'set A1 2\nset A2 =A1^10\nget A2\n' | sheetcalc run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVarP(&runKeepGoing, "keep-going", "k", false, "continue after a failing line")
	runCmd.Flags().StringVar(&runPrint, "print", "", "print the sheet when done: values, texts, both or none")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	// flags override the file
	if cmd.Flags().Changed("keep-going") {
		cfg.KeepGoing = runKeepGoing
	}
	if cmd.Flags().Changed("print") {
		cfg.Print = runPrint
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	in := cmd.InOrStdin()
	opts := RunOptions{
		KeepGoing: cfg.KeepGoing,
		Errors:    cmd.ErrOrStderr(),
	}

	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		in = f
	} else if isTerminal(in) {
		opts.Prompt = cfg.Prompt
		opts.Prompts = cmd.ErrOrStderr()
	}

	interp := NewInterpreter(cmd.OutOrStdout())
	runErr := interp.Run(in, opts)

	// a stopped script skips the final dump
	if runErr != nil && !cfg.KeepGoing {
		return runErr
	}
	if err := interp.Dump(cfg.Print); err != nil {
		return fmt.Errorf("printing sheet: %w", err)
	}
	return runErr
}

// isTerminal reports whether r is an interactive terminal
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
