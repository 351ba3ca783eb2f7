package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vogtb/sheetcalc/packages/spreadsheet"
)

// maxLineSize caps a single script line; long text values go past
// bufio's 64 KiB default
const maxLineSize = 16 << 20

var (
	errUnknownDirective = errors.New("unknown directive")
	errMissingArgument  = errors.New("missing argument")
)

// Interpreter executes sheet script directives, one line at a time, against a
// single sheet.
//
//	set <A1> <text>      assign text (verbatim after one space, may be empty)
//	clear <A1>           empty a cell
//	get <A1>             print "A1: <value>"
//	text <A1>            print "A1: <text>"
//	print values|texts   print the printable region
//	size                 print "<rows>x<cols>"
//
// blank lines and lines starting with '#' are ignored.
type Interpreter struct {
	sheet *spreadsheet.RunnableSheet
	out   io.Writer
}

// NewInterpreter creates an interpreter over an empty sheet writing results
// to out.
func NewInterpreter(out io.Writer) *Interpreter {
	return &Interpreter{
		sheet: spreadsheet.NewRunnableSheet(func(line string) {
			fmt.Fprintln(out, line)
		}),
		out: out,
	}
}

// Sheet returns the sheet being driven
func (in *Interpreter) Sheet() *spreadsheet.Sheet {
	return in.sheet.Sheet()
}

// Exec runs one line. a failed directive leaves the sheet as it was before
// the line.
func (in *Interpreter) Exec(line string) error {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	directive, rest, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	defer in.sheet.Reset()

	switch directive {
	case "set":
		address, text, _ := strings.Cut(rest, " ")
		if address == "" {
			return fmt.Errorf("set: %w: cell address", errMissingArgument)
		}
		in.sheet.Set(address, text)
	case "clear":
		address, err := singleArgument(directive, rest)
		if err != nil {
			return err
		}
		in.sheet.Clear(address)
	case "get":
		address, err := singleArgument(directive, rest)
		if err != nil {
			return err
		}
		in.sheet.Log(address)
	case "text":
		address, err := singleArgument(directive, rest)
		if err != nil {
			return err
		}
		in.sheet.LogText(address)
	case "print":
		mode, err := singleArgument(directive, rest)
		if err != nil {
			return err
		}
		switch mode {
		case PrintValues:
			in.sheet.PrintValues(in.out)
		case PrintTexts:
			in.sheet.PrintTexts(in.out)
		default:
			return fmt.Errorf("print: want %q or %q, got %q", PrintValues, PrintTexts, mode)
		}
	case "size":
		size := in.sheet.Sheet().GetPrintableSize()
		fmt.Fprintf(in.out, "%dx%d\n", size.Rows, size.Cols)
	default:
		return fmt.Errorf("%w %q", errUnknownDirective, directive)
	}

	return in.sheet.Error()
}

func singleArgument(directive, rest string) (string, error) {
	argument := strings.TrimSpace(rest)
	if argument == "" {
		return "", fmt.Errorf("%s: %w", directive, errMissingArgument)
	}
	return argument, nil
}

// Dump prints the sheet as selected by mode (see Config.Print)
func (in *Interpreter) Dump(mode string) error {
	sheet := in.sheet.Sheet()
	switch mode {
	case PrintValues:
		return sheet.PrintValues(in.out)
	case PrintTexts:
		return sheet.PrintTexts(in.out)
	case PrintBoth:
		if err := sheet.PrintValues(in.out); err != nil {
			return err
		}
		return sheet.PrintTexts(in.out)
	}
	return nil
}

// RunOptions controls Run.
type RunOptions struct {
	KeepGoing bool
	Prompt    string    // shown before each line when non-empty
	Prompts   io.Writer // where prompts go
	Errors    io.Writer // where failures go when KeepGoing is set
}

// Run executes every line read from r. without KeepGoing it stops at the
// first failing line; with it, failures are reported to opts.Errors and
// counted.
func (in *Interpreter) Run(r io.Reader, opts RunOptions) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	lineNo, failures := 0, 0

	for {
		if opts.Prompt != "" && opts.Prompts != nil {
			fmt.Fprint(opts.Prompts, opts.Prompt)
		}
		if !scanner.Scan() {
			break
		}
		lineNo++

		err := in.Exec(scanner.Text())
		if err == nil {
			continue
		}
		if !opts.KeepGoing {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if opts.Errors != nil {
			fmt.Fprintf(opts.Errors, "line %d: %v\n", lineNo, err)
		}
		failures++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: line %d: %w", lineNo+1, err)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d lines failed", failures, lineNo)
	}
	return nil
}
