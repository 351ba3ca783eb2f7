package spreadsheet

import (
	"fmt"
	"io"
)

// RunnableSheet provides a chainable interface for sheet operations,
// addressing cells in "A1" notation. wraps the standard Sheet and tracks
// errors internally
type RunnableSheet struct {
	sheet   *Sheet
	err     error
	printLn func(string)
}

// NewRunnableSheet creates a new RunnableSheet. printLn is required and will
// be used for all logging operations (Log, CheckError)
func NewRunnableSheet(printLn func(string)) *RunnableSheet {
	return &RunnableSheet{
		sheet:   NewSheet(),
		err:     nil,
		printLn: printLn,
	}
}

// resolve parses an address, reporting malformed ones as invalid positions
func resolve(address string) (Position, error) {
	pos := ParsePosition(address)
	if !pos.IsValid() {
		return NonePosition, NewApplicationError(OutOfRange, fmt.Sprintf("invalid position: %q", address))
	}
	return pos, nil
}

// Set assigns text to a cell (chainable)
func (r *RunnableSheet) Set(address string, text string) *RunnableSheet {
	if r.err != nil {
		return r // no-op if there's already an error
	}

	pos, err := resolve(address)
	if err != nil {
		r.err = err
		return r
	}
	r.err = r.sheet.SetCell(pos, text)
	return r
}

// Clear empties a cell (chainable)
func (r *RunnableSheet) Clear(address string) *RunnableSheet {
	if r.err != nil {
		return r // no-op if there's already an error
	}

	pos, err := resolve(address)
	if err != nil {
		r.err = err
		return r
	}
	r.err = r.sheet.ClearCell(pos)
	return r
}

// cell looks up a cell, recording any error. returns nil for absent cells
func (r *RunnableSheet) cell(address string) CellInterface {
	pos, err := resolve(address)
	if err != nil {
		r.err = err
		return nil
	}

	cell, err := r.sheet.GetCell(pos)
	if err != nil {
		r.err = err
		return nil
	}
	return cell
}

// Value is a helper to get a single value from the chain. absent cells
// yield nil.
// example: val := NewRunnableSheet(printLn).Set("A1", "10").Set("A2", "=A1*2").Value("A2")
func (r *RunnableSheet) Value(address string) Value {
	if r.err != nil {
		return nil
	}

	cell := r.cell(address)
	if cell == nil {
		return nil
	}
	return cell.GetValue()
}

// Text is a helper to get a single cell's text from the chain
func (r *RunnableSheet) Text(address string) string {
	if r.err != nil {
		return ""
	}

	cell := r.cell(address)
	if cell == nil {
		return ""
	}
	return cell.GetText()
}

// Log logs the value of a cell using the provided printLn function (chainable)
func (r *RunnableSheet) Log(address string) *RunnableSheet {
	if r.err != nil {
		return r // no-op if there's already an error
	}

	cell := r.cell(address)
	if r.err != nil {
		return r
	}

	// fmt the output
	var output string
	if cell == nil {
		output = fmt.Sprintf("%s: <empty>", address)
	} else {
		output = fmt.Sprintf("%s: %s", address, FormatValue(cell.GetValue()))
	}

	r.printLn(output)
	return r
}

// LogText logs the text of a cell using the provided printLn function
// (chainable)
func (r *RunnableSheet) LogText(address string) *RunnableSheet {
	if r.err != nil {
		return r // no-op if there's already an error
	}

	cell := r.cell(address)
	if r.err != nil {
		return r
	}

	text := "<empty>"
	if cell != nil {
		text = cell.GetText()
	}

	r.printLn(fmt.Sprintf("%s: %s", address, text))
	return r
}

// PrintValues writes the printable region's values to w (chainable)
func (r *RunnableSheet) PrintValues(w io.Writer) *RunnableSheet {
	if r.err != nil {
		return r // no-op if there's already an error
	}
	r.err = r.sheet.PrintValues(w)
	return r
}

// PrintTexts writes the printable region's texts to w (chainable)
func (r *RunnableSheet) PrintTexts(w io.Writer) *RunnableSheet {
	if r.err != nil {
		return r // no-op if there's already an error
	}
	r.err = r.sheet.PrintTexts(w)
	return r
}

// Error returns the current error state
func (r *RunnableSheet) Error() error {
	return r.err
}

// CheckError logs the current error using the printLn function (chainable)
func (r *RunnableSheet) CheckError() *RunnableSheet {
	if r.err != nil {
		r.printLn(fmt.Sprintf("ERROR: %v", r.err))
	} else {
		r.printLn("No errors")
	}
	return r
}

// Sheet returns the underlying sheet. use with caution as it bypasses error
// tracking.
func (r *RunnableSheet) Sheet() *Sheet {
	return r.sheet
}

// Reset clears the error state (chainable)
func (r *RunnableSheet) Reset() *RunnableSheet {
	r.err = nil
	return r
}

// Then allows conditional execution based on current error state
func (r *RunnableSheet) Then(fn func(*RunnableSheet) *RunnableSheet) *RunnableSheet {
	if r.err != nil {
		return r // skip if there's an error
	}
	return fn(r)
}

// OnError allows error handling in the chain
func (r *RunnableSheet) OnError(fn func(error) error) *RunnableSheet {
	if r.err != nil {
		r.err = fn(r.err)
	}
	return r
}

// Must panics if there's an error (chainable). useful for ensuring
// critical operations succeed
func (r *RunnableSheet) Must() *RunnableSheet {
	if r.err != nil {
		panic(r.err)
	}
	return r
}
