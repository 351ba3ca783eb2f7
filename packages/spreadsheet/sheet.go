package spreadsheet

import (
	"bufio"
	"fmt"
	"io"
)

// AppErrorCode represents gRPC-style error codes for application-level errors.
// note that we are skipping error codes that don't make sense for our use-case,
// like unauthenticated, or permission denied.
type AppErrorCode int

const (
	// InvalidArgument indicates client specified an invalid argument, such
	// as a formula that does not parse.
	InvalidArgument AppErrorCode = 3

	// FailedPrecondition indicates operation was rejected because the
	// system is not in a state required for the operation's execution.
	FailedPrecondition AppErrorCode = 9

	// OutOfRange means operation was attempted past the valid range.
	OutOfRange AppErrorCode = 11
)

// AppError represents errors at the application level (not
// spreadsheet formula errors)
type AppError struct {
	Code    AppErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches any AppError with the same code, so callers can test against
// the sentinels below with errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// NewApplicationError creates a new application error
func NewApplicationError(code AppErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

var (
	ErrInvalidPosition    = NewApplicationError(OutOfRange, "invalid position")
	ErrCircularDependency = NewApplicationError(FailedPrecondition, "circular dependency")
	ErrFormulaSyntax      = NewApplicationError(InvalidArgument, "formula syntax error")
)

func syntaxError(message string) error {
	return NewApplicationError(InvalidArgument, "syntax error: "+message)
}

func invalidPositionError(pos Position) error {
	return NewApplicationError(OutOfRange, fmt.Sprintf("invalid position: row %d, col %d", pos.Row, pos.Col))
}

// Sheet is a single grid of cells. it combines storage, parsing, dependency
// tracking and evaluation behind SetCell/GetCell/ClearCell. it is not safe
// for concurrent use.
type Sheet struct {
	cells *Worksheet

	// printable bounds: grown whenever a cell is stored, recomputed on
	// demand after one is removed
	printable Size
	sizeStale bool
}

// NewSheet creates an empty sheet
func NewSheet() *Sheet {
	return &Sheet{
		cells: NewWorksheet(),
	}
}

// SetCell assigns text to the cell at pos. text starting with '=' is parsed
// as a formula. structural errors (bad position, syntax, cycle) leave the
// sheet untouched.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return invalidPositionError(pos)
	}

	cell := s.cells.GetCell(pos)
	created := cell == nil
	if created {
		cell = newCell(s, pos)
	}

	if err := cell.Set(text); err != nil {
		return err
	}

	if created {
		s.cells.PutCell(cell)
	}

	s.extendPrintable(pos)
	return nil
}

// GetCell returns the cell at pos, or nil if nothing was ever assigned or
// referenced there
func (s *Sheet) GetCell(pos Position) (CellInterface, error) {
	if !pos.IsValid() {
		return nil, invalidPositionError(pos)
	}

	cell := s.cells.GetCell(pos)
	if cell == nil {
		return nil, nil
	}
	return cell, nil
}

// ClearCell empties the cell at pos. a cell other formulas still read stays
// behind as an empty node; otherwise it is removed.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return invalidPositionError(pos)
	}

	cell := s.cells.GetCell(pos)
	if cell == nil {
		return nil
	}

	cell.Clear()
	if len(cell.incoming) == 0 {
		s.cells.RemoveCell(pos)
		s.sizeStale = true
	} else {
		cell.implicit = true
	}

	return nil
}

// GetPrintableSize returns the smallest A1-anchored rectangle holding every
// stored cell, including empty cells that formulas reference
func (s *Sheet) GetPrintableSize() Size {
	if s.sizeStale {
		s.recomputePrintable()
	}
	return s.printable
}

func (s *Sheet) extendPrintable(pos Position) {
	if s.printable.Rows < pos.Row+1 {
		s.printable.Rows = pos.Row + 1
	}
	if s.printable.Cols < pos.Col+1 {
		s.printable.Cols = pos.Col + 1
	}
}

func (s *Sheet) recomputePrintable() {
	s.printable = Size{}
	for cell := range s.cells.Cells() {
		s.extendPrintable(cell.position)
	}
	s.sizeStale = false
}

// PrintableRange returns the printable region as a range
func (s *Sheet) PrintableRange() *CellRange {
	return &CellRange{
		size:      s.GetPrintableSize(),
		worksheet: s.cells,
	}
}

// PrintValues writes the printable region as tab-separated rows of values
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(cell *Cell) string {
		return FormatValue(cell.GetValue())
	})
}

// PrintTexts writes the printable region as tab-separated rows of cell text
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(cell *Cell) string {
		return cell.GetText()
	})
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	bw := bufio.NewWriter(w)

	for _, row := range s.PrintableRange().Rows() {
		for col, cell := range row {
			if col != 0 {
				bw.WriteByte('\t')
			}
			if cell != nil {
				bw.WriteString(render(cell))
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// CellCount returns the number of cells held, including empty cells kept
// alive by references
func (s *Sheet) CellCount() int {
	return s.cells.GetTotalCells()
}
