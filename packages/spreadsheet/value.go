package spreadsheet

import (
	"strconv"
)

// Value represents a computed cell value.
// types:
//   - float64: numeric values
//   - string: text values
//   - FormulaError: evaluation error values (#DIV/0!, #VALUE!, #REF!)
type Value any

// ErrorCode represents the evaluation error categories, following Excel
// conventions for their display tokens
type ErrorCode uint8

const (
	ErrorCodeRef   ErrorCode = 1 // #REF! - invalid cell reference
	ErrorCodeValue ErrorCode = 2 // #VALUE! - text that cannot be used as a number
	ErrorCodeDiv0  ErrorCode = 3 // #DIV/0! - division by zero or other non-finite arithmetic
)

// ErrorMapper maps error codes to their display tokens
var ErrorMapper = map[ErrorCode]string{
	ErrorCodeRef:   "#REF!",
	ErrorCodeValue: "#VALUE!",
	ErrorCodeDiv0:  "#DIV/0!",
}

// FormulaError is an evaluation error. it is a value, not a failure: it is
// stored as a cell result and flows through dependent formulas.
type FormulaError struct {
	Code ErrorCode
}

func (e FormulaError) Error() string {
	return ErrorMapper[e.Code]
}

func (e FormulaError) String() string {
	return e.Error()
}

// NewFormulaError creates an evaluation error value
func NewFormulaError(code ErrorCode) FormulaError {
	return FormulaError{Code: code}
}

// FormatValue renders a value the way PrintValues does: numbers in shortest
// decimal form, text verbatim, errors as their token
func FormatValue(v Value) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case FormulaError:
		return val.Error()
	case nil:
		return ""
	default:
		return ""
	}
}
