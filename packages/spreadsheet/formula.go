package spreadsheet

import (
	"errors"
	"slices"
	"strconv"
)

// SheetReader is the lookup capability formulas evaluate against. GetCell
// returns a nil cell, not an error, for a valid position with nothing in it.
type SheetReader interface {
	GetCell(pos Position) (CellInterface, error)
}

// Formula is a parsed arithmetic expression together with the positions it
// reads
type Formula struct {
	ast  ASTNode
	refs []Position
}

// ParseFormula parses an expression (without the leading '=')
func ParseFormula(expression string) (*Formula, error) {
	tokens, err := NewLexer(expression).Tokenize()
	if err != nil {
		return nil, err
	}

	ast, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}

	var refs []Position
	ast.collectCells(&refs)
	slices.SortFunc(refs, Position.Compare)
	refs = slices.Compact(refs)

	return &Formula{ast: ast, refs: refs}, nil
}

// Evaluate computes the formula against r. the result is always a float64 or
// a FormulaError.
func (f *Formula) Evaluate(r SheetReader) Value {
	result, err := f.ast.Eval(r)
	if err != nil {
		var formulaErr FormulaError
		if errors.As(err, &formulaErr) {
			return formulaErr
		}
		return NewFormulaError(ErrorCodeValue)
	}
	return result
}

// Expression returns the canonical text of the expression, without the
// leading '='
func (f *Formula) Expression() string {
	return f.ast.ToString()
}

// GetReferencedCells returns the positions the formula reads, deduplicated
// and in row-major order. out-of-range references appear as NonePosition.
func (f *Formula) GetReferencedCells() []Position {
	return slices.Clone(f.refs)
}

// toNumber coerces a referenced cell's value for arithmetic. text counts
// only when it is empty (zero) or made entirely of decimal digits.
func toNumber(value Value) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		if v == "" {
			return 0, nil
		}
		for i := 0; i < len(v); i++ {
			if !isDigit(v[i]) {
				return 0, NewFormulaError(ErrorCodeValue)
			}
		}
		num, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, NewFormulaError(ErrorCodeValue)
		}
		return num, nil
	case FormulaError:
		return 0, v
	case nil:
		return 0, nil
	default:
		return 0, NewFormulaError(ErrorCodeValue)
	}
}
