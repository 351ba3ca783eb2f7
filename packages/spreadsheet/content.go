package spreadsheet

import "strings"

const (
	formulaSign = '='
	escapeSign  = '\''
)

// cellContent is what the user typed into a cell, classified
type cellContent interface {
	value(r SheetReader) Value
	text() string
	referencedCells() []Position
}

// newContent classifies raw cell text. an empty string is empty content, a
// string starting with '=' and longer than one character is a formula, and
// everything else is text.
func newContent(text string) (cellContent, error) {
	if text == "" {
		return emptyContent{}, nil
	}

	if len(text) > 1 && text[0] == formulaSign {
		formula, err := ParseFormula(text[1:])
		if err != nil {
			return nil, err
		}
		return &formulaContent{formula: formula}, nil
	}

	return textContent{raw: text}, nil
}

type emptyContent struct{}

func (emptyContent) value(SheetReader) Value     { return "" }
func (emptyContent) text() string                { return "" }
func (emptyContent) referencedCells() []Position { return nil }

// textContent holds literal text. a leading apostrophe is kept in the text
// form and stripped from the value.
type textContent struct {
	raw string
}

func (c textContent) value(SheetReader) Value {
	return strings.TrimPrefix(c.raw, string(escapeSign))
}

func (c textContent) text() string {
	return c.raw
}

func (textContent) referencedCells() []Position { return nil }

type formulaContent struct {
	formula *Formula
}

func (c *formulaContent) value(r SheetReader) Value {
	return c.formula.Evaluate(r)
}

func (c *formulaContent) text() string {
	return string(formulaSign) + c.formula.Expression()
}

func (c *formulaContent) referencedCells() []Position {
	return c.formula.GetReferencedCells()
}
