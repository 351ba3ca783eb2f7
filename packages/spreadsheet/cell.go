package spreadsheet

import (
	"fmt"
	"maps"
	"slices"
)

// CellInterface is the read-only view of a cell handed to callers
type CellInterface interface {
	// GetValue returns the computed value: float64, string or FormulaError
	GetValue() Value
	// GetText returns the text form of the content, formulas in canonical form
	GetText() string
	// GetReferencedCells returns the positions this cell's formula reads
	GetReferencedCells() []Position
	// GetDependentCells returns the positions of cells whose formulas read
	// this cell
	GetDependentCells() []Position
}

// Cell is a node of the sheet's dependency graph. it owns its content, the
// sorted list of positions it reads (outgoing) and the set of positions that
// read it (incoming), and memoizes its last numeric value.
type Cell struct {
	sheet    *Sheet
	position Position
	content  cellContent

	outgoing []Position
	incoming map[Position]struct{}

	cache    float64
	hasCache bool

	// implicit is set for cells that exist only because a formula
	// referenced them; they are dropped once nothing references them
	implicit bool
}

func newCell(sheet *Sheet, pos Position) *Cell {
	return &Cell{
		sheet:    sheet,
		position: pos,
		content:  emptyContent{},
		incoming: make(map[Position]struct{}),
	}
}

// Set replaces the cell's content. on error the cell and the graph are left
// exactly as they were.
func (c *Cell) Set(text string) error {
	content, err := newContent(text)
	if err != nil {
		return err
	}

	refs := content.referencedCells()
	for _, ref := range refs {
		if !ref.IsValid() {
			return NewApplicationError(OutOfRange, fmt.Sprintf("%s: formula references a cell outside the sheet", c.position))
		}
	}

	if c.sheet.reaches(refs, c.position) {
		return NewApplicationError(FailedPrecondition, fmt.Sprintf("%s: circular dependency", c.position))
	}

	c.content = content
	c.implicit = false
	c.setReferences(refs)
	c.sheet.invalidate(c)
	return nil
}

// Clear resets the content to empty and invalidates dependents
func (c *Cell) Clear() {
	c.content = emptyContent{}
	c.setReferences(nil)
	c.sheet.invalidate(c)
}

// setReferences replaces the outgoing edges with refs (sorted, deduplicated)
// and keeps the incoming sets of both old and new targets reciprocal
func (c *Cell) setReferences(refs []Position) {
	for _, old := range c.outgoing {
		if _, found := slices.BinarySearchFunc(refs, old, Position.Compare); found {
			continue
		}
		if target := c.sheet.cells.GetCell(old); target != nil {
			delete(target.incoming, c.position)
			c.sheet.cleanupCellIfEmpty(target)
		}
	}

	for _, ref := range refs {
		target := c.sheet.materialize(ref)
		target.incoming[c.position] = struct{}{}
	}

	c.outgoing = refs
}

func (c *Cell) GetValue() Value {
	if c.hasCache {
		return c.cache
	}

	value := c.content.value(c.sheet)
	if num, ok := value.(float64); ok {
		c.cache = num
		c.hasCache = true
	}
	return value
}

func (c *Cell) GetText() string {
	return c.content.text()
}

func (c *Cell) GetReferencedCells() []Position {
	return slices.Clone(c.outgoing)
}

func (c *Cell) GetDependentCells() []Position {
	return slices.SortedFunc(maps.Keys(c.incoming), Position.Compare)
}

// Position returns where the cell lives
func (c *Cell) Position() Position {
	return c.position
}

func (c *Cell) invalidateCache() {
	c.cache = 0
	c.hasCache = false
}

func (c *Cell) isEmpty() bool {
	_, empty := c.content.(emptyContent)
	return empty
}
