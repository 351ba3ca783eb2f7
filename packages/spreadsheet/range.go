package spreadsheet

import "iter"

// CellRange is a rectangular block of positions anchored at A1
type CellRange struct {
	size      Size
	worksheet *Worksheet
}

// GetBounds returns the range size
func (r *CellRange) GetBounds() Size {
	return r.size
}

// Iterate yields every position in the range in row-major order, with the
// stored cell or nil when the slot is absent
func (r *CellRange) Iterate() iter.Seq2[Position, *Cell] {
	return func(yield func(Position, *Cell) bool) {
		if r.worksheet == nil {
			return
		}

		for row := 0; row < r.size.Rows; row++ {
			for col := 0; col < r.size.Cols; col++ {
				pos := Position{Row: row, Col: col}
				if !yield(pos, r.worksheet.GetCell(pos)) {
					return
				}
			}
		}
	}
}

// Rows yields each row of the range as a slice of cells (nil for absent
// slots). the slice is reused between rows.
func (r *CellRange) Rows() iter.Seq2[int, []*Cell] {
	return func(yield func(int, []*Cell) bool) {
		row := make([]*Cell, r.size.Cols)
		for pos, cell := range r.Iterate() {
			row[pos.Col] = cell
			if pos.Col == r.size.Cols-1 {
				if !yield(pos.Row, row) {
					return
				}
			}
		}
	}
}
