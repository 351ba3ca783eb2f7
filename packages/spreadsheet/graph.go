package spreadsheet

// the dependency graph lives on the cells themselves (Cell.outgoing and
// Cell.incoming); these are the walks the sheet runs over it.

// reaches reports whether target is one of from, or can be reached from any
// of them by following outgoing edges. the graph is acyclic, so a visited
// set only keeps shared sub-graphs from being walked twice.
func (s *Sheet) reaches(from []Position, target Position) bool {
	visited := make(map[Position]struct{})

	var visit func(pos Position) bool
	visit = func(pos Position) bool {
		if pos == target {
			return true
		}
		if _, alreadyVisited := visited[pos]; alreadyVisited {
			return false
		}
		visited[pos] = struct{}{}

		cell := s.cells.GetCell(pos)
		if cell == nil {
			return false
		}

		for _, next := range cell.outgoing {
			if visit(next) {
				return true
			}
		}
		return false
	}

	for _, pos := range from {
		if visit(pos) {
			return true
		}
	}
	return false
}

// GetAllDependents returns every position whose value depends on pos,
// directly or transitively
func (s *Sheet) GetAllDependents(pos Position) []Position {
	visited := make(map[Position]struct{})
	var result []Position

	s.collectDependents(pos, visited, &result)
	return result
}

// collectDependents recursively collects all dependents
func (s *Sheet) collectDependents(pos Position, visited map[Position]struct{}, result *[]Position) {
	if _, alreadyVisited := visited[pos]; alreadyVisited {
		return
	}
	visited[pos] = struct{}{}

	cell := s.cells.GetCell(pos)
	if cell == nil {
		return
	}

	for dependentPos := range cell.incoming {
		if _, alreadyVisited := visited[dependentPos]; !alreadyVisited {
			*result = append(*result, dependentPos)
			s.collectDependents(dependentPos, visited, result)
		}
	}
}

// invalidate drops the memoized value of cell and of everything downstream
// of it. each cell is visited once, so diamonds stay linear.
func (s *Sheet) invalidate(cell *Cell) {
	cell.invalidateCache()

	for _, pos := range s.GetAllDependents(cell.position) {
		if dependent := s.cells.GetCell(pos); dependent != nil {
			dependent.invalidateCache()
		}
	}
}

// materialize returns the cell at pos, creating an empty implicit one if the
// position has never been assigned
func (s *Sheet) materialize(pos Position) *Cell {
	if cell := s.cells.GetCell(pos); cell != nil {
		return cell
	}

	cell := newCell(s, pos)
	cell.implicit = true
	s.cells.PutCell(cell)
	s.extendPrintable(pos)
	return cell
}

// cleanupCellIfEmpty removes an implicit cell once it has no content and no
// dependents
func (s *Sheet) cleanupCellIfEmpty(cell *Cell) {
	if !cell.implicit || !cell.isEmpty() || len(cell.incoming) > 0 {
		return
	}
	s.cells.RemoveCell(cell.position)
	s.sizeStale = true
}
