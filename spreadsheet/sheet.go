// Package spreadsheet implements the sparse-grid evaluation engine: cells
// addressed by position.Position, holding text or formula content, wired
// together by a dependency graph that memoizes formula results and
// invalidates them transitively on edit. It is grounded on
// original_source's Sheet/Cell split (sheet.cpp, cell.h), adapted from a
// dense growable 2D array to a sparse map since this module drops the
// original's capacity-rectangle bookkeeping as an internal storage detail
// rather than a public invariant.
package spreadsheet

import (
	"gridsheet/cellerror"
	"gridsheet/position"
)

// Sheet is a single grid of cells. It is not safe for concurrent use;
// spec.md's non-goals exclude concurrent multi-agent mutation, so unlike
// the teacher's mutex-guarded engine this type carries no lock.
type Sheet struct {
	cells         map[position.Position]*Cell
	printableSize position.Size
}

// NewSheet returns an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[position.Position]*Cell)}
}

// SetCell parses and installs text at pos. A formula that would introduce
// a circular dependency is rejected and the cell is left exactly as it
// was before the call (transactional rollback per spec invariant 3).
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		return &cellerror.InvalidPositionError{Row: pos.Row, Col: pos.Col}
	}

	trial := newCell(s)
	if err := trial.Set(text); err != nil {
		return err
	}

	existing := s.cells[pos]
	if existing != nil {
		s.unregisterDependencies(pos, existing)
	}

	if trial.kind == Formula {
		if s.introducesCycle(pos, trial.GetReferencedCells()) {
			if existing != nil {
				s.registerDependencies(pos, existing)
			}
			return &cellerror.CircularDependencyError{At: pos.String()}
		}
	}

	cell := s.ensureCell(pos)
	cell.kind = trial.kind
	cell.text = trial.text
	cell.formula = trial.formula
	cell.cache = nil

	if cell.kind == Formula {
		s.registerDependencies(pos, cell)
	}

	if cell.kind == Empty {
		s.recomputePrintableSize()
	} else {
		s.printableSize = s.printableSize.Grow(pos)
	}
	s.invalidateCacheTransitive(pos)

	return nil
}

// GetCell reports the value of the cell at pos. A position that holds no
// cell reads as the number 0; GetCell never creates a cell. Empty
// placeholders are created only by registerDependencies, when a formula
// references a previously untouched position.
func (s *Sheet) GetCell(pos position.Position) (CellValue, error) {
	if !pos.IsValid() {
		return CellValue{}, &cellerror.InvalidPositionError{Row: pos.Row, Col: pos.Col}
	}
	cell := s.cells[pos]
	if cell == nil {
		return numberValue(0), nil
	}
	return cell.GetValue(), nil
}

// GetCellText returns the raw/canonical text of the cell at pos, or "" if
// the cell is empty or has never been set.
func (s *Sheet) GetCellText(pos position.Position) (string, error) {
	if !pos.IsValid() {
		return "", &cellerror.InvalidPositionError{Row: pos.Row, Col: pos.Col}
	}
	cell := s.cells[pos]
	if cell == nil {
		return "", nil
	}
	return cell.GetText(), nil
}

// ClearCell empties the cell at pos. If other cells still depend on it
// the Position is kept, reset to Empty, so their dependents bookkeeping
// stays valid; otherwise the map entry is dropped entirely. This resolves
// spec.md's Open Question on dangling dependents.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return &cellerror.InvalidPositionError{Row: pos.Row, Col: pos.Col}
	}
	cell := s.cells[pos]
	if cell == nil {
		return nil
	}

	s.unregisterDependencies(pos, cell)
	cell.kind = Empty
	cell.text = ""
	cell.formula = nil
	cell.cache = nil

	if cell.IsReferenced() {
		s.invalidateCacheTransitive(pos)
		s.recomputePrintableSize()
	} else {
		delete(s.cells, pos)
		s.recomputePrintableSize()
	}

	return nil
}

// GetPrintableSize returns the smallest bounding box containing every
// currently non-empty cell, or the zero Size if none.
func (s *Sheet) GetPrintableSize() position.Size {
	return s.printableSize
}

func (s *Sheet) ensureCell(pos position.Position) *Cell {
	cell := s.cells[pos]
	if cell == nil {
		cell = newCell(s)
		s.cells[pos] = cell
	}
	return cell
}

// registerDependencies adds pos as a dependent of every cell it
// references, auto-creating placeholder Empty cells for references that
// don't exist yet (so a dependents edge always has somewhere to live).
func (s *Sheet) registerDependencies(pos position.Position, cell *Cell) {
	for _, ref := range cell.GetReferencedCells() {
		target := s.ensureCell(ref)
		target.addDependent(pos)
	}
}

func (s *Sheet) unregisterDependencies(pos position.Position, cell *Cell) {
	for _, ref := range cell.GetReferencedCells() {
		if target := s.cells[ref]; target != nil {
			target.removeDependent(pos)
		}
	}
}

// introducesCycle reports whether adding an edge from pos to each of refs
// would create a cycle, via DFS over existing formula dependencies with a
// visited set, giving O(V+E) detection per spec.
func (s *Sheet) introducesCycle(pos position.Position, refs []position.Position) bool {
	visited := make(map[position.Position]bool)
	var visit func(p position.Position) bool
	visit = func(p position.Position) bool {
		if p == pos {
			return true
		}
		if visited[p] {
			return false
		}
		visited[p] = true
		cell := s.cells[p]
		if cell == nil {
			return false
		}
		for _, next := range cell.GetReferencedCells() {
			if visit(next) {
				return true
			}
		}
		return false
	}
	for _, ref := range refs {
		if visit(ref) {
			return true
		}
	}
	return false
}

// invalidateCacheTransitive is the entry point for any edit at pos: it
// unconditionally walks into pos's direct dependents and invalidates
// their caches, then recurses with the cache-gated helper below.
//
// original_source's ResetCache gates this very first step on pos's own
// IsCached() state, which is always false for a Text/Empty cell — so
// editing a literal cell that other formulas reference would silently
// never invalidate them. Splitting the unconditional first hop from the
// cache-gated recursion below fixes that while keeping the gate's
// efficiency benefit for everything past the entry point.
func (s *Sheet) invalidateCacheTransitive(pos position.Position) {
	origin := s.cells[pos]
	if origin == nil {
		return
	}
	for dep := range origin.dependents {
		s.invalidateDependentCache(dep)
	}
}

// invalidateDependentCache invalidates dep and recurses into its own
// dependents, short-circuiting as soon as it finds a cell with no cache
// to clear, since such a cell's dependents must already be clear too.
func (s *Sheet) invalidateDependentCache(dep position.Position) {
	cell := s.cells[dep]
	if cell == nil || !cell.hasCache() {
		return
	}
	cell.InvalidateCache()
	for next := range cell.dependents {
		s.invalidateDependentCache(next)
	}
}

// recomputePrintableSize rescans every remaining non-empty cell to find
// the new bounding box, skipping Empty-kind placeholders (dependency
// targets kept only because something still references them). Needed
// after ClearCell, and after SetCell installs empty text, since either
// may remove a cell from the box's frontier; any other SetCell grows the
// box incrementally instead.
func (s *Sheet) recomputePrintableSize() {
	var size position.Size
	for pos, cell := range s.cells {
		if cell.Kind() == Empty {
			continue
		}
		size = size.Grow(pos)
	}
	s.printableSize = size
}
