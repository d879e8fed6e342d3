// Package storage implements the ordered-set primitive StorageTable is
// built on (spec.md §4.5): cells kept in comparator order, with
// insertion rejecting an equal key and removal/iteration exposed
// through a single cursor type.
package storage

import (
	"sort"

	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/value"
)

// Comparator orders two cells for the purposes of a Storage's ordering
// and duplicate-key rejection. It is built from a table's declared KEY
// columns; see NewKeyComparator.
type Comparator func(a, b value.Cell) int

// Storage is an ordered set of Cells. A nil Comparator puts it in
// insertion-order mode: Insert always appends and never rejects a
// duplicate, matching the "no key columns" fallback of spec.md §4.5 (a
// stable identity comparator behaves as an insert-ordered multiset).
type Storage struct {
	cmp   Comparator
	cells []value.Cell
}

// New returns an empty Storage ordered by cmp (nil for insertion order).
func New(cmp Comparator) *Storage {
	return &Storage{cmp: cmp}
}

// Size returns the number of cells currently stored.
func (s *Storage) Size() int {
	return len(s.cells)
}

// Insert adds cell in comparator order, rejecting it if a cell comparing
// equal is already present. In insertion-order mode it always succeeds.
func (s *Storage) Insert(cell value.Cell) error {
	if s.cmp == nil {
		s.cells = append(s.cells, cell)
		return nil
	}
	idx := s.searchInsertionPoint(cell)
	if idx < len(s.cells) && s.cmp(s.cells[idx], cell) == 0 {
		return errs.Constraint.New("duplicate key")
	}
	s.cells = append(s.cells, value.Cell{})
	copy(s.cells[idx+1:], s.cells[idx:])
	s.cells[idx] = cell
	return nil
}

func (s *Storage) searchInsertionPoint(cell value.Cell) int {
	return sort.Search(len(s.cells), func(i int) bool {
		return s.cmp(s.cells[i], cell) >= 0
	})
}

// Iterate returns a cursor positioned at the first cell (or none, if
// empty).
func (s *Storage) Iterate() *Iterator {
	return &Iterator{s: s}
}

// Range returns a cursor restricted to start <= cell < end; a nil bound
// is open on that side. The storage must be in comparator order for the
// bounds to be meaningful.
func (s *Storage) Range(start, end *value.Cell) *Iterator {
	lo := 0
	if start != nil && s.cmp != nil {
		lo = sort.Search(len(s.cells), func(i int) bool {
			return s.cmp(s.cells[i], *start) >= 0
		})
	}
	hi := len(s.cells)
	if end != nil && s.cmp != nil {
		hi = sort.Search(len(s.cells), func(i int) bool {
			return s.cmp(s.cells[i], *end) >= 0
		})
	}
	if hi < lo {
		hi = lo
	}
	return &Iterator{s: s, idx: lo, end: hi, bounded: true}
}

// Iterator is Storage's single cursor type: HasValue is idempotent,
// Current returns the cell under the cursor, Advance moves forward, and
// Remove splices out the current cell and leaves the cursor positioned
// on its successor (spec.md §4.5).
type Iterator struct {
	s       *Storage
	idx     int
	end     int // meaningful only when bounded (set by Range)
	bounded bool
}

func (it *Iterator) limit() int {
	if it.bounded {
		return it.end
	}
	return len(it.s.cells)
}

// HasValue reports whether the cursor is positioned on a cell.
func (it *Iterator) HasValue() bool {
	return it.idx < it.limit()
}

// Current returns the cell under the cursor.
func (it *Iterator) Current() value.Cell {
	return it.s.cells[it.idx]
}

// Advance moves the cursor to the next cell.
func (it *Iterator) Advance() {
	it.idx++
}

// Remove deletes the cell under the cursor and leaves the cursor on its
// successor.
func (it *Iterator) Remove() {
	it.s.cells = append(it.s.cells[:it.idx], it.s.cells[it.idx+1:]...)
	if it.bounded {
		it.end--
	}
}
