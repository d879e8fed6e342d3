package row

import "github.com/relq-db/relq/value"

// Row is a Cell viewed through the Table that produced it (spec.md §3).
// It is short-lived: scoped to one iteration step.
type Row struct {
	Table Table
	Cell  value.Cell
}

// New wraps a Cell as a Row bound to table.
func New(table Table, cell value.Cell) *Row {
	return &Row{Table: table, Cell: cell}
}

// Slot returns the i'th slot of the row's cell.
func (r *Row) Slot(i int) value.Slot {
	return r.Cell.At(i)
}

// IsNull reports whether the column at index i is null in this row.
func (r *Row) IsNull(i int) bool {
	return r.Cell.At(i).Null
}
