// Package table implements relq's table algebra (spec.md §4.6): the
// mutable StorageTable and the three read-only virtual tables
// (Filtered, Evaluated, Join) built over it, unified by the row.Table
// and row.Iterator contracts row defines.
package table

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/row"
	"github.com/relq-db/relq/storage"
	"github.com/relq-db/relq/value"
)

// StorageTable owns a Storage and is the only table variant that
// accepts mutation.
type StorageTable struct {
	name    string
	columns []*row.Column
	store   *storage.Storage
	keyIdx  []int
}

// NewStorageTable builds an empty table named name from coldefs.
func NewStorageTable(name string, coldefs []ast.ColumnDef) *StorageTable {
	t := &StorageTable{name: name}
	var keyIdx []int
	for i, def := range coldefs {
		t.columns = append(t.columns, &row.Column{
			Name:        def.Name,
			Type:        def.Type,
			Constraints: def.Constraints,
			Default:     def.Default,
			Table:       t,
		})
		if def.Constraints.Has(value.Key) {
			keyIdx = append(keyIdx, i)
		}
	}
	t.keyIdx = keyIdx
	var cmp storage.Comparator
	if len(keyIdx) > 0 {
		cmp = storage.NewKeyComparator(keyIdx)
	}
	t.store = storage.New(cmp)
	return t
}

// NewStorageTableLike builds an empty table named name whose columns are
// clones of src's (used by CREATE TABLE AS SELECT, spec.md §4.8, which
// clones columns from the planned source rather than declaring new
// ones).
func NewStorageTableLike(name string, src row.Table) *StorageTable {
	t := &StorageTable{name: name}
	for _, c := range src.Columns() {
		t.columns = append(t.columns, &row.Column{
			Name: c.Name,
			Type: c.Type,
			// CREATE TABLE AS SELECT columns carry no constraints of
			// their own; they materialize the source's shape only.
			Table: t,
		})
	}
	t.store = storage.New(nil)
	return t
}

func (t *StorageTable) Name() string          { return t.name }
func (t *StorageTable) Columns() []*row.Column { return t.columns }

// Size returns the table's current row count, the |table| the planner
// uses as a Project node's est_rows (spec.md §4.7).
func (t *StorageTable) Size() int { return t.store.Size() }

func (t *StorageTable) GetColumn(qualifier, name string) (*row.Column, int, error) {
	if qualifier != "" && qualifier != t.name {
		return nil, 0, errs.Name.New("qualifier " + qualifier + " does not match table " + t.name)
	}
	for i, c := range t.columns {
		if c.Name == name {
			return c, i, nil
		}
	}
	return nil, 0, errs.Name.New("unknown column " + name)
}

func (t *StorageTable) indexOf(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (t *StorageTable) Iterator() (row.Iterator, error) {
	return &storageIterator{table: t, cur: t.store.Iterate()}, nil
}

type storageIterator struct {
	table *StorageTable
	cur   *storage.Iterator
}

func (it *storageIterator) HasValue() bool { return it.cur.HasValue() }
func (it *storageIterator) Current() (*row.Row, error) {
	return row.New(it.table, it.cur.Current()), nil
}
func (it *storageIterator) Advance() error {
	it.cur.Advance()
	return nil
}

// Insert builds and installs one cell following spec.md §4.6's
// StorageTable.insert algorithm. Exactly one of values (positional) or
// assignments (named) should be non-empty, matching the parsed
// ast.Statement's Positional flag.
func (t *StorageTable) Insert(positional bool, values []*ast.Expr, assignments []ast.Assignment) error {
	slots := make([]value.Slot, len(t.columns))
	provided := make([]bool, len(t.columns))

	if positional {
		if len(values) > len(t.columns) {
			return errs.Name.New("too many values in INSERT")
		}
		for i, v := range values {
			slot, err := coerceLiteralToSlot(v, t.columns[i].Type)
			if err != nil {
				return err
			}
			slots[i] = slot
			provided[i] = true
		}
	} else {
		for _, a := range assignments {
			idx := t.indexOf(a.Name)
			if idx < 0 {
				return errs.Name.New("unknown column " + a.Name)
			}
			slot, err := coerceLiteralToSlot(a.Value, t.columns[idx].Type)
			if err != nil {
				return err
			}
			slots[idx] = slot
			provided[idx] = true
		}
	}

	for i, col := range t.columns {
		if provided[i] {
			continue
		}
		switch {
		case col.Constraints.Has(value.Autoincrement):
			slots[i] = value.ValueSlot(value.Int32Scalar(t.nextAutoincrement(i)))
		case col.Default != nil:
			slot, err := coerceLiteralToSlot(col.Default, col.Type)
			if err != nil {
				return err
			}
			slots[i] = slot
		default:
			slots[i] = value.NullSlot()
		}
	}

	if err := t.checkUniqueConstraints(slots); err != nil {
		return err
	}

	return t.store.Insert(value.NewCell(slots...))
}

// checkUniqueConstraints full-scans for a duplicate on every UNIQUE or
// KEY column, in addition to the guard the Storage's own key comparator
// provides (spec.md §4.6 step 2).
func (t *StorageTable) checkUniqueConstraints(slots []value.Slot) error {
	for i, col := range t.columns {
		if !col.Constraints.Has(value.Unique) && !col.Constraints.Has(value.Key) {
			continue
		}
		if slots[i].Null {
			continue
		}
		cur := t.store.Iterate()
		for cur.HasValue() {
			existing := cur.Current().At(i)
			if !existing.Null && existing.Scalar.Equal(slots[i].Scalar) {
				return errs.Constraint.New("duplicate value for constrained column " + col.Name)
			}
			cur.Advance()
		}
	}
	return nil
}

// nextAutoincrement returns the next value for an AUTOINCREMENT column:
// the max existing (non-null) value plus one, or 1 if the table has none
// yet — ids run 1..n after n inserts with no explicit value (spec.md §8
// testable property 4).
func (t *StorageTable) nextAutoincrement(idx int) int32 {
	var max int32 = 0
	cur := t.store.Iterate()
	for cur.HasValue() {
		s := cur.Current().At(idx)
		if !s.Null && s.Scalar.I32 > max {
			max = s.Scalar.I32
		}
		cur.Advance()
	}
	return max + 1
}

// DeleteWhere removes every row matching where, returning the count
// removed (spec.md §4.6 step "On delete_").
func (t *StorageTable) DeleteWhere(where *ast.Expr) (int, error) {
	count := 0
	cur := t.store.Iterate()
	for cur.HasValue() {
		r := row.New(t, cur.Current())
		lit, err := r.Evaluate(where)
		if err != nil {
			return count, err
		}
		if lit.Kind != ast.LiteralBool {
			return count, errs.Type.New("WHERE predicate must evaluate to BOOL")
		}
		if lit.BoolVal {
			cur.Remove()
			count++
			continue
		}
		cur.Advance()
	}
	return count, nil
}

// InsertCell installs a cell built elsewhere (CREATE TABLE AS SELECT
// seeding) directly, bypassing literal coercion since the cell's slots
// are already typed values read from another table's rows.
func (t *StorageTable) InsertCell(cell value.Cell) error {
	if err := t.checkUniqueConstraints(cell.Slots); err != nil {
		return err
	}
	return t.store.Insert(cell)
}

// coerceLiteralToSlot converts a literal Expr into a Slot for a column
// of the given type, applying the one resolved type-widening rule: a
// STRING literal may fill a BYTES column, copied into exactly the
// column's declared length (zero-padded or truncated, spec.md §9).
func coerceLiteralToSlot(lit *ast.Expr, colType value.ColumnType) (value.Slot, error) {
	if lit.Kind == ast.LiteralNull {
		return value.NullSlot(), nil
	}
	tag := lit.LiteralTag()
	switch colType.Tag {
	case value.Int32:
		if tag != value.Int32 {
			return value.Slot{}, errs.Type.New("expected an INT32 literal")
		}
		return value.ValueSlot(value.Int32Scalar(lit.Int32Val)), nil
	case value.Bool:
		if tag != value.Bool {
			return value.Slot{}, errs.Type.New("expected a BOOL literal")
		}
		return value.ValueSlot(value.BoolScalar(lit.BoolVal)), nil
	case value.String:
		if tag != value.String {
			return value.Slot{}, errs.Type.New("expected a STRING literal")
		}
		return value.ValueSlot(value.StringScalar(lit.StrVal)), nil
	case value.Bytes:
		switch tag {
		case value.Bytes:
			return value.ValueSlot(value.BytesScalar(lit.BytesVal)), nil
		case value.String:
			b := make([]byte, colType.Length)
			copy(b, []byte(lit.StrVal))
			return value.ValueSlot(value.BytesScalar(b)), nil
		default:
			return value.Slot{}, errs.Type.New("expected a BYTES or STRING literal")
		}
	default:
		return value.Slot{}, errs.Internal.New("column has no declared type")
	}
}
