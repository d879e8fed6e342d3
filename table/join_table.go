package table

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/row"
	"github.com/relq-db/relq/value"
)

// JoinTable holds a left and right table-expression, an ON predicate
// and a join kind. Only INNER executes; the other kinds may be planned
// and cost-estimated but raise Unsupported if asked to iterate
// (spec.md §4.6).
type JoinTable struct {
	left, right row.Table
	on          *ast.Expr
	kind        ast.JoinKind
	columns     []*row.Column
	leftCount   int
	traceID     string
}

// NewJoinTable builds a JoinTable whose columns are clones of left's
// columns followed by clones of right's.
func NewJoinTable(left, right row.Table, on *ast.Expr, kind ast.JoinKind) *JoinTable {
	j := &JoinTable{left: left, right: right, on: on, kind: kind, leftCount: len(left.Columns()), traceID: newTraceID()}
	for _, c := range left.Columns() {
		j.columns = append(j.columns, c.Clone(j, ""))
	}
	for _, c := range right.Columns() {
		j.columns = append(j.columns, c.Clone(j, ""))
	}
	return j
}

func (j *JoinTable) Name() string           { return "" }
func (j *JoinTable) Columns() []*row.Column { return j.columns }
func (j *JoinTable) TraceID() string        { return j.traceID }

// GetColumn requires a qualifying table name matching one of the join's
// two operands (spec.md §4.6).
func (j *JoinTable) GetColumn(qualifier, name string) (*row.Column, int, error) {
	if qualifier == "" {
		return nil, 0, errs.Name.New("column reference on a join must be qualified")
	}
	if qualifier == j.left.Name() {
		_, idx, err := j.left.GetColumn(qualifier, name)
		if err != nil {
			return nil, 0, err
		}
		return j.columns[idx], idx, nil
	}
	if qualifier == j.right.Name() {
		_, idx, err := j.right.GetColumn(qualifier, name)
		if err != nil {
			return nil, 0, err
		}
		return j.columns[j.leftCount+idx], j.leftCount + idx, nil
	}
	return nil, 0, errs.Name.New("unknown table qualifier " + qualifier)
}

func (j *JoinTable) Iterator() (row.Iterator, error) {
	if j.kind != ast.Inner {
		return nil, errs.Unsupported.New("only INNER joins execute")
	}
	leftIt, err := j.left.Iterator()
	if err != nil {
		return nil, err
	}
	it := &joinIterator{table: j, left: leftIt}
	if leftIt.HasValue() {
		rightIt, err := j.right.Iterator()
		if err != nil {
			return nil, err
		}
		it.right = rightIt
	}
	if err := it.seek(); err != nil {
		return nil, err
	}
	return it, nil
}

// joinIterator is the cursor pair of spec.md §4.6: advance right to
// exhaustion per left; on right-exhaustion, advance left and reset
// right; emit every pair whose ON predicate evaluates true.
type joinIterator struct {
	table *JoinTable
	left  row.Iterator
	right row.Iterator // nil once the join is fully exhausted
}

func (it *joinIterator) HasValue() bool {
	return it.left.HasValue() && it.right != nil && it.right.HasValue()
}

func (it *joinIterator) Current() (*row.Row, error) {
	leftRow, err := it.left.Current()
	if err != nil {
		return nil, err
	}
	rightRow, err := it.right.Current()
	if err != nil {
		return nil, err
	}
	return row.New(it.table, concatCells(leftRow.Cell, rightRow.Cell)), nil
}

func (it *joinIterator) Advance() error {
	if err := it.right.Advance(); err != nil {
		return err
	}
	return it.seek()
}

// seek advances the cursor pair until it lands on a matching row pair
// or the join is exhausted.
func (it *joinIterator) seek() error {
	for {
		if !it.left.HasValue() {
			it.right = nil
			return nil
		}
		if it.right == nil || !it.right.HasValue() {
			if err := it.left.Advance(); err != nil {
				return err
			}
			if !it.left.HasValue() {
				it.right = nil
				return nil
			}
			r, err := it.table.right.Iterator()
			if err != nil {
				return err
			}
			it.right = r
			continue
		}
		ok, err := it.matches()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if err := it.right.Advance(); err != nil {
			return err
		}
	}
}

func (it *joinIterator) matches() (bool, error) {
	leftRow, err := it.left.Current()
	if err != nil {
		return false, err
	}
	rightRow, err := it.right.Current()
	if err != nil {
		return false, err
	}
	r := row.New(it.table, concatCells(leftRow.Cell, rightRow.Cell))
	lit, err := r.Evaluate(it.table.on)
	if err != nil {
		return false, err
	}
	if lit.Kind != ast.LiteralBool {
		return false, errs.Type.New("JOIN ON predicate must evaluate to BOOL")
	}
	return lit.BoolVal, nil
}

func concatCells(left, right value.Cell) value.Cell {
	slots := make([]value.Slot, 0, left.Len()+right.Len())
	for i := 0; i < left.Len(); i++ {
		slots = append(slots, left.At(i))
	}
	for i := 0; i < right.Len(); i++ {
		slots = append(slots, right.At(i))
	}
	return value.NewCell(slots...)
}
