package table

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/row"
	"github.com/relq-db/relq/value"
)

// EvaluatedTable wraps a source table and an ordered list of projection
// expressions; its columns are newly materialized, one per projection
// (spec.md §4.6).
type EvaluatedTable struct {
	source      row.Table
	columns     []*row.Column
	sourceIndex []int      // index into source.Columns() for a pass-through column, -1 otherwise
	exprs       []*ast.Expr // the expression to evaluate for a computed column, nil otherwise
	traceID     string
}

// NewEvaluatedTable builds an EvaluatedTable from source and items,
// following the construction rule of spec.md §4.6: a bare column
// reference clones the origin column (renamed by an alias if given), a
// star expands into clones of every source column, and any other
// expression gets its type from row.PredictType and is named by its
// alias (an empty name when it has none).
func NewEvaluatedTable(source row.Table, items []ast.SelectItem) (*EvaluatedTable, error) {
	e := &EvaluatedTable{source: source, traceID: newTraceID()}
	for _, item := range items {
		switch item.Expr.Kind {
		case ast.Star:
			for i, c := range source.Columns() {
				e.columns = append(e.columns, c.Clone(e, ""))
				e.sourceIndex = append(e.sourceIndex, i)
				e.exprs = append(e.exprs, nil)
			}
		case ast.ColumnRef:
			col, idx, err := source.GetColumn(item.Expr.Table, item.Expr.Name)
			if err != nil {
				return nil, err
			}
			e.columns = append(e.columns, col.Clone(e, item.Alias))
			e.sourceIndex = append(e.sourceIndex, idx)
			e.exprs = append(e.exprs, nil)
		default:
			colType, err := row.PredictType(source, item.Expr)
			if err != nil {
				return nil, err
			}
			e.columns = append(e.columns, &row.Column{
				Name:  item.Alias,
				Type:  colType,
				Table: e,
				Expr:  item.Expr,
			})
			e.sourceIndex = append(e.sourceIndex, -1)
			e.exprs = append(e.exprs, item.Expr)
		}
	}
	return e, nil
}

func (e *EvaluatedTable) Name() string    { return "" }
func (e *EvaluatedTable) TraceID() string { return e.traceID }
func (e *EvaluatedTable) Columns() []*row.Column { return e.columns }

func (e *EvaluatedTable) GetColumn(qualifier, name string) (*row.Column, int, error) {
	if qualifier != "" {
		return nil, 0, errs.Name.New("computed result columns are not qualifiable")
	}
	for i, c := range e.columns {
		if c.Name == name {
			return c, i, nil
		}
	}
	return nil, 0, errs.Name.New("unknown column " + name)
}

func (e *EvaluatedTable) Iterator() (row.Iterator, error) {
	inner, err := e.source.Iterator()
	if err != nil {
		return nil, err
	}
	return &evaluatedIterator{table: e, inner: inner}, nil
}

type evaluatedIterator struct {
	table *EvaluatedTable
	inner row.Iterator
}

func (it *evaluatedIterator) HasValue() bool { return it.inner.HasValue() }

func (it *evaluatedIterator) Current() (*row.Row, error) {
	src, err := it.inner.Current()
	if err != nil {
		return nil, err
	}
	slots := make([]value.Slot, len(it.table.columns))
	for i := range it.table.columns {
		if it.table.sourceIndex[i] >= 0 {
			slots[i] = src.Slot(it.table.sourceIndex[i])
			continue
		}
		lit, err := src.Evaluate(it.table.exprs[i])
		if err != nil {
			return nil, err
		}
		slots[i] = literalToSlot(lit)
	}
	return row.New(it.table, value.NewCell(slots...)), nil
}

func (it *evaluatedIterator) Advance() error {
	return it.inner.Advance()
}

func literalToSlot(lit *ast.Expr) value.Slot {
	switch lit.Kind {
	case ast.LiteralInt32:
		return value.ValueSlot(value.Int32Scalar(lit.Int32Val))
	case ast.LiteralBool:
		return value.ValueSlot(value.BoolScalar(lit.BoolVal))
	case ast.LiteralString:
		return value.ValueSlot(value.StringScalar(lit.StrVal))
	case ast.LiteralBytes:
		return value.ValueSlot(value.BytesScalar(lit.BytesVal))
	default:
		return value.NullSlot()
	}
}
