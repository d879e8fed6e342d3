package table

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/row"
)

// FilteredTable wraps a source table and a predicate; it is read-only
// and shares the source's columns unchanged (spec.md §4.6).
type FilteredTable struct {
	source    row.Table
	predicate *ast.Expr
	traceID   string
}

// NewFilteredTable wraps source, filtering rows where predicate is true.
func NewFilteredTable(source row.Table, predicate *ast.Expr) *FilteredTable {
	return &FilteredTable{source: source, predicate: predicate, traceID: newTraceID()}
}

func (f *FilteredTable) Name() string           { return f.source.Name() }
func (f *FilteredTable) Columns() []*row.Column { return f.source.Columns() }
func (f *FilteredTable) TraceID() string        { return f.traceID }

func (f *FilteredTable) GetColumn(qualifier, name string) (*row.Column, int, error) {
	return f.source.GetColumn(qualifier, name)
}

func (f *FilteredTable) Iterator() (row.Iterator, error) {
	inner, err := f.source.Iterator()
	if err != nil {
		return nil, err
	}
	it := &filteredIterator{predicate: f.predicate, inner: inner}
	if err := it.skipToMatch(); err != nil {
		return nil, err
	}
	return it, nil
}

// filteredIterator is the WhereClauseIterator of spec.md §4.6: it
// advances the inner iterator until the next row satisfies the
// predicate.
type filteredIterator struct {
	predicate *ast.Expr
	inner     row.Iterator
}

func (it *filteredIterator) HasValue() bool { return it.inner.HasValue() }
func (it *filteredIterator) Current() (*row.Row, error) { return it.inner.Current() }

func (it *filteredIterator) Advance() error {
	if err := it.inner.Advance(); err != nil {
		return err
	}
	return it.skipToMatch()
}

func (it *filteredIterator) skipToMatch() error {
	for it.inner.HasValue() {
		cur, err := it.inner.Current()
		if err != nil {
			return err
		}
		lit, err := cur.Evaluate(it.predicate)
		if err != nil {
			return err
		}
		if lit.Kind != ast.LiteralBool {
			return errs.Type.New("WHERE predicate must evaluate to BOOL")
		}
		if lit.BoolVal {
			return nil
		}
		if err := it.inner.Advance(); err != nil {
			return err
		}
	}
	return nil
}
