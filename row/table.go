// Package row implements the Row/Cell evaluator (spec.md §4.4): typed,
// null-aware column access and the literal-in/literal-out expression
// evaluator that both WHERE filtering and projection build on. It
// defines the Table and Iterator contracts the table package's concrete
// variants implement, rather than importing a concrete type from table,
// so that table can in turn depend on row without an import cycle.
package row

// Table is the common contract every table variant (storage, filtered,
// evaluated, join) satisfies (spec.md §4.6).
type Table interface {
	// Name returns the table's name, used to validate a column
	// reference's optional qualifier.
	Name() string

	// Columns returns the table's columns in order.
	Columns() []*Column

	// GetColumn resolves a (possibly empty) qualifier and a column name
	// to a Column and its index. For a storage or filtered table an empty
	// qualifier matches any column by name and a non-empty one must
	// additionally match the owning table's Name(). A join requires a
	// qualifier naming one of its operands; an evaluated table accepts
	// no qualifier.
	GetColumn(qualifier, name string) (*Column, int, error)

	// Iterator returns a fresh, independently-positioned row iterator
	// over the table's current contents.
	Iterator() (Iterator, error)
}

// Iterator is the pull-based row sequence every table's Iterator method
// returns (spec.md §4.6). It is positioned on the first emitted row (or
// none) immediately after construction; HasValue is idempotent; no
// Iterator is restartable — request a fresh one from the table instead.
// Current returns an error when materializing the row requires
// evaluation that can fail (EvaluatedTable's computed columns, a join's
// ON predicate having already been checked to select this pair); plain
// storage rows never fail to materialize.
type Iterator interface {
	HasValue() bool
	Current() (*Row, error)
	Advance() error
}
