package row

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/value"
)

// Column is a column definition bound to a table (spec.md §3). A
// storage-backed column carries constraints and an optional default; a
// derived column (produced by EvaluatedTable or JoinTable) carries no
// constraints and is either a pass-through of an Origin column or the
// materialization of an Expr.
type Column struct {
	Name        string
	Type        value.ColumnType
	Constraints value.Constraint
	Default     *ast.Expr

	// Table is a non-owning handle to the column's owning table; it is
	// the one back-edge in an otherwise top-down ownership graph
	// (spec.md §3).
	Table Table

	// Origin is set for a pass-through derived column: the source
	// column a projection clones without transformation.
	Origin *Column

	// Expr is set for a computed derived column: the expression
	// EvaluatedTable's iterator evaluates to produce each row's slot.
	Expr *ast.Expr
}

// IsDerived reports whether c was produced by a projection rather than
// declared in a CREATE TABLE.
func (c *Column) IsDerived() bool {
	return c.Origin != nil || c.Expr != nil
}

// Clone rebinds a copy of c to a new owning table, optionally renaming
// it, preserving c itself as the Origin back-reference for a
// pass-through projection.
func (c *Column) Clone(table Table, alias string) *Column {
	name := c.Name
	if alias != "" {
		name = alias
	}
	return &Column{
		Name:   name,
		Type:   c.Type,
		Table:  table,
		Origin: c,
	}
}
