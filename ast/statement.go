package ast

import "github.com/relq-db/relq/value"

// StmtKind tags which of the five accepted statement forms a Statement
// holds.
type StmtKind int

const (
	Create StmtKind = iota
	Insert
	Select
	Delete
	Update
)

// ColumnDef is one column declaration inside CREATE TABLE ( ... ).
type ColumnDef struct {
	Name        string
	Type        value.ColumnType
	Constraints value.Constraint
	Default     *Expr // nil if no default literal was given
}

// Assignment is one "name = expr" pair, used by the named-value form of
// INSERT and by UPDATE's SET list.
type Assignment struct {
	Name  string
	Value *Expr
}

// SelectItem is one entry of a SELECT's select-list: either the "*"
// wildcard, a bare (optionally aliased) column reference, or a general
// expression, which the parser requires to carry an alias unless it is
// parenthesized.
type SelectItem struct {
	Expr  *Expr
	Alias string
}

// Statement is the single algebraic type for all five accepted
// statement forms; only the fields relevant to Kind are populated.
type Statement struct {
	Kind StmtKind
	Pos  int

	// CREATE: Table is the new table's name. Exactly one of Columns or
	// Source is set: Columns for "CREATE TABLE t (coldefs)", Source
	// (a table-expression) for "CREATE TABLE t AS <tableexpr>".
	Table   string
	Columns []ColumnDef
	Source  *Expr

	// INSERT: Table is the destination. Positional selects between the
	// "(v, v, ...)" and "(k = v, k = v, ...)" forms; exactly one of
	// Values/Assignments is populated accordingly.
	Positional  bool
	Values      []*Expr
	Assignments []Assignment

	// SELECT: From is a table-expression, Where is optional (nil means
	// no WHERE clause was given — distinct from a WHERE TRUE).
	SelectList []SelectItem
	From       *Expr
	Where      *Expr

	// DELETE: Table + Where (Table reused above).
	// UPDATE: Table + Assignments (SET list, reusing the field above) + Where.
}
