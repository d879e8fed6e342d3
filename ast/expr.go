// Package ast is the algebraic representation relq compiles SQL text
// into: one Expr sum type covering both values (literals, column/table
// references) and operators, and one Statement sum type covering the
// five statement forms the parser accepts. Both are encoded as a single
// struct tagged by a Kind field rather than an interface hierarchy,
// following the "Expr as sum type" design note: it removes the scattered
// isType queries the original C++ uses and keeps exhaustive handling a
// single switch away.
package ast

import "github.com/relq-db/relq/value"

// ExprKind tags which variant of Expr is populated.
type ExprKind int

const (
	LiteralInt32 ExprKind = iota
	LiteralString
	LiteralBool
	LiteralBytes
	LiteralNull
	Star
	ColumnRef
	TableRef
	Unary
	Binary
	SelectExpr
	JoinExpr
)

// JoinKind is the kind of JOIN a JoinExpr represents. A bare "JOIN" is
// Inner.
type JoinKind int

const (
	Inner JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

func (k JoinKind) String() string {
	switch k {
	case LeftJoin:
		return "LEFT"
	case RightJoin:
		return "RIGHT"
	case FullJoin:
		return "FULL"
	case CrossJoin:
		return "CROSS"
	default:
		return "INNER"
	}
}

// Unary and binary operator spellings, matching the tokens the parser
// feeds into them.
const (
	OpNeg        = "-"
	OpBitNot     = "~"
	OpNot        = "NOT"
	OpLen        = "|" // |expr|
	OpParen      = "()"
	OpIsNull     = "IS NULL"
	OpIsNotNull  = "IS NOT NULL"
	OpExists     = "EXISTS"
	OpAdd        = "+"
	OpSub        = "-"
	OpMul        = "*"
	OpDiv        = "/"
	OpMod        = "%"
	OpEq         = "="
	OpNeq        = "!="
	OpLt         = "<"
	OpLte        = "<="
	OpGt         = ">"
	OpGte        = ">="
	OpAnd        = "AND"
	OpOr         = "OR"
)

// Expr is the single algebraic type for both values and operators. Only
// the fields relevant to Kind are meaningful; see the per-kind comments
// below.
type Expr struct {
	Kind ExprKind

	// Pos is the source offset the expression was parsed from, used for
	// error reporting and round-trip diagnostics.
	Pos int

	// Literal payloads (Kind is one of the Literal* kinds).
	Int32Val int32
	BoolVal  bool
	StrVal   string
	BytesVal []byte

	// Star: optional table qualifier. ColumnRef: optional table
	// qualifier (Table) + column name (Name). TableRef: table name
	// (Name).
	Table string
	Name  string

	// Unary: Op + Child.
	Op    string
	Child *Expr

	// Binary: Op + Left + Right.
	Left  *Expr
	Right *Expr

	// SelectExpr: an embedded SELECT, captured unevaluated.
	Select *Statement

	// JoinExpr: Left/Right are table-expressions, On is the predicate,
	// JoinKind selects the join variant.
	On   *Expr
	Join JoinKind
}

// IsLiteral reports whether e is one of the five literal kinds. Per the
// resolved source ambiguity (spec.md §9), a ColumnRef is never a
// literal — only LiteralInt32/String/Bool/Bytes/Null are.
func (e *Expr) IsLiteral() bool {
	switch e.Kind {
	case LiteralInt32, LiteralString, LiteralBool, LiteralBytes, LiteralNull:
		return true
	default:
		return false
	}
}

// LiteralTag returns the value.Tag of a literal Expr. LiteralNull has no
// intrinsic tag and returns value.Unknown; callers coerce it to the
// expected column type instead.
func (e *Expr) LiteralTag() value.Tag {
	switch e.Kind {
	case LiteralInt32:
		return value.Int32
	case LiteralString:
		return value.String
	case LiteralBool:
		return value.Bool
	case LiteralBytes:
		return value.Bytes
	default:
		return value.Unknown
	}
}

// NewInt32, NewString, NewBool, NewBytes and NewNull build literal Exprs.
func NewInt32(v int32) *Expr  { return &Expr{Kind: LiteralInt32, Int32Val: v} }
func NewString(v string) *Expr { return &Expr{Kind: LiteralString, StrVal: v} }
func NewBool(v bool) *Expr    { return &Expr{Kind: LiteralBool, BoolVal: v} }
func NewBytes(v []byte) *Expr { return &Expr{Kind: LiteralBytes, BytesVal: v} }
func NewNull() *Expr          { return &Expr{Kind: LiteralNull} }

// NewColumnRef builds an (optionally qualified) column reference.
func NewColumnRef(table, name string) *Expr {
	return &Expr{Kind: ColumnRef, Table: table, Name: name}
}

// NewTableRef builds a bare table-name reference.
func NewTableRef(name string) *Expr {
	return &Expr{Kind: TableRef, Name: name}
}

// NewStar builds a (possibly qualified) "*" wildcard.
func NewStar(table string) *Expr {
	return &Expr{Kind: Star, Table: table}
}

// NewUnary builds a unary operator node.
func NewUnary(op string, child *Expr) *Expr {
	return &Expr{Kind: Unary, Op: op, Child: child}
}

// NewBinary builds a binary operator node.
func NewBinary(op string, left, right *Expr) *Expr {
	return &Expr{Kind: Binary, Op: op, Left: left, Right: right}
}

// NewJoin builds a JOIN table-expression.
func NewJoin(kind JoinKind, left, right, on *Expr) *Expr {
	return &Expr{Kind: JoinExpr, Join: kind, Left: left, Right: right, On: on}
}

// NewSelect wraps a SELECT statement as a table-expression.
func NewSelect(stmt *Statement) *Expr {
	return &Expr{Kind: SelectExpr, Select: stmt}
}
