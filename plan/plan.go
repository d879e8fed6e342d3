// Package plan builds and executes relq's cost-annotated query plans
// (spec.md §4.7): QueryPlan.create recursively turns a table-expression
// (or an embedded SELECT) into a Plan tree, each node carrying a Cost;
// Execute interprets the subset of nodes create actually produces as
// table-algebra operations from the table package.
package plan

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/table"
)

// Kind tags which plan node a Plan represents.
type Kind int

const (
	Project Kind = iota
	FullScan
	RangeScan
	FilterNode
	EvalNode
	SortNode
	JoinNode
	HashMerge
)

// Catalog resolves a base table name to its storage, the only lookup
// the planner needs (a tableexpr's NAME form always names a catalog
// table; everything else is JOIN, a parenthesized sub-tableexpr, or an
// embedded SELECT, none of which touch the catalog directly).
type Catalog interface {
	Lookup(name string) (*table.StorageTable, error)
}

// Plan is the single node type for the whole tree, tagged by Kind, in
// the same "sum type over a tagged struct" style as ast.Expr.
type Plan struct {
	Kind Kind
	Cost Cost

	Child       *Plan
	Left, Right *Plan

	TableName string
	Table     *table.StorageTable // resolved at Project

	Predicate  *ast.Expr        // FilterNode, JoinNode's ON
	SelectList []ast.SelectItem // EvalNode
	Join       ast.JoinKind     // JoinNode
}

// Create recursively builds a Plan from a table-expression Expr: a bare
// table name, a parenthesized sub-expression, an embedded SELECT, or a
// JOIN (spec.md §4.7).
func Create(expr *ast.Expr, catalog Catalog) (*Plan, error) {
	switch expr.Kind {
	case ast.Unary:
		if expr.Op == ast.OpParen {
			return Create(expr.Child, catalog)
		}
		return nil, unsupportedExpr(expr)

	case ast.TableRef:
		t, err := catalog.Lookup(expr.Name)
		if err != nil {
			return nil, err
		}
		return &Plan{
			Kind:      Project,
			TableName: expr.Name,
			Table:     t,
			Cost:      costProject(t),
		}, nil

	case ast.JoinExpr:
		left, err := Create(expr.Left, catalog)
		if err != nil {
			return nil, err
		}
		right, err := Create(expr.Right, catalog)
		if err != nil {
			return nil, err
		}
		return &Plan{
			Kind:      JoinNode,
			Left:      left,
			Right:     right,
			Predicate: expr.On,
			Join:      expr.Join,
			Cost:      costJoin(left.Cost, right.Cost, expr.Join),
		}, nil

	case ast.SelectExpr:
		return CreateSelect(expr.Select, catalog)

	default:
		return nil, unsupportedExpr(expr)
	}
}

// CreateSelect builds the plan for a SELECT statement: Eval(select_list)
// over Filter(where) over FullScan over plan(from_source) (spec.md
// §4.7). WHERE is optional; when absent, FullScan feeds Eval directly.
func CreateSelect(stmt *ast.Statement, catalog Catalog) (*Plan, error) {
	from, err := Create(stmt.From, catalog)
	if err != nil {
		return nil, err
	}

	scan := &Plan{Kind: FullScan, Child: from, Cost: costFullScan(from.Cost)}

	filtered := scan
	if stmt.Where != nil {
		filtered = &Plan{Kind: FilterNode, Child: scan, Predicate: stmt.Where, Cost: costFilter(scan.Cost)}
	}

	return &Plan{
		Kind:       EvalNode,
		Child:      filtered,
		SelectList: stmt.SelectList,
		Cost:       costEval(filtered.Cost),
	}, nil
}
