package plan

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/row"
	"github.com/relq-db/relq/table"
)

// Execute interprets p as the table-algebra operations of spec.md §4.6,
// returning the row.Table its Iterator pulls rows from. Only the node
// kinds Create and CreateSelect actually produce are handled here;
// RangeScan and HashMerge are planner-only and never reached by a plan
// built through this package, but are included for completeness and
// raise Unsupported if ever executed directly.
func Execute(p *Plan) (row.Table, error) {
	switch p.Kind {
	case Project:
		return p.Table, nil

	case FullScan:
		// A full scan reads every child row without transforming the
		// table; its cost captures the expense, the algebra does not.
		return Execute(p.Child)

	case RangeScan:
		return nil, errs.Unsupported.New("RangeScan is planner-only")

	case FilterNode:
		src, err := Execute(p.Child)
		if err != nil {
			return nil, err
		}
		return table.NewFilteredTable(src, p.Predicate), nil

	case EvalNode:
		src, err := Execute(p.Child)
		if err != nil {
			return nil, err
		}
		return table.NewEvaluatedTable(src, p.SelectList)

	case SortNode:
		return nil, errs.Unsupported.New("Sort is planner-only")

	case JoinNode:
		left, err := Execute(p.Left)
		if err != nil {
			return nil, err
		}
		right, err := Execute(p.Right)
		if err != nil {
			return nil, err
		}
		// NewJoinTable always succeeds; only a non-INNER kind's
		// Iterator() raises Unsupported (table.JoinTable, spec.md §4.6).
		return table.NewJoinTable(left, right, p.Predicate, p.Join), nil

	case HashMerge:
		return nil, errs.Unsupported.New("HashMerge is planner-only")

	default:
		return nil, errs.Internal.New("unknown plan node kind")
	}
}

func unsupportedExpr(expr *ast.Expr) error {
	return errs.Unsupported.New("expression cannot appear as a table-expression")
}
