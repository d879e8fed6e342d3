package plan

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/table"
)

// Cost is the triple every plan node carries (spec.md §4.7): EstRows is
// the node's own estimated row count, Self is the work the node itself
// adds on top of its children, and Total is the whole subtree's
// estimated cost. Filter, Eval, Sort and HashMerge nodes add Self to
// their children's Total; FullScan and RangeScan add the child's EstRows
// as well; a Join's Total is left.Total + left.EstRows*right.Total.
type Cost struct {
	EstRows int
	Self    int
	Total   int
}

func costProject(t *table.StorageTable) Cost {
	return Cost{EstRows: tableSize(t)}
}

func costFullScan(child Cost) Cost {
	return Cost{EstRows: child.EstRows, Total: child.Total + child.EstRows}
}

func costRangeScan(child Cost) Cost {
	return Cost{EstRows: child.EstRows, Total: child.Total + child.EstRows}
}

func costFilter(child Cost) Cost {
	return Cost{EstRows: child.EstRows, Total: child.Total}
}

func costEval(child Cost) Cost {
	return Cost{EstRows: child.EstRows, Total: child.Total}
}

func costSort(child Cost) Cost {
	self := child.EstRows * ceilLog2(child.EstRows)
	return Cost{EstRows: child.EstRows, Self: self, Total: child.Total + self}
}

func costHashMerge(left, right Cost) Cost {
	return Cost{EstRows: left.EstRows + right.EstRows, Total: left.Total + right.Total}
}

// costJoin implements spec.md §4.7's per-kind row estimate, all sharing
// the same total formula (left.total + left.rows * right.total — the
// nested-loop cost of probing right once per left row).
func costJoin(left, right Cost, kind ast.JoinKind) Cost {
	total := left.Total + left.EstRows*right.Total
	var rows int
	switch kind {
	case ast.LeftJoin:
		rows = left.EstRows
	case ast.RightJoin:
		rows = right.EstRows
	case ast.FullJoin:
		rows = left.EstRows * right.EstRows
	default: // Inner, Cross
		rows = left.EstRows + right.EstRows
	}
	return Cost{EstRows: rows, Total: total}
}

func tableSize(t *table.StorageTable) int { return t.Size() }

// ceilLog2 returns ceil(log2(n)), treating n <= 1 as 0 (a single row, or
// none, needs no comparisons to sort).
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	for v := n - 1; v > 0; v >>= 1 {
		bits++
	}
	return bits
}
