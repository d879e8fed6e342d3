package plan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/table"
	"github.com/relq-db/relq/value"
)

type fakeCatalog map[string]*table.StorageTable

func (c fakeCatalog) Lookup(name string) (*table.StorageTable, error) {
	t, ok := c[name]
	if !ok {
		return nil, errs.Name.New("unknown table " + name)
	}
	return t, nil
}

func newCatalog(t *testing.T, rows map[string]int) fakeCatalog {
	t.Helper()
	cat := fakeCatalog{}
	for name, n := range rows {
		st := table.NewStorageTable(name, []ast.ColumnDef{
			{Name: "id", Type: value.ColumnType{Tag: value.Int32}},
		})
		for i := 0; i < n; i++ {
			require.NoError(t, st.Insert(true, []*ast.Expr{ast.NewInt32(int32(i))}, nil))
		}
		cat[name] = st
	}
	return cat
}

func TestCreateTableRefBuildsProjectNode(t *testing.T) {
	require := require.New(t)
	cat := newCatalog(t, map[string]int{"t": 3})
	p, err := Create(ast.NewTableRef("t"), cat)
	require.NoError(err)
	require.Equal(Project, p.Kind)
	require.Equal(3, p.Cost.EstRows)
}

func TestCreateUnknownTableErrors(t *testing.T) {
	require := require.New(t)
	cat := newCatalog(t, nil)
	_, err := Create(ast.NewTableRef("missing"), cat)
	require.Error(err)
}

func TestCreateParenthesisUnwraps(t *testing.T) {
	require := require.New(t)
	cat := newCatalog(t, map[string]int{"t": 1})
	expr := ast.NewUnary(ast.OpParen, ast.NewTableRef("t"))
	p, err := Create(expr, cat)
	require.NoError(err)
	require.Equal(Project, p.Kind)
}

func TestCreateJoinExprBuildsJoinNode(t *testing.T) {
	require := require.New(t)
	cat := newCatalog(t, map[string]int{"u": 2, "p": 5})
	on := ast.NewBinary(ast.OpEq, ast.NewColumnRef("u", "id"), ast.NewColumnRef("p", "id"))
	join := ast.NewJoin(ast.Inner, ast.NewTableRef("u"), ast.NewTableRef("p"), on)
	p, err := Create(join, cat)
	require.NoError(err)
	require.Equal(JoinNode, p.Kind)
	require.Equal(Project, p.Left.Kind)
	require.Equal(Project, p.Right.Kind)
	require.Equal(ast.Inner, p.Join)
	require.Equal(7, p.Cost.EstRows) // Inner: left.rows + right.rows
}

func TestCreateSelectBuildsEvalOverFilterOverFullScan(t *testing.T) {
	require := require.New(t)
	cat := newCatalog(t, map[string]int{"t": 4})
	stmt := &ast.Statement{
		Kind:       ast.Select,
		From:       ast.NewTableRef("t"),
		Where:      ast.NewBool(true),
		SelectList: []ast.SelectItem{{Expr: &ast.Expr{Kind: ast.Star}}},
	}
	p, err := CreateSelect(stmt, cat)
	require.NoError(err)
	require.Equal(EvalNode, p.Kind)
	require.Equal(FilterNode, p.Child.Kind)
	require.Equal(FullScan, p.Child.Child.Kind)
	require.Equal(Project, p.Child.Child.Child.Kind)
}

func TestCreateSelectWithoutWhereSkipsFilterNode(t *testing.T) {
	require := require.New(t)
	cat := newCatalog(t, map[string]int{"t": 4})
	stmt := &ast.Statement{
		Kind:       ast.Select,
		From:       ast.NewTableRef("t"),
		SelectList: []ast.SelectItem{{Expr: &ast.Expr{Kind: ast.Star}}},
	}
	p, err := CreateSelect(stmt, cat)
	require.NoError(err)
	require.Equal(EvalNode, p.Kind)
	require.Equal(FullScan, p.Child.Kind)
}

func TestCostJoinKinds(t *testing.T) {
	require := require.New(t)
	left := Cost{EstRows: 3, Total: 10}
	right := Cost{EstRows: 4, Total: 20}

	require.Equal(7, costJoin(left, right, ast.Inner).EstRows)
	require.Equal(3, costJoin(left, right, ast.LeftJoin).EstRows)
	require.Equal(4, costJoin(left, right, ast.RightJoin).EstRows)
	require.Equal(12, costJoin(left, right, ast.FullJoin).EstRows)
	require.Equal(7, costJoin(left, right, ast.CrossJoin).EstRows)

	expectedTotal := left.Total + left.EstRows*right.Total
	require.Equal(expectedTotal, costJoin(left, right, ast.Inner).Total)
}

func TestCostSortUsesCeilLog2(t *testing.T) {
	require := require.New(t)
	c := costSort(Cost{EstRows: 8, Total: 0})
	require.Equal(8, c.EstRows)
	require.Equal(24, c.Self) // 8 * ceilLog2(8)=3
	require.Equal(0, ceilLog2(1))
	require.Equal(0, ceilLog2(0))
	require.Equal(1, ceilLog2(2))
	require.Equal(3, ceilLog2(8))
}
