package table

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/value"
)

func postsTable() *StorageTable {
	return NewStorageTable("posts", []ast.ColumnDef{
		{Name: "id", Type: value.ColumnType{Tag: value.Int32}, Constraints: value.Key},
		{Name: "uid", Type: value.ColumnType{Tag: value.Int32}},
		{Name: "title", Type: value.ColumnType{Tag: value.String}},
	})
}

func usersAndPosts(t *testing.T) (*StorageTable, *StorageTable) {
	t.Helper()
	u := seededUsers(t) // ids 1,2,3 -> alice,bob,carol
	p := postsTable()
	require.NoError(t, p.Insert(true, []*ast.Expr{ast.NewInt32(100), ast.NewInt32(1), ast.NewString("hello")}, nil))
	require.NoError(t, p.Insert(true, []*ast.Expr{ast.NewInt32(101), ast.NewInt32(2), ast.NewString("world")}, nil))
	return u, p
}

func TestInnerJoinEmitsMatchingPairs(t *testing.T) {
	require := require.New(t)
	u, p := usersAndPosts(t)
	on := ast.NewBinary(ast.OpEq, ast.NewColumnRef("users", "id"), ast.NewColumnRef("posts", "uid"))
	jt := NewJoinTable(u, p, on, ast.Inner)

	it, err := jt.Iterator()
	require.NoError(err)
	var titles []string
	for it.HasValue() {
		r, err := it.Current()
		require.NoError(err)
		titles = append(titles, r.Slot(3).Scalar.Str) // posts.title is column index 3
		require.NoError(it.Advance())
	}
	require.Equal([]string{"hello", "world"}, titles)
}

func TestJoinTableColumnsAreLeftThenRight(t *testing.T) {
	require := require.New(t)
	u, p := usersAndPosts(t)
	on := ast.NewBool(true)
	jt := NewJoinTable(u, p, on, ast.Inner)
	require.Len(jt.Columns(), 5)
	require.Equal("id", jt.Columns()[0].Name)
	require.Equal("title", jt.Columns()[4].Name)
}

func TestJoinTableGetColumnRequiresQualifier(t *testing.T) {
	require := require.New(t)
	u, p := usersAndPosts(t)
	jt := NewJoinTable(u, p, ast.NewBool(true), ast.Inner)
	_, _, err := jt.GetColumn("", "id")
	require.Error(err)

	col, idx, err := jt.GetColumn("posts", "title")
	require.NoError(err)
	require.Equal("title", col.Name)
	require.Equal(4, idx)
}

func TestNonInnerJoinBuildsButIteratorErrors(t *testing.T) {
	require := require.New(t)
	u, p := usersAndPosts(t)
	on := ast.NewBinary(ast.OpEq, ast.NewColumnRef("users", "id"), ast.NewColumnRef("posts", "uid"))
	for _, kind := range []ast.JoinKind{ast.LeftJoin, ast.RightJoin, ast.FullJoin, ast.CrossJoin} {
		jt := NewJoinTable(u, p, on, kind)
		require.NotNil(jt)
		_, err := jt.Iterator()
		require.Error(err)
	}
}
