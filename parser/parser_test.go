package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/value"
)

func TestParseCreateWithColumns(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`CREATE TABLE t ({key, autoincrement} id: int32, {unique} login: string[8]);`)
	require.NoError(err)
	require.Len(stmts, 1)
	stmt := stmts[0]
	require.Equal(ast.Create, stmt.Kind)
	require.Equal("t", stmt.Table)
	require.Len(stmt.Columns, 2)
	require.Equal("id", stmt.Columns[0].Name)
	require.True(stmt.Columns[0].Constraints.Has(value.Key))
	require.True(stmt.Columns[0].Constraints.Has(value.Autoincrement))
	require.Equal(value.Int32, stmt.Columns[0].Type.Tag)
	require.Equal("login", stmt.Columns[1].Name)
	require.True(stmt.Columns[1].Constraints.Has(value.Unique))
	require.Equal(value.String, stmt.Columns[1].Type.Tag)
	require.Equal(8, stmt.Columns[1].Type.Length)
}

func TestParseCreateAutoincrementRequiresInt32(t *testing.T) {
	require := require.New(t)
	_, err := ParseAll(`CREATE TABLE t ({autoincrement} id: string[4]);`)
	require.Error(err)
}

func TestParseCreateAutoincrementRejectsDefault(t *testing.T) {
	require := require.New(t)
	_, err := ParseAll(`CREATE TABLE t ({autoincrement} id: int32 = 1);`)
	require.Error(err)
}

func TestParseCreateAsTableExpr(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`CREATE TABLE t2 AS t1;`)
	require.NoError(err)
	stmt := stmts[0]
	require.Equal(ast.Create, stmt.Kind)
	require.NotNil(stmt.Source)
	require.Equal(ast.TableRef, stmt.Source.Kind)
	require.Equal("t1", stmt.Source.Name)
}

func TestParseInsertPositional(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`INSERT (1, "a") TO t;`)
	require.NoError(err)
	stmt := stmts[0]
	require.Equal(ast.Insert, stmt.Kind)
	require.True(stmt.Positional)
	require.Len(stmt.Values, 2)
}

func TestParseInsertNamed(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`INSERT (login = "a") TO t;`)
	require.NoError(err)
	stmt := stmts[0]
	require.Equal(ast.Insert, stmt.Kind)
	require.False(stmt.Positional)
	require.Len(stmt.Assignments, 1)
	require.Equal("login", stmt.Assignments[0].Name)
}

func TestParseSelectStar(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`SELECT * FROM t WHERE id > 0;`)
	require.NoError(err)
	stmt := stmts[0]
	require.Equal(ast.Select, stmt.Kind)
	require.Len(stmt.SelectList, 1)
	require.Equal(ast.Star, stmt.SelectList[0].Expr.Kind)
	require.NotNil(stmt.Where)
}

func TestParseSelectRequiresAliasOnComputedExpr(t *testing.T) {
	require := require.New(t)
	// S6: unparenthesized, unaliased computed select-list expr is rejected.
	_, err := ParseAll(`SELECT id + 1 FROM t WHERE true;`)
	require.Error(err)
}

func TestParseSelectParenthesizedAliasedExprOK(t *testing.T) {
	require := require.New(t)
	// S6: parenthesized + aliased computed expr is accepted.
	stmts, err := ParseAll(`SELECT (id + 1) AS n FROM t WHERE n IS NOT NULL;`)
	require.NoError(err)
	stmt := stmts[0]
	item := stmt.SelectList[0]
	require.Equal("n", item.Alias)
	require.Equal(ast.Unary, item.Expr.Kind)
	require.Equal(ast.OpParen, item.Expr.Op)
	require.Equal(ast.Unary, stmt.Where.Kind)
	require.Equal(ast.OpIsNotNull, stmt.Where.Op)
}

func TestParseSelectParenthesizedUnaliasedExprOK(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`SELECT (id + 1) FROM t WHERE true;`)
	require.NoError(err)
	item := stmts[0].SelectList[0]
	require.Equal("", item.Alias)
	require.Equal(ast.Unary, item.Expr.Kind)
	require.Equal(ast.OpParen, item.Expr.Op)
}

func TestIsNullBindsTighterThanArithmetic(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`SELECT * FROM t WHERE 1 + 2 IS NULL;`)
	require.NoError(err)
	where := stmts[0].Where
	require.Equal(ast.Binary, where.Kind)
	require.Equal(ast.OpAdd, where.Op)
	require.Equal(ast.LiteralInt32, where.Left.Kind)
	require.Equal(ast.Unary, where.Right.Kind)
	require.Equal(ast.OpIsNull, where.Right.Op)
}

func TestParseSelectJoin(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`SELECT u.login AS user, p.title AS t FROM (u JOIN p ON u.id = p.uid) WHERE true;`)
	require.NoError(err)
	stmt := stmts[0]
	require.Equal(ast.Unary, stmt.From.Kind)
	require.Equal(ast.OpParen, stmt.From.Op)
	join := stmt.From.Child
	require.Equal(ast.JoinExpr, join.Kind)
	require.Equal(ast.Inner, join.Join)
	require.Equal("u", join.Left.Name)
	require.Equal("p", join.Right.Name)
}

func TestParseJoinKinds(t *testing.T) {
	require := require.New(t)
	for keyword, kind := range map[string]ast.JoinKind{
		"INNER": ast.Inner, "LEFT": ast.LeftJoin, "RIGHT": ast.RightJoin,
		"FULL": ast.FullJoin, "CROSS": ast.CrossJoin,
	} {
		stmts, err := ParseAll(`SELECT * FROM u ` + keyword + ` JOIN p ON u.id = p.uid WHERE true;`)
		require.NoError(err)
		require.Equal(kind, stmts[0].From.Join)
	}
}

func TestParseBareJoinIsInner(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`SELECT * FROM u JOIN p ON u.id = p.uid WHERE true;`)
	require.NoError(err)
	require.Equal(ast.Inner, stmts[0].From.Join)
}

func TestParseDelete(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`DELETE FROM t WHERE id = 1;`)
	require.NoError(err)
	stmt := stmts[0]
	require.Equal(ast.Delete, stmt.Kind)
	require.Equal("t", stmt.Table)
	require.NotNil(stmt.Where)
}

func TestParseUpdate(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`UPDATE t SET login = "x", id = 2 WHERE id = 1;`)
	require.NoError(err)
	stmt := stmts[0]
	require.Equal(ast.Update, stmt.Kind)
	require.Len(stmt.Assignments, 2)
}

func TestParseMultipleStatements(t *testing.T) {
	require := require.New(t)
	stmts, err := ParseAll(`INSERT (login="a") TO t; INSERT (login="b") TO t;`)
	require.NoError(err)
	require.Len(stmts, 2)
}

func TestPrecedenceArithmeticBeforeComparison(t *testing.T) {
	require := require.New(t)
	// S3: |login| % 2 = 1 parses as (|login| % 2) = 1, not |login| % (2 = 1).
	p := New(`|login| % 2 = 1`)
	expr, err := p.parseExpr()
	require.NoError(err)
	require.Equal(ast.Binary, expr.Kind)
	require.Equal(ast.OpEq, expr.Op)
	require.Equal(ast.Binary, expr.Left.Kind)
	require.Equal(ast.OpMod, expr.Left.Op)
	require.Equal(ast.Unary, expr.Left.Left.Kind)
	require.Equal(ast.OpLen, expr.Left.Left.Op)
}

func TestPrecedenceAndOverOr(t *testing.T) {
	require := require.New(t)
	p := New(`true OR false AND false`)
	expr, err := p.parseExpr()
	require.NoError(err)
	require.Equal(ast.OpOr, expr.Op)
	require.Equal(ast.OpAnd, expr.Right.Op)
}

func TestPrecedenceNotBindsTighterThanAnd(t *testing.T) {
	require := require.New(t)
	p := New(`NOT true AND false`)
	expr, err := p.parseExpr()
	require.NoError(err)
	require.Equal(ast.Binary, expr.Kind)
	require.Equal(ast.OpAnd, expr.Op)
	require.Equal(ast.Unary, expr.Left.Kind)
	require.Equal(ast.OpNot, expr.Left.Op)
}

func TestHexLiteralLittleEndianNibbleOrder(t *testing.T) {
	require := require.New(t)
	p := New(`0xAB12`)
	expr, err := p.parseExpr()
	require.NoError(err)
	require.Equal(ast.LiteralBytes, expr.Kind)
	require.Equal([]byte{0x12, 0xAB}, expr.BytesVal)
}

func TestHexLiteralOddDigitsPadded(t *testing.T) {
	require := require.New(t)
	p := New(`0xABC`)
	expr, err := p.parseExpr()
	require.NoError(err)
	require.Equal([]byte{0xBC, 0x0A}, expr.BytesVal)
}
