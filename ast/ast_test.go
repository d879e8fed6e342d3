package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/relq-db/relq/value"
)

func TestIsLiteral(t *testing.T) {
	require := require.New(t)
	require.True(NewInt32(1).IsLiteral())
	require.True(NewString("a").IsLiteral())
	require.True(NewBool(true).IsLiteral())
	require.True(NewBytes([]byte{1}).IsLiteral())
	require.True(NewNull().IsLiteral())
	require.False(NewColumnRef("", "id").IsLiteral())
	require.False(NewTableRef("t").IsLiteral())
}

func TestLiteralTag(t *testing.T) {
	require := require.New(t)
	require.Equal(value.Int32, NewInt32(1).LiteralTag())
	require.Equal(value.String, NewString("a").LiteralTag())
	require.Equal(value.Bool, NewBool(true).LiteralTag())
	require.Equal(value.Bytes, NewBytes(nil).LiteralTag())
	require.Equal(value.Unknown, NewNull().LiteralTag())
}

func TestJoinKindString(t *testing.T) {
	require := require.New(t)
	require.Equal("INNER", Inner.String())
	require.Equal("LEFT", LeftJoin.String())
	require.Equal("RIGHT", RightJoin.String())
	require.Equal("FULL", FullJoin.String())
	require.Equal("CROSS", CrossJoin.String())
}

func TestNewBinaryAndUnary(t *testing.T) {
	require := require.New(t)
	b := NewBinary(OpAdd, NewInt32(1), NewInt32(2))
	require.Equal(Binary, b.Kind)
	require.Equal(OpAdd, b.Op)

	u := NewUnary(OpNeg, NewInt32(1))
	require.Equal(Unary, u.Kind)
	require.Equal(OpNeg, u.Op)
}

func TestNewJoinAndSelect(t *testing.T) {
	require := require.New(t)
	on := NewBinary(OpEq, NewColumnRef("u", "id"), NewColumnRef("p", "uid"))
	j := NewJoin(Inner, NewTableRef("u"), NewTableRef("p"), on)
	require.Equal(JoinExpr, j.Kind)
	require.Equal(Inner, j.Join)
	require.Same(on, j.On)

	stmt := &Statement{Kind: Select}
	sel := NewSelect(stmt)
	require.Equal(SelectExpr, sel.Kind)
	require.Same(stmt, sel.Select)
}
