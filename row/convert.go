package row

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/value"
)

// scalarToLiteral converts a non-null Scalar, tagged by a column's type,
// into the matching literal Expr.
func scalarToLiteral(s value.Scalar) *ast.Expr {
	switch s.Tag {
	case value.Int32:
		return ast.NewInt32(s.I32)
	case value.Bool:
		return ast.NewBool(s.Bool)
	case value.String:
		return ast.NewString(s.Str)
	case value.Bytes:
		return ast.NewBytes(s.Bytes)
	default:
		return ast.NewNull()
	}
}

// literalToScalar converts a non-null literal Expr into a Scalar. expr
// must satisfy IsLiteral and must not be LiteralNull.
func literalToScalar(expr *ast.Expr) (value.Scalar, error) {
	switch expr.Kind {
	case ast.LiteralInt32:
		return value.Int32Scalar(expr.Int32Val), nil
	case ast.LiteralBool:
		return value.BoolScalar(expr.BoolVal), nil
	case ast.LiteralString:
		return value.StringScalar(expr.StrVal), nil
	case ast.LiteralBytes:
		return value.BytesScalar(expr.BytesVal), nil
	default:
		return value.Scalar{}, errs.Internal.New("literalToScalar called on a non-literal or NULL expr")
	}
}
