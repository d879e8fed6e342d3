package row

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/value"
)

// PredictType walks expr the same way Evaluate does but without a row,
// yielding the ColumnType the expression would produce. EvaluatedTable
// uses it to materialize the type of a computed projection column
// (spec.md §4.4).
func PredictType(table Table, expr *ast.Expr) (value.ColumnType, error) {
	switch expr.Kind {
	case ast.LiteralInt32:
		return value.ColumnType{Tag: value.Int32}, nil
	case ast.LiteralBool:
		return value.ColumnType{Tag: value.Bool}, nil
	case ast.LiteralString:
		return value.ColumnType{Tag: value.String, Length: len(expr.StrVal)}, nil
	case ast.LiteralBytes:
		return value.ColumnType{Tag: value.Bytes, Length: len(expr.BytesVal)}, nil
	case ast.LiteralNull:
		return value.ColumnType{Tag: value.Unknown}, nil

	case ast.ColumnRef:
		col, _, err := table.GetColumn(expr.Table, expr.Name)
		if err != nil {
			return value.ColumnType{}, err
		}
		return col.Type, nil

	case ast.Unary:
		return predictUnary(table, expr)

	case ast.Binary:
		return predictBinary(table, expr)

	default:
		return value.ColumnType{}, errs.Internal.New("expression kind has no predicted type")
	}
}

func predictUnary(table Table, expr *ast.Expr) (value.ColumnType, error) {
	childType, err := PredictType(table, expr.Child)
	if err != nil {
		return value.ColumnType{}, err
	}
	switch expr.Op {
	case ast.OpNeg, ast.OpBitNot:
		if childType.Tag != value.Int32 {
			return value.ColumnType{}, errs.Type.New("unary '" + expr.Op + "' requires an INT32 operand")
		}
		return value.ColumnType{Tag: value.Int32}, nil
	case ast.OpNot, ast.OpIsNull, ast.OpIsNotNull:
		return value.ColumnType{Tag: value.Bool}, nil
	case ast.OpLen:
		if childType.Tag != value.String && childType.Tag != value.Bytes {
			return value.ColumnType{}, errs.Type.New("'|expr|' requires a STRING or BYTES operand")
		}
		return value.ColumnType{Tag: value.Int32}, nil
	case ast.OpParen:
		return childType, nil
	default:
		return value.ColumnType{}, errs.Internal.New("unknown unary operator " + expr.Op)
	}
}

func predictBinary(table Table, expr *ast.Expr) (value.ColumnType, error) {
	leftType, err := PredictType(table, expr.Left)
	if err != nil {
		return value.ColumnType{}, err
	}
	rightType, err := PredictType(table, expr.Right)
	if err != nil {
		return value.ColumnType{}, err
	}
	if leftType.Tag != rightType.Tag {
		if expr.Op == ast.OpEq || expr.Op == ast.OpNeq {
			return value.ColumnType{Tag: value.Bool}, nil
		}
		return value.ColumnType{}, errs.Type.New("operand types differ")
	}

	switch expr.Op {
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return value.ColumnType{Tag: value.Bool}, nil
	case ast.OpAnd, ast.OpOr:
		if leftType.Tag != value.Bool {
			return value.ColumnType{}, errs.Type.New("'" + expr.Op + "' requires BOOL operands")
		}
		return value.ColumnType{Tag: value.Bool}, nil
	case ast.OpAdd:
		switch leftType.Tag {
		case value.String:
			return value.ColumnType{Tag: value.String, Length: leftType.Length + rightType.Length}, nil
		case value.Bytes:
			return value.ColumnType{Tag: value.Bytes, Length: leftType.Length + rightType.Length}, nil
		case value.Int32:
			return value.ColumnType{Tag: value.Int32}, nil
		default:
			return value.ColumnType{}, errs.Type.New("arithmetic on a non-arithmetic type")
		}
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if leftType.Tag != value.Int32 {
			return value.ColumnType{}, errs.Type.New("arithmetic on non-INT32 operands")
		}
		return value.ColumnType{Tag: value.Int32}, nil
	default:
		return value.ColumnType{}, errs.Internal.New("unknown binary operator " + expr.Op)
	}
}
