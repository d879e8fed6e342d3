package row

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
)

// Evaluate reduces expr to a literal Expr against r, implementing the
// rules of spec.md §4.4. Column references resolve through r.Table;
// everything else is evaluated structurally.
func (r *Row) Evaluate(expr *ast.Expr) (*ast.Expr, error) {
	switch expr.Kind {
	case ast.LiteralInt32, ast.LiteralString, ast.LiteralBool, ast.LiteralBytes, ast.LiteralNull:
		return expr, nil

	case ast.ColumnRef:
		col, idx, err := r.Table.GetColumn(expr.Table, expr.Name)
		if err != nil {
			return nil, err
		}
		slot := r.Cell.At(idx)
		if slot.Null {
			return ast.NewNull(), nil
		}
		_ = col
		return scalarToLiteral(slot.Scalar), nil

	case ast.Unary:
		child, err := r.Evaluate(expr.Child)
		if err != nil {
			return nil, err
		}
		return evalUnary(expr.Op, child)

	case ast.Binary:
		left, err := r.Evaluate(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.Evaluate(expr.Right)
		if err != nil {
			return nil, err
		}
		return evalBinary(expr.Op, left, right)

	default:
		return nil, errs.Internal.New("expression kind is not evaluable against a row")
	}
}

// isFalsy reports whether a non-null literal counts as false for NOT:
// zero int, false bool, empty string, empty bytes.
func isFalsy(lit *ast.Expr) (bool, error) {
	switch lit.Kind {
	case ast.LiteralInt32:
		return lit.Int32Val == 0, nil
	case ast.LiteralBool:
		return !lit.BoolVal, nil
	case ast.LiteralString:
		return len(lit.StrVal) == 0, nil
	case ast.LiteralBytes:
		return len(lit.BytesVal) == 0, nil
	default:
		return false, errs.Type.New("NOT has no truthiness for this literal kind")
	}
}

func evalUnary(op string, child *ast.Expr) (*ast.Expr, error) {
	if child.Kind == ast.LiteralNull {
		switch op {
		case ast.OpIsNull:
			return ast.NewBool(true), nil
		case ast.OpIsNotNull:
			return ast.NewBool(false), nil
		default:
			return ast.NewNull(), nil
		}
	}

	switch op {
	case ast.OpParen:
		return child, nil

	case ast.OpIsNull:
		return ast.NewBool(false), nil

	case ast.OpIsNotNull:
		return ast.NewBool(true), nil

	case ast.OpNeg:
		if child.Kind != ast.LiteralInt32 {
			return nil, errs.Type.New("unary '-' requires an INT32 operand")
		}
		return ast.NewInt32(-child.Int32Val), nil

	case ast.OpBitNot:
		if child.Kind != ast.LiteralInt32 {
			return nil, errs.Type.New("unary '~' requires an INT32 operand")
		}
		return ast.NewInt32(^child.Int32Val), nil

	case ast.OpNot:
		falsy, err := isFalsy(child)
		if err != nil {
			return nil, err
		}
		return ast.NewBool(falsy), nil

	case ast.OpLen:
		switch child.Kind {
		case ast.LiteralString:
			return ast.NewInt32(int32(len(child.StrVal))), nil
		case ast.LiteralBytes:
			return ast.NewInt32(int32(len(child.BytesVal))), nil
		default:
			return nil, errs.Type.New("'|expr|' requires a STRING or BYTES operand")
		}

	default:
		return nil, errs.Internal.New("unknown unary operator " + op)
	}
}

func evalBinary(op string, left, right *ast.Expr) (*ast.Expr, error) {
	if left.Kind == ast.LiteralNull || right.Kind == ast.LiteralNull {
		switch op {
		case ast.OpEq:
			return ast.NewBool(false), nil
		case ast.OpNeq:
			return ast.NewBool(true), nil
		default:
			return nil, errs.Type.New("NULL operand is only valid with '=' or '!='")
		}
	}

	if left.Kind != right.Kind {
		switch op {
		case ast.OpEq:
			return ast.NewBool(false), nil
		case ast.OpNeq:
			return ast.NewBool(true), nil
		default:
			return nil, errs.Type.New("operand kinds differ")
		}
	}

	switch left.Kind {
	case ast.LiteralInt32:
		return evalInt32Binary(op, left.Int32Val, right.Int32Val)
	case ast.LiteralString:
		return evalStringBinary(op, left.StrVal, right.StrVal)
	case ast.LiteralBool:
		return evalBoolBinary(op, left.BoolVal, right.BoolVal)
	case ast.LiteralBytes:
		return evalBytesBinary(op, left.BytesVal, right.BytesVal)
	default:
		return nil, errs.Internal.New("unevaluable literal kind in binary operator")
	}
}

func evalInt32Binary(op string, a, b int32) (*ast.Expr, error) {
	switch op {
	case ast.OpAdd:
		return ast.NewInt32(a + b), nil
	case ast.OpSub:
		return ast.NewInt32(a - b), nil
	case ast.OpMul:
		return ast.NewInt32(a * b), nil
	case ast.OpDiv:
		if b == 0 {
			return nil, errs.Type.New("integer division by zero")
		}
		return ast.NewInt32(a / b), nil
	case ast.OpMod:
		if b == 0 {
			return nil, errs.Type.New("integer division by zero")
		}
		return ast.NewInt32(a % b), nil
	case ast.OpEq:
		return ast.NewBool(a == b), nil
	case ast.OpNeq:
		return ast.NewBool(a != b), nil
	case ast.OpLt:
		return ast.NewBool(a < b), nil
	case ast.OpLte:
		return ast.NewBool(a <= b), nil
	case ast.OpGt:
		return ast.NewBool(a > b), nil
	case ast.OpGte:
		return ast.NewBool(a >= b), nil
	default:
		return nil, errs.Type.New("operator not valid for INT32")
	}
}

func evalStringBinary(op string, a, b string) (*ast.Expr, error) {
	switch op {
	case ast.OpAdd:
		return ast.NewString(a + b), nil
	case ast.OpEq:
		return ast.NewBool(a == b), nil
	case ast.OpNeq:
		return ast.NewBool(a != b), nil
	case ast.OpLt:
		return ast.NewBool(a < b), nil
	case ast.OpLte:
		return ast.NewBool(a <= b), nil
	case ast.OpGt:
		return ast.NewBool(a > b), nil
	case ast.OpGte:
		return ast.NewBool(a >= b), nil
	default:
		return nil, errs.Type.New("operator not valid for STRING")
	}
}

func evalBoolBinary(op string, a, b bool) (*ast.Expr, error) {
	toInt := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	switch op {
	case ast.OpEq:
		return ast.NewBool(a == b), nil
	case ast.OpNeq:
		return ast.NewBool(a != b), nil
	case ast.OpAnd:
		return ast.NewBool(a && b), nil
	case ast.OpOr:
		return ast.NewBool(a || b), nil
	case ast.OpLt:
		return ast.NewBool(toInt(a) < toInt(b)), nil
	case ast.OpLte:
		return ast.NewBool(toInt(a) <= toInt(b)), nil
	case ast.OpGt:
		return ast.NewBool(toInt(a) > toInt(b)), nil
	case ast.OpGte:
		return ast.NewBool(toInt(a) >= toInt(b)), nil
	default:
		return nil, errs.Type.New("operator not valid for BOOL")
	}
}

func evalBytesBinary(op string, a, b []byte) (*ast.Expr, error) {
	if op == ast.OpAdd {
		out := make([]byte, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return ast.NewBytes(out), nil
	}
	if len(a) != len(b) {
		return nil, errs.Type.New("BYTES operands must have equal declared length")
	}
	cmp := compareBytesBigEndian(a, b)
	switch op {
	case ast.OpEq:
		return ast.NewBool(cmp == 0), nil
	case ast.OpNeq:
		return ast.NewBool(cmp != 0), nil
	case ast.OpLt:
		return ast.NewBool(cmp < 0), nil
	case ast.OpLte:
		return ast.NewBool(cmp <= 0), nil
	case ast.OpGt:
		return ast.NewBool(cmp > 0), nil
	case ast.OpGte:
		return ast.NewBool(cmp >= 0), nil
	default:
		return nil, errs.Type.New("operator not valid for BYTES")
	}
}

// compareBytesBigEndian compares two byte slices the same way
// value.Scalar.Compare does: highest index first. Slices of differing
// length are compared over the indexes both share, 0 up to the shorter
// length minus one (callers enforce
// equal length for ordering operators already).
func compareBytesBigEndian(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := n - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
