package parser

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/token"
)

// parseExpr parses a value-context expression at the full precedence
// chain (OR, weakest). It needs no explicit terminator set: each level
// below simply stops extending the tree once the next token can't
// continue it, which the grammar guarantees happens exactly at the
// boundary a terminator would otherwise mark (the closing ")" of a
// parenthesized expr, the WHERE clause's ";", and so on). This is a
// standard precedence climber; a table-driven Pratt parser would walk
// an identical token stream into an identical tree.
func (p *Parser) parseExpr() (*ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (*ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword(ast.OpOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(ast.OpOr, left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.atKeyword(ast.OpAnd) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(ast.OpAnd, left, right)
	}
	return left, nil
}

// parseNot handles prefix NOT, which binds weaker than comparison and
// arithmetic but stronger than AND/OR (spec.md §4.2).
func (p *Parser) parseNot() (*ast.Expr, error) {
	if p.atKeyword(ast.OpNot) {
		tok := p.advance()
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		e := ast.NewUnary(ast.OpNot, child)
		e.Pos = tok.Pos
		return e, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[string]bool{
	ast.OpEq: true, ast.OpNeq: true, ast.OpLt: true,
	ast.OpLte: true, ast.OpGt: true, ast.OpGte: true,
}

func (p *Parser) parseComparison() (*ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != token.Operator || !comparisonOps[tok.Text] {
			break
		}
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(tok.Text, left, right)
	}
	return left, nil
}

func (p *Parser) parseAdd() (*ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.atOperator(ast.OpAdd) || p.atOperator(ast.OpSub) {
		op := p.advance().Text
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMul() (*ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	// The lexer emits "*" as a Star token, never as an Operator.
	for p.peek().Kind == token.Star || p.atOperator(ast.OpDiv) || p.atOperator(ast.OpMod) {
		op := p.advance().Text
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op, left, right)
	}
	return left, nil
}

// parseUnary handles the operators that bind tighter than any binary
// operator: unary minus, bitwise not, the |expr| length wrapper,
// parenthesization, and the postfix "IS [NOT] NULL" forms. All
// of these sit in the same tightest tier (spec.md §4.2), so "IS NULL"
// binds to its immediate operand before any binary operator ever sees
// it: "1 + 2 IS NULL" parses as "1 + (2 IS NULL)".
func (p *Parser) parseUnary() (*ast.Expr, error) {
	atom, err := p.parseUnaryPrefix()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind == token.Keyword && tok.Text == token.IsNullKeyword {
			p.advance()
			atom = ast.NewUnary(ast.OpIsNull, atom)
			continue
		}
		if tok.Kind == token.Keyword && tok.Text == token.IsNotNullKeyword {
			p.advance()
			atom = ast.NewUnary(ast.OpIsNotNull, atom)
			continue
		}
		break
	}
	return atom, nil
}

func (p *Parser) parseUnaryPrefix() (*ast.Expr, error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Operator && tok.Text == ast.OpNeg:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		e := ast.NewUnary(ast.OpNeg, child)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Operator && tok.Text == ast.OpBitNot:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		e := ast.NewUnary(ast.OpBitNot, child)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Operator && tok.Text == "|":
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator("|"); err != nil {
			return nil, err
		}
		e := ast.NewUnary(ast.OpLen, inner)
		e.Pos = tok.Pos
		return e, nil

	default:
		return p.parsePrimary()
	}
}

// parsePrimary parses the atomic value-context forms: literals,
// (optionally qualified) column references, and parenthesized
// sub-expressions.
func (p *Parser) parsePrimary() (*ast.Expr, error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Operator && tok.Text == "(":
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		e := ast.NewUnary(ast.OpParen, inner)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Name:
		p.advance()
		e := ast.NewColumnRef("", tok.Text)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.ColumnName:
		p.advance()
		table, name := splitColumnName(tok.Text)
		e := ast.NewColumnRef(table, name)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Integer || tok.Kind == token.Hex || tok.Kind == token.String ||
		(tok.Kind == token.Keyword && (tok.Text == "TRUE" || tok.Text == "FALSE" || tok.Text == "NULL")):
		return p.parseLiteral()

	default:
		return nil, p.errorf("expected an expression")
	}
}

// splitColumnName splits a "table.column" ColumnName token's text at its
// single dot.
func splitColumnName(text string) (table, name string) {
	for i := 0; i < len(text); i++ {
		if text[i] == '.' {
			return text[:i], text[i+1:]
		}
	}
	return "", text
}
