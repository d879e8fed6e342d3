package parser

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/token"
)

var joinKindKeywords = map[string]ast.JoinKind{
	"INNER": ast.Inner,
	"LEFT":  ast.LeftJoin,
	"RIGHT": ast.RightJoin,
	"FULL":  ast.FullJoin,
	"CROSS": ast.CrossJoin,
}

// parseTableExpr parses a table-expression: a bare table name, a
// parenthesized table-expression or SELECT, or a left-associative chain
// of JOINs (spec.md §6's tableexpr production).
func (p *Parser) parseTableExpr() (*ast.Expr, error) {
	left, err := p.parseTableAtom()
	if err != nil {
		return nil, err
	}
	for {
		kind, ok := p.peekJoinKind()
		if !ok {
			break
		}
		if kind.consumeKeyword {
			p.advance()
		}
		if _, err := p.expectKeyword("JOIN"); err != nil {
			return nil, err
		}
		right, err := p.parseTableAtom()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("ON"); err != nil {
			return nil, err
		}
		on, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewJoin(kind.kind, left, right, on)
	}
	return left, nil
}

type joinLookahead struct {
	kind           ast.JoinKind
	consumeKeyword bool
}

// peekJoinKind reports whether the parser is positioned at the start of
// a join clause, and if so which kind it declares. A bare "JOIN" is
// Inner; an explicit kind keyword (INNER/LEFT/RIGHT/FULL/CROSS) must be
// immediately followed by "JOIN" or it isn't a join lookahead at all.
func (p *Parser) peekJoinKind() (joinLookahead, bool) {
	tok := p.peek()
	if tok.Kind != token.Keyword {
		return joinLookahead{}, false
	}
	if tok.Text == "JOIN" {
		return joinLookahead{kind: ast.Inner}, true
	}
	if kind, ok := joinKindKeywords[tok.Text]; ok {
		next := p.peekAt(1)
		if next.Kind == token.Keyword && next.Text == "JOIN" {
			return joinLookahead{kind: kind, consumeKeyword: true}, true
		}
	}
	return joinLookahead{}, false
}

// parseTableAtom parses the non-JOIN forms of a table-expression: a bare
// table name, "(" tableexpr ")", or "(" select ")".
func (p *Parser) parseTableAtom() (*ast.Expr, error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Name:
		p.advance()
		e := ast.NewTableRef(tok.Text)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Operator && tok.Text == "(":
		p.advance()
		if p.atKeyword("SELECT") {
			stmt, err := p.parseSelect()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOperator(")"); err != nil {
				return nil, err
			}
			return ast.NewSelect(stmt), nil
		}
		inner, err := p.parseTableExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		e := ast.NewUnary(ast.OpParen, inner)
		e.Pos = tok.Pos
		return e, nil

	default:
		return nil, p.errorf("expected a table name, '(' or SELECT")
	}
}
