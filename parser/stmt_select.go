package parser

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/token"
)

// parseSelect parses "SELECT selitem, ... FROM tableexpr [WHERE expr]".
func (p *Parser) parseSelect() (*ast.Statement, error) {
	tok, err := p.expectKeyword("SELECT")
	if err != nil {
		return nil, err
	}
	stmt := &ast.Statement{Kind: ast.Select, Pos: tok.Pos}

	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		stmt.SelectList = append(stmt.SelectList, item)
		if p.atPunctuation(",") {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	from, err := p.parseTableExpr()
	if err != nil {
		return nil, err
	}
	stmt.From = from

	if p.atKeyword("WHERE") {
		p.advance()
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	return stmt, nil
}

// parseSelectItem parses one select-list entry: the bare "*" wildcard, a
// (optionally aliased) column reference, a parenthesized expression (also
// optionally aliased), or a general computed expression, which must carry
// an "AS name" alias (spec.md §6 and §4.6: EvaluatedTable has no name to
// fall back on for a computed column otherwise).
func (p *Parser) parseSelectItem() (ast.SelectItem, error) {
	if p.peek().Kind == token.Star {
		p.advance()
		return ast.SelectItem{Expr: ast.NewStar("")}, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return ast.SelectItem{}, err
	}

	alias := ""
	if p.atKeyword("AS") {
		p.advance()
		aliasTok, err := p.expectKind(token.Name, "alias")
		if err != nil {
			return ast.SelectItem{}, err
		}
		alias = aliasTok.Text
	}

	parenthesized := expr.Kind == ast.Unary && expr.Op == ast.OpParen
	if alias == "" && expr.Kind != ast.ColumnRef && !parenthesized {
		return ast.SelectItem{}, p.errorf("computed select-list expressions must be aliased with AS")
	}
	return ast.SelectItem{Expr: expr, Alias: alias}, nil
}
