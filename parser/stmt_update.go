package parser

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/token"
)

// parseUpdate parses "UPDATE name SET name = expr, ... WHERE expr". The
// parser accepts UPDATE in full; it is the plan executor that rejects it
// at run time (spec.md §9 — UPDATE is parse-only).
func (p *Parser) parseUpdate() (*ast.Statement, error) {
	tok, err := p.expectKeyword("UPDATE")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(token.Name, "table name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}

	stmt := &ast.Statement{Kind: ast.Update, Pos: tok.Pos, Table: nameTok.Text}
	for {
		colTok, err := p.expectKind(token.Name, "column name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator("="); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, ast.Assignment{Name: colTok.Text, Value: value})
		if p.atPunctuation(",") {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}
	where, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt.Where = where
	return stmt, nil
}
