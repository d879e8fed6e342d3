package parser

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/token"
)

// parseInsert parses "INSERT ( value, ... ) TO name", where each value is
// either a bare literal (positional form) or "name = literal" (named
// form); the two forms may not mix within one statement.
func (p *Parser) parseInsert() (*ast.Statement, error) {
	tok, err := p.expectKeyword("INSERT")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator("("); err != nil {
		return nil, err
	}

	stmt := &ast.Statement{Kind: ast.Insert, Pos: tok.Pos}
	haveKind := false // has the positional/named form been decided yet

	for {
		named := p.peek().Kind == token.Name && p.peekAt(1).Kind == token.Operator && p.peekAt(1).Text == "="
		if haveKind {
			if named == stmt.Positional {
				return nil, p.errorf("INSERT may not mix positional and named values")
			}
		} else {
			stmt.Positional = !named
			haveKind = true
		}

		if named {
			nameTok := p.advance()
			p.advance() // "="
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			stmt.Assignments = append(stmt.Assignments, ast.Assignment{Name: nameTok.Text, Value: lit})
		} else {
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			stmt.Values = append(stmt.Values, lit)
		}

		if p.atPunctuation(",") {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("TO"); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(token.Name, "table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = nameTok.Text
	return stmt, nil
}
