package parser

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/token"
)

// parseDelete parses "DELETE FROM name WHERE expr".
func (p *Parser) parseDelete() (*ast.Statement, error) {
	tok, err := p.expectKeyword("DELETE")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(token.Name, "table name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}
	where, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Statement{Kind: ast.Delete, Pos: tok.Pos, Table: nameTok.Text, Where: where}, nil
}
