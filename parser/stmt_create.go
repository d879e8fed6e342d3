package parser

import (
	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/token"
	"github.com/relq-db/relq/value"
)

// parseCreate parses "CREATE TABLE name ( coldef, ... )" or
// "CREATE TABLE name AS tableexpr".
func (p *Parser) parseCreate() (*ast.Statement, error) {
	tok, err := p.expectKeyword("CREATE")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(token.Name, "table name")
	if err != nil {
		return nil, err
	}

	stmt := &ast.Statement{Kind: ast.Create, Pos: tok.Pos, Table: nameTok.Text}

	if p.atKeyword("AS") {
		p.advance()
		src, err := p.parseTableExpr()
		if err != nil {
			return nil, err
		}
		stmt.Source = src
		return stmt, nil
	}

	if _, err := p.expectOperator("("); err != nil {
		return nil, err
	}
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, col)
		if p.atPunctuation(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	return stmt, nil
}

var constraintKeywords = map[string]value.Constraint{
	"KEY":           value.Key,
	"UNIQUE":        value.Unique,
	"AUTOINCREMENT": value.Autoincrement,
}

// parseColumnDef parses one "{ constraint, ... } name : type [ = literal ]"
// entry, enforcing the AUTOINCREMENT/type and AUTOINCREMENT/default
// invariants (spec.md §4.1) at parse time.
func (p *Parser) parseColumnDef() (ast.ColumnDef, error) {
	var col ast.ColumnDef

	if p.atPunctuation("{") {
		p.advance()
		for {
			tok := p.peek()
			if tok.Kind != token.Keyword {
				return col, p.errorf("expected a constraint keyword")
			}
			c, ok := constraintKeywords[tok.Text]
			if !ok {
				return col, p.errorf("unknown constraint %q", tok.Text)
			}
			p.advance()
			col.Constraints |= c
			if p.atPunctuation(",") {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectPunctuation("}"); err != nil {
			return col, err
		}
	}

	nameTok, err := p.expectKind(token.Name, "column name")
	if err != nil {
		return col, err
	}
	col.Name = nameTok.Text

	if _, err := p.expectPunctuation(":"); err != nil {
		return col, err
	}

	typeTok, err := p.expectKind(token.Type, "column type")
	if err != nil {
		return col, err
	}
	colType, err := parseColumnType(typeTok.Text)
	if err != nil {
		return col, p.tokenErrorf(typeTok, "%v", err)
	}
	col.Type = colType

	if col.Constraints.Has(value.Autoincrement) && colType.Tag != value.Int32 {
		return col, p.tokenErrorf(typeTok, "AUTOINCREMENT requires an INT32 column")
	}

	if p.atOperator("=") {
		p.advance()
		if col.Constraints.Has(value.Autoincrement) {
			return col, p.errorf("AUTOINCREMENT columns may not declare a default")
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return col, err
		}
		if err := checkDefaultLiteral(lit, colType); err != nil {
			return col, err
		}
		col.Default = lit
	}

	return col, nil
}

// checkDefaultLiteral enforces that a default literal's kind matches its
// column's declared type, with the one resolved exception that a STRING
// literal may default a BYTES column (spec.md §9): the literal is copied
// into the column's declared length, zero-padded or truncated.
func checkDefaultLiteral(lit *ast.Expr, colType value.ColumnType) error {
	if lit.Kind == ast.LiteralNull {
		return nil
	}
	tag := lit.LiteralTag()
	if tag == colType.Tag {
		return nil
	}
	if colType.Tag == value.Bytes && tag == value.String {
		return nil
	}
	return errs.Type.New("default literal type does not match column type " + colType.String())
}
