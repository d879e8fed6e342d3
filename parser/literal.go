package parser

import (
	"encoding/hex"
	"strconv"

	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/token"
)

// parseLiteral consumes the current token, which must be one of the five
// literal forms, and builds the matching ast.Expr.
func (p *Parser) parseLiteral() (*ast.Expr, error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Integer:
		p.advance()
		n, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			return nil, p.tokenErrorf(tok, "integer literal out of range")
		}
		e := ast.NewInt32(int32(n))
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Hex:
		p.advance()
		b, err := decodeHexLiteral(tok.Text)
		if err != nil {
			return nil, p.tokenErrorf(tok, "malformed hex literal: %v", err)
		}
		e := ast.NewBytes(b)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.String:
		p.advance()
		e := ast.NewString(tok.Text)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Keyword && tok.Text == "TRUE":
		p.advance()
		e := ast.NewBool(true)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Keyword && tok.Text == "FALSE":
		p.advance()
		e := ast.NewBool(false)
		e.Pos = tok.Pos
		return e, nil

	case tok.Kind == token.Keyword && tok.Text == "NULL":
		p.advance()
		e := ast.NewNull()
		e.Pos = tok.Pos
		return e, nil

	default:
		return nil, p.errorf("expected a literal")
	}
}

// decodeHexLiteral turns a "0x..." token's text into bytes in little-endian
// nibble order: the rightmost two hex digits become byte 0, the next pair
// become byte 1, and so on, matching original_source/csql's byte-literal
// construction. An odd digit count is padded with a leading zero nibble
// before pairing.
func decodeHexLiteral(text string) ([]byte, error) {
	digits := text[2:] // strip "0x"/"0X"
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b, nil
}
