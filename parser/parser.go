// Package parser implements relq's recursive-descent parser: it turns
// the token.Token stream token.Scan produces into ast.Statement values,
// one statement at a time, following the program = { statement ";" }
// grammar (spec.md §6).
package parser

import (
	"fmt"

	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/token"
)

// Parser walks a token stream left to right with a single cursor;
// nothing about it is restartable, matching the tokenizer's own
// restart-by-re-scan contract rather than backtracking.
type Parser struct {
	toks []token.Token
	pos  int
}

// New returns a Parser over src's full token stream.
func New(src string) *Parser {
	return &Parser{toks: token.Scan(src)}
}

// Done reports whether the parser has consumed every statement in its
// input.
func (p *Parser) Done() bool {
	return p.peek().Kind == token.EOF
}

// ParseAll parses every statement in src, stopping at the first error.
// It is a convenience for tests and simple callers; Database.Execute
// parses and executes one statement at a time instead, so that earlier
// statements in the same call remain committed when a later one fails
// (spec.md §7).
func ParseAll(src string) ([]*ast.Statement, error) {
	p := New(src)
	var stmts []*ast.Statement
	for !p.Done() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return stmts, err
		}
		if stmt == nil {
			break
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseStatement parses exactly one "statement ;" and advances past its
// terminator. It returns (nil, nil) if called at end of input.
func (p *Parser) ParseStatement() (*ast.Statement, error) {
	if p.Done() {
		return nil, nil
	}

	tok := p.peek()
	if tok.Kind != token.Keyword {
		return nil, p.errorf("expected a statement keyword")
	}

	var (
		stmt *ast.Statement
		err  error
	)
	switch tok.Text {
	case "CREATE":
		stmt, err = p.parseCreate()
	case "INSERT":
		stmt, err = p.parseInsert()
	case "SELECT":
		stmt, err = p.parseSelect()
	case "DELETE":
		stmt, err = p.parseDelete()
	case "UPDATE":
		stmt, err = p.parseUpdate()
	default:
		return nil, p.errorf("unexpected keyword %q at start of statement", tok.Text)
	}
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == token.Terminal && p.peek().Text == ";" {
		p.advance()
	} else if !p.Done() {
		return nil, p.errorf("expected ';' after statement")
	}
	return stmt, nil
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atKeyword(text string) bool {
	tok := p.peek()
	return tok.Kind == token.Keyword && tok.Text == text
}

func (p *Parser) atOperator(text string) bool {
	tok := p.peek()
	return tok.Kind == token.Operator && tok.Text == text
}

func (p *Parser) atPunctuation(text string) bool {
	tok := p.peek()
	return tok.Kind == token.Punctuation && tok.Text == text
}

func (p *Parser) expectKeyword(text string) (token.Token, error) {
	if !p.atKeyword(text) {
		return token.Token{}, p.errorf("expected keyword %q", text)
	}
	return p.advance(), nil
}

func (p *Parser) expectOperator(text string) (token.Token, error) {
	if !p.atOperator(text) {
		return token.Token{}, p.errorf("expected %q", text)
	}
	return p.advance(), nil
}

func (p *Parser) expectPunctuation(text string) (token.Token, error) {
	if !p.atPunctuation(text) {
		return token.Token{}, p.errorf("expected %q", text)
	}
	return p.advance(), nil
}

func (p *Parser) expectKind(kind token.Kind, what string) (token.Token, error) {
	if p.peek().Kind != kind {
		return token.Token{}, p.errorf("expected %s", what)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return p.tokenErrorf(p.peek(), format, args...)
}

func (p *Parser) tokenErrorf(tok token.Token, format string, args ...interface{}) error {
	return errs.ParseErrorAt(fmt.Sprintf(format, args...), errs.Token{
		Kind: tok.Kind.String(),
		Text: tok.Text,
		Pos:  tok.Pos,
	})
}
