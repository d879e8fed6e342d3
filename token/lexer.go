package token

import (
	"strings"
	"unicode"
)

// Lexer scans a relq source string into a restartable sequence of Tokens.
// It is restartable in the sense that a caller can take a snapshot of its
// position (Pos) and later reconstruct a Lexer at that offset; the parser
// instead keeps the whole token slice produced by Tokenize and walks it
// with a cursor, which is simpler and avoids re-scanning on backtrack.
type Lexer struct {
	src string
	pos int
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize scans all of src and returns its full token stream, including
// Whitespace tokens; callers that want to skip whitespace (the normal
// case) should filter, or use Scan which does that filtering for them.
func Tokenize(src string) []Token {
	lex := NewLexer(src)
	var toks []Token
	for {
		tok := lex.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

// Scan tokenizes src and discards Whitespace tokens, appending a final
// EOF marker.
func Scan(src string) []Token {
	all := Tokenize(src)
	out := make([]Token, 0, len(all))
	for _, t := range all {
		if t.Kind == Whitespace {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Next scans and returns the next token, advancing the lexer. At end of
// input it returns an EOF token forever after.
func (l *Lexer) Next() Token {
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Pos: l.pos}
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case isSpace(c):
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.pos++
		}
		return Token{Kind: Whitespace, Text: l.src[start:l.pos], Pos: start}

	case c == ';':
		l.pos++
		return Token{Kind: Terminal, Text: ";", Pos: start}

	case c == ',' || c == ':' || c == '{' || c == '}':
		l.pos++
		return Token{Kind: Punctuation, Text: string(c), Pos: start}

	case c == '*':
		l.pos++
		return Token{Kind: Star, Text: "*", Pos: start}

	case c == '"' || c == '\'':
		return l.scanString(c)

	case c == '0' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == 'x' || l.src[l.pos+1] == 'X'):
		return l.scanHex()

	case isDigit(c):
		return l.scanInteger()

	case isOperatorStart(c):
		return l.scanOperator()

	case isNameStart(c):
		return l.scanNameLike()

	default:
		// Unrecognized text is emitted as a single-rune Terminal so the
		// parser can report the offending position instead of looping.
		l.pos++
		return Token{Kind: Terminal, Text: string(c), Pos: start}
	}
}

func (l *Lexer) scanString(quote byte) Token {
	start := l.pos
	l.pos++ // consume opening quote
	contentStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != quote {
		l.pos++
	}
	text := l.src[contentStart:l.pos]
	if l.pos < len(l.src) {
		l.pos++ // consume closing quote
	}
	return Token{Kind: String, Text: text, Pos: start}
}

func (l *Lexer) scanHex() Token {
	start := l.pos
	l.pos += 2 // "0x"
	for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: Hex, Text: l.src[start:l.pos], Pos: start}
}

func (l *Lexer) scanInteger() Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: Integer, Text: l.src[start:l.pos], Pos: start}
}

var twoCharOperators = []string{">=", "<=", "!="}
var oneCharOperators = "><=()|+-*/%&~"

func isOperatorStart(c byte) bool {
	return strings.IndexByte(oneCharOperators, c) >= 0
}

func (l *Lexer) scanOperator() Token {
	start := l.pos
	if l.pos+1 < len(l.src) {
		two := l.src[l.pos : l.pos+2]
		for _, op := range twoCharOperators {
			if two == op {
				l.pos += 2
				return Token{Kind: Operator, Text: two, Pos: start}
			}
		}
	}
	c := l.src[l.pos]
	l.pos++
	return Token{Kind: Operator, Text: string(c), Pos: start}
}

func (l *Lexer) scanNameLike() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) && isNameCont(l.src[l.pos]) {
		l.pos++
	}
	ident := l.src[start:l.pos]

	// A type token may consume a trailing "[<n>]" width.
	if upperIdent := strings.ToUpper(ident); upperIdent == "STRING" || upperIdent == "BYTES" {
		if tok, ok := l.tryScanWidthSuffix(start, upperIdent); ok {
			return tok
		}
	}
	if strings.ToUpper(ident) == "BOOL" || strings.ToUpper(ident) == "INT32" {
		return Token{Kind: Type, Text: strings.ToUpper(ident), Pos: start}
	}

	upper := strings.ToUpper(ident)
	if upper == "IS" {
		return l.scanIsNull(start)
	}
	if Keywords[upper] {
		return Token{Kind: Keyword, Text: upper, Pos: start}
	}

	// Qualified column reference: NAME immediately followed by ".NAME".
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isNameStart(l.src[l.pos+1]) {
		l.pos++ // '.'
		for l.pos < len(l.src) && isNameCont(l.src[l.pos]) {
			l.pos++
		}
		return Token{Kind: ColumnName, Text: l.src[start:l.pos], Pos: start}
	}

	return Token{Kind: Name, Text: ident, Pos: start}
}

func (l *Lexer) tryScanWidthSuffix(start int, base string) (Token, bool) {
	save := l.pos
	if l.pos >= len(l.src) || l.src[l.pos] != '[' {
		return Token{}, false
	}
	l.pos++
	digStart := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == digStart || l.pos >= len(l.src) || l.src[l.pos] != ']' {
		l.pos = save
		return Token{}, false
	}
	l.pos++
	return Token{Kind: Type, Text: base + l.src[start+len(base) : l.pos], Pos: start}, true
}

// scanIsNull assembles the two multi-word keyword tokens "IS NULL" and
// "IS NOT NULL" out of the whitespace-separated words that follow "IS".
func (l *Lexer) scanIsNull(start int) Token {
	save := l.pos
	skipSpace := func() {
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.pos++
		}
	}
	readWord := func() string {
		s := l.pos
		for l.pos < len(l.src) && isNameCont(l.src[l.pos]) {
			l.pos++
		}
		return strings.ToUpper(l.src[s:l.pos])
	}

	skipSpace()
	word := readWord()
	if word == "NOT" {
		skipSpace()
		if readWord() == "NULL" {
			return Token{Kind: Keyword, Text: IsNotNullKeyword, Pos: start}
		}
		l.pos = save
		return Token{Kind: Keyword, Text: "IS", Pos: start}
	}
	if word == "NULL" {
		return Token{Kind: Keyword, Text: IsNullKeyword, Pos: start}
	}
	l.pos = save
	return Token{Kind: Keyword, Text: "IS", Pos: start}
}

func isSpace(c byte) bool      { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool   { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isNameStart(c byte) bool  { return c == '_' || unicode.IsLetter(rune(c)) }
func isNameCont(c byte) bool   { return isNameStart(c) || isDigit(c) }
