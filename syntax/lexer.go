package syntax

import (
	"bytes"
	"fmt"
)

// Lexer splits FIDL source into tokens. Whitespace and comments are
// returned as tokens too; the parser decides where they attach.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceTo(offset int) {
	for l.pos < offset {
		l.advance()
	}
}

// NextToken returns the next token. At the end of input it keeps
// returning TokenEOF.
func (l *Lexer) NextToken() Token {
	start := l.Position()
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: start, End: l.pos}
	}

	ch := l.peek()
	switch {
	case isSpace(ch):
		for isSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenWhitespace, start)
	case ch == '/' && l.peekN(1) == '/':
		for l.pos < len(l.input) && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenComment, start)
	case ch == '/' && l.peekN(1) == '*' && l.peekN(2) == '*':
		return l.scanDelimited(start, TokenMultilineComment, "**/", "multi-line comment")
	case ch == '<' && l.peekN(1) == '*' && l.peekN(2) == '*':
		return l.scanDelimited(start, TokenAnnotationBlock, "**>", "annotation block")
	case ch == '"':
		return l.scanString(start)
	case isDigit(ch):
		return l.scanNumber(start)
	case isIdentStart(ch):
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return l.token(TokenIdent, start)
	}

	if kind, ok := punctuation[ch]; ok {
		l.advance()
		return l.token(kind, start)
	}
	l.advance()
	return l.illegal(start, fmt.Sprintf("unexpected character %q", ch))
}

var punctuation = map[byte]TokenKind{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	'.': TokenDot,
	'*': TokenStar,
	'=': TokenAssign,
	',': TokenComma,
}

// Tokenize returns every token up to and including TokenEOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{
		Kind:    kind,
		Pos:     start,
		End:     l.pos,
		Literal: string(l.input[start.Offset:l.pos]),
	}
}

// illegal returns a TokenIllegal whose literal is the error message.
func (l *Lexer) illegal(start Position, msg string) Token {
	return Token{Kind: TokenIllegal, Pos: start, End: l.pos, Literal: msg}
}

func (l *Lexer) scanDelimited(start Position, kind TokenKind, closer, what string) Token {
	// The closer is searched for after the three byte opener, so "/**/" is
	// not a complete comment.
	idx := bytes.Index(l.input[l.pos+3:], []byte(closer))
	if idx < 0 {
		l.advanceTo(len(l.input))
		return l.illegal(start, "unterminated "+what)
	}
	l.advanceTo(l.pos + 3 + idx + len(closer))
	return l.token(kind, start)
}

func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for {
		if l.pos >= len(l.input) || l.peek() == '\n' {
			return l.illegal(start, "unterminated string")
		}
		if l.advance() == '"' {
			return l.token(TokenString, start)
		}
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') && isHexDigit(l.peekN(2)) {
		l.advance()
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
		return l.token(TokenNumber, start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') && isBinDigit(l.peekN(2)) {
		l.advance()
		l.advance()
		for isBinDigit(l.peek()) {
			l.advance()
		}
		return l.token(TokenNumber, start)
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.token(TokenNumber, start)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isBinDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
