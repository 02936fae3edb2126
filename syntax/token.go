package syntax

import "fmt"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIllegal
	TokenWhitespace
	TokenIdent
	TokenNumber
	TokenString
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenDot
	TokenStar
	TokenAssign
	TokenComma
	TokenComment
	TokenMultilineComment
	TokenAnnotationBlock
)

// Token kind names match the lexical productions of fidl.ebnf.
var tokenKindNames = map[TokenKind]string{
	TokenEOF:              "EOF",
	TokenIllegal:          "illegal",
	TokenWhitespace:       "whitespace",
	TokenIdent:            "ident",
	TokenNumber:           "number",
	TokenString:           "string",
	TokenLBrace:           "lbrace",
	TokenRBrace:           "rbrace",
	TokenLBracket:         "lbracket",
	TokenRBracket:         "rbracket",
	TokenDot:              "dot",
	TokenStar:             "star",
	TokenAssign:           "assign",
	TokenComma:            "comma",
	TokenComment:          "comment",
	TokenMultilineComment: "multilineComment",
	TokenAnnotationBlock:  "annotationBlock",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown"
}

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind    TokenKind
	Pos     Position
	End     int
	Literal string
}

// Start returns the byte offset of the first byte of the token.
func (t Token) Start() int {
	return t.Pos.Offset
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of file"
	case TokenIllegal:
		return t.Literal
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Literal)
}

func (t Token) isComment() bool {
	return t.Kind == TokenComment || t.Kind == TokenMultilineComment
}

func (t Token) isKeyword(kw string) bool {
	return t.Kind == TokenIdent && t.Literal == kw
}
