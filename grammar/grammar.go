// Package grammar publishes the FIDL grammar in EBNF and a lexer driven
// directly by it.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"
)

//go:embed fidl.ebnf
var source []byte

// Start is the production a FIDL file is parsed from.
const Start = "File"

// Tokens lists the lexical productions that produce tokens, in tie-break
// order.
var Tokens = []string{
	"whitespace",
	"comment",
	"multilineComment",
	"annotationBlock",
	"string",
	"number",
	"ident",
	"lbrace",
	"rbrace",
	"lbracket",
	"rbracket",
	"dot",
	"star",
	"assign",
	"comma",
}

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar and verifies that every production is
// defined and reachable from Start.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("fidl.ebnf", bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Tokenize runs the grammar lexer over input.
func Tokenize(input []byte, filename string) ([]Token, error) {
	g, err := Load()
	if err != nil {
		return nil, err
	}
	return NewLexer(g, Tokens, input, filename).Tokenize()
}
