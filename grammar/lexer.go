package grammar

import (
	"fmt"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/fidl/syntax"
)

// Token is a lexeme matched by one of the grammar's token productions.
type Token struct {
	Kind     string
	Literal  string
	Position syntax.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input by matching the lexical productions of an EBNF
// grammar directly. It is slow and exists to check the hand-written
// syntax.Lexer against the published grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	tokens   []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

// NewLexer returns a lexer that recognizes the productions named in tokens.
// When two productions match the same length the one listed first wins.
func NewLexer(g ebnf.Grammar, tokens []string, input []byte, filename string) *Lexer {
	return &Lexer{
		grammar:  g,
		tokens:   tokens,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
	}
}

func (l *Lexer) Position() syntax.Position {
	return syntax.Position{
		File:   l.filename,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

// NextToken returns the longest match among the token productions. It
// returns ok=false at the end of input.
func (l *Lexer) NextToken() (tok Token, ok bool, err error) {
	if l.pos >= len(l.input) {
		return Token{Kind: "EOF", Position: l.Position()}, false, nil
	}
	start := l.Position()
	l.memo = make(map[memoKey]int)

	bestKind, bestLen := "", 0
	for _, name := range l.tokens {
		prod, found := l.grammar[name]
		if !found || prod.Expr == nil {
			return Token{}, false, fmt.Errorf("token production %s not defined", name)
		}
		l.visiting = make(map[memoKey]bool)
		if n, matched := l.match(prod.Expr, l.pos); matched && n > bestLen {
			bestKind, bestLen = name, n
		}
	}
	if bestLen == 0 {
		return Token{}, false, fmt.Errorf("%s: no token matches %q", start, l.input[l.pos])
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[start.Offset:l.pos]),
		Position: start,
	}, true, nil
}

// Tokenize reads every token in the input.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, ok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// match reports the length of the longest greedy match of expr at offset.
// A zero-length match is still a match, which matters for options and
// repetitions inside sequences.
func (l *Lexer) match(expr ebnf.Expression, offset int) (int, bool) {
	switch e := expr.(type) {
	case *ebnf.Token:
		s := e.String
		if offset+len(s) > len(l.input) || string(l.input[offset:offset+len(s)]) != s {
			return 0, false
		}
		return len(s), true

	case *ebnf.Range:
		if offset >= len(l.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return 0, false
		}
		ch := l.input[offset]
		return 1, ch >= e.Begin.String[0] && ch <= e.End.String[0]

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n, ok := l.match(item, offset+total)
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true

	case ebnf.Alternative:
		best, matched := 0, false
		for _, alt := range e {
			if n, ok := l.match(alt, offset); ok && (!matched || n > best) {
				best, matched = n, true
			}
		}
		return best, matched

	case *ebnf.Repetition:
		total := 0
		for {
			n, ok := l.match(e.Body, offset+total)
			if !ok || n == 0 {
				return total, true
			}
			total += n
		}

	case *ebnf.Option:
		n, ok := l.match(e.Body, offset)
		if !ok {
			return 0, true
		}
		return n, true

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return 0, false
}

func (l *Lexer) matchName(name string, offset int) (int, bool) {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return n, n >= 0
	}
	// Left recursion would never terminate; treat a re-entered production
	// as not matching.
	if l.visiting[key] {
		return 0, false
	}
	prod, found := l.grammar[name]
	if !found || prod.Expr == nil {
		l.memo[key] = -1
		return 0, false
	}

	l.visiting[key] = true
	n, ok := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	if !ok {
		l.memo[key] = -1
		return 0, false
	}
	l.memo[key] = n
	return n, true
}
