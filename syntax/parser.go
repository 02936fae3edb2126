package syntax

import (
	"bytes"
	"fmt"
)

type Option func(*parser)

func WithFile(path string) Option {
	return func(p *parser) {
		p.file = path
	}
}

type parser struct {
	file   string
	input  []byte
	tokens []Token
	pos    int
	tree   *Tree
}

// Parse parses a complete FIDL file. The returned tree is rooted at RootKey,
// a Grammar node whose only child is the File production spanning all of
// source.
func Parse(source []byte, opts ...Option) (*Tree, error) {
	p := &parser{input: source, tree: &Tree{}}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.tokenize(); err != nil {
		return nil, err
	}

	root := p.tree.add(Grammar, 0, len(source))
	file := p.tree.add(File, 0, len(source))
	p.tree.attach(root, file)
	if err := p.parseFile(file); err != nil {
		return nil, err
	}
	return p.tree, nil
}

func (p *parser) tokenize() error {
	lexer := NewLexer(p.input, p.file)
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenIllegal:
			return &Error{Pos: tok.Pos, Size: len(p.input), Message: tok.Literal}
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			return nil
		}
	}
}

func (p *parser) tok() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

// lookahead returns the n-th token from the current position, skipping
// comments without consuming them.
func (p *parser) lookahead(n int) Token {
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].isComment() {
			continue
		}
		if n == 0 {
			return p.tokens[i]
		}
		n--
	}
	return p.tokens[len(p.tokens)-1]
}

// member returns the token that decides which member starts at the current
// position: the first token after an optional annotation block.
func (p *parser) member() Token {
	if p.lookahead(0).Kind == TokenAnnotationBlock {
		return p.lookahead(1)
	}
	return p.lookahead(0)
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{Pos: p.tok().Pos, Size: len(p.input), Message: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected(expected string) error {
	tok := p.tok()
	if tok.isComment() {
		tok = p.lookahead(0)
	}
	return &Error{Pos: tok.Pos, Size: len(p.input), Found: tok.String(), Expected: expected}
}

// comments attaches every comment at the current position to parent.
func (p *parser) comments(parent Key) {
	for p.tok().isComment() {
		p.leafFrom(parent, p.advance())
	}
}

func (p *parser) leafFrom(parent Key, tok Token) Key {
	rule := Comment
	if tok.Kind == TokenMultilineComment {
		rule = MultilineComment
	}
	k := p.tree.add(rule, tok.Start(), tok.End)
	p.tree.attach(parent, k)
	return k
}

// absorb attaches comments that start on the same source line as the last
// consumed token to k, so a trailing comment stays with its construct.
func (p *parser) absorb(k Key) {
	last := p.tokens[p.pos-1].End
	for tok := p.tok(); tok.isComment(); tok = p.tok() {
		if bytes.IndexByte(p.input[last:tok.Start()], '\n') >= 0 {
			return
		}
		p.leafFrom(k, p.advance())
		last = tok.End
	}
}

// open starts a construct of the given rule under parent. A leading
// annotation block and the comments after it become its first children.
func (p *parser) open(parent Key, rule Rule) (Key, error) {
	k := p.tree.add(rule, p.tok().Start(), p.tok().End)
	p.tree.attach(parent, k)
	if p.tok().Kind == TokenAnnotationBlock {
		if err := p.parseAnnotationBlock(k, p.advance()); err != nil {
			return k, err
		}
		p.comments(k)
	}
	return k, nil
}

// close absorbs trailing comments and fixes the end of k.
func (p *parser) close(k Key) {
	p.absorb(k)
	p.tree.setEnd(k, p.tokens[p.pos-1].End)
}

func (p *parser) expect(parent Key, kind TokenKind, what string) (Token, error) {
	p.comments(parent)
	if p.tok().Kind != kind {
		return Token{}, p.unexpected(what)
	}
	return p.advance(), nil
}

func (p *parser) keyword(parent Key, kw string) error {
	p.comments(parent)
	if !p.tok().isKeyword(kw) {
		return p.unexpected(fmt.Sprintf("%q", kw))
	}
	p.advance()
	return nil
}

// leaf consumes a token of the given kind and records it as a terminal node.
func (p *parser) leaf(parent Key, kind TokenKind, rule Rule, what string) (Key, error) {
	tok, err := p.expect(parent, kind, what)
	if err != nil {
		return 0, err
	}
	k := p.tree.add(rule, tok.Start(), tok.End)
	p.tree.attach(parent, k)
	return k, nil
}

// typeRef parses ident { "." ident } [ "[" "]" ]. Comments are not allowed
// inside a type reference.
func (p *parser) typeRef(parent Key, rule Rule) error {
	first, err := p.expect(parent, TokenIdent, "type name")
	if err != nil {
		return err
	}
	end := first.End
	for p.tok().Kind == TokenDot && p.tokens[p.pos+1].Kind == TokenIdent {
		p.advance()
		end = p.advance().End
	}
	if rule == TypeRef && p.tok().Kind == TokenLBracket {
		p.advance()
		if p.tok().Kind != TokenRBracket {
			return p.unexpected(`"]"`)
		}
		end = p.advance().End
	}
	k := p.tree.add(rule, first.Start(), end)
	p.tree.attach(parent, k)
	return nil
}

func (p *parser) parseFile(file Key) error {
	for {
		p.comments(file)
		tok := p.member()
		switch {
		case tok.Kind == TokenEOF:
			if p.tok().Kind == TokenAnnotationBlock {
				return p.unexpected("interface or typeCollection after annotation")
			}
			return nil
		case tok.isKeyword("package"):
			if err := p.parsePackage(file); err != nil {
				return err
			}
		case tok.isKeyword("import"):
			if err := p.parseImport(file); err != nil {
				return err
			}
		case tok.isKeyword("interface"):
			if err := p.parseInterface(file); err != nil {
				return err
			}
		case tok.isKeyword("typeCollection"):
			if err := p.parseTypeCollection(file); err != nil {
				return err
			}
		default:
			return p.unexpected("package, import, interface or typeCollection")
		}
	}
}

func (p *parser) parsePackage(parent Key) error {
	if p.tok().Kind == TokenAnnotationBlock {
		return p.errorf("annotations are not allowed on package declarations")
	}
	k, err := p.open(parent, Package)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "package"); err != nil {
		return err
	}
	if err := p.typeRef(k, TypeRef); err != nil {
		return err
	}
	p.close(k)
	return nil
}

func (p *parser) parseImport(parent Key) error {
	if p.tok().Kind == TokenAnnotationBlock {
		return p.errorf("annotations are not allowed on imports")
	}
	if p.lookahead(1).isKeyword("model") && p.lookahead(2).Kind == TokenString {
		k, err := p.open(parent, ImportModel)
		if err != nil {
			return err
		}
		if err := p.keyword(k, "import"); err != nil {
			return err
		}
		if err := p.keyword(k, "model"); err != nil {
			return err
		}
		if _, err := p.leaf(k, TokenString, FilePath, "file path"); err != nil {
			return err
		}
		p.close(k)
		return nil
	}

	k, err := p.open(parent, ImportNamespace)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "import"); err != nil {
		return err
	}
	if err := p.typeRef(k, TypeRef); err != nil {
		return err
	}
	if p.lookahead(0).Kind == TokenDot {
		if _, err := p.expect(k, TokenDot, `"."`); err != nil {
			return err
		}
		if _, err := p.leaf(k, TokenStar, Wildcard, `"*"`); err != nil {
			return err
		}
	}
	if err := p.keyword(k, "from"); err != nil {
		return err
	}
	if _, err := p.leaf(k, TokenString, FilePath, "file path"); err != nil {
		return err
	}
	p.close(k)
	return nil
}
