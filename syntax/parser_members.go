package syntax

// block parses "{" { member } "}" as children of k and finishes k. The
// member callback receives the token that starts the member, past any
// leading annotation block.
func (p *parser) block(k Key, what string, member func(tok Token) error) error {
	if _, err := p.leaf(k, TokenLBrace, OpenBracket, `"{"`); err != nil {
		return err
	}
	for {
		p.comments(k)
		tok := p.member()
		if tok.Kind == TokenRBrace && p.tok().Kind == TokenRBrace {
			break
		}
		if tok.Kind == TokenEOF || tok.Kind == TokenRBrace {
			return p.unexpected(what)
		}
		if err := member(tok); err != nil {
			return err
		}
	}
	if _, err := p.leaf(k, TokenRBrace, CloseBracket, `"}"`); err != nil {
		return err
	}
	p.close(k)
	return nil
}

func (p *parser) parseInterface(parent Key) error {
	k, err := p.open(parent, Interface)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "interface"); err != nil {
		return err
	}
	if _, err := p.leaf(k, TokenIdent, VariableName, "interface name"); err != nil {
		return err
	}
	return p.block(k, "interface member or \"}\"", func(tok Token) error {
		switch {
		case tok.isKeyword("version"):
			return p.parseVersion(k)
		case tok.isKeyword("typedef"):
			return p.parseTypedef(k)
		case tok.isKeyword("method"):
			return p.parseMethod(k)
		case tok.isKeyword("attribute"):
			return p.parseAttribute(k)
		case tok.isKeyword("struct"):
			return p.parseStructure(k)
		case tok.isKeyword("enumeration"):
			return p.parseEnumeration(k)
		}
		return p.unexpected("version, typedef, method, attribute, struct or enumeration")
	})
}

func (p *parser) parseTypeCollection(parent Key) error {
	k, err := p.open(parent, TypeCollection)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "typeCollection"); err != nil {
		return err
	}
	if p.lookahead(0).Kind == TokenIdent {
		if _, err := p.leaf(k, TokenIdent, VariableName, "type collection name"); err != nil {
			return err
		}
	}
	return p.block(k, "type collection member or \"}\"", func(tok Token) error {
		switch {
		case tok.isKeyword("version"):
			return p.parseVersion(k)
		case tok.isKeyword("typedef"):
			return p.parseTypedef(k)
		case tok.isKeyword("struct"):
			return p.parseStructure(k)
		case tok.isKeyword("enumeration"):
			return p.parseEnumeration(k)
		}
		return p.unexpected("version, typedef, struct or enumeration")
	})
}

func (p *parser) parseVersion(parent Key) error {
	k, err := p.open(parent, Version)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "version"); err != nil {
		return err
	}
	if _, err := p.leaf(k, TokenLBrace, OpenBracket, `"{"`); err != nil {
		return err
	}
	for _, kw := range []string{"major", "minor"} {
		if err := p.keyword(k, kw); err != nil {
			return err
		}
		if err := p.digits(k); err != nil {
			return err
		}
	}
	if _, err := p.leaf(k, TokenRBrace, CloseBracket, `"}"`); err != nil {
		return err
	}
	p.close(k)
	return nil
}

func (p *parser) digits(parent Key) error {
	p.comments(parent)
	tok := p.tok()
	if tok.Kind != TokenNumber {
		return p.unexpected("version number")
	}
	for i := 0; i < len(tok.Literal); i++ {
		if !isDigit(tok.Literal[i]) {
			return p.errorf("version number %s must be decimal", tok.Literal)
		}
	}
	_, err := p.leaf(parent, TokenNumber, Digits, "version number")
	return err
}

func (p *parser) parseTypedef(parent Key) error {
	k, err := p.open(parent, Typedef)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "typedef"); err != nil {
		return err
	}
	if err := p.typeRef(k, TypeDec); err != nil {
		return err
	}
	if err := p.keyword(k, "is"); err != nil {
		return err
	}
	if err := p.typeRef(k, TypeRef); err != nil {
		return err
	}
	p.close(k)
	return nil
}

func (p *parser) parseAttribute(parent Key) error {
	k, err := p.open(parent, Attribute)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "attribute"); err != nil {
		return err
	}
	if err := p.typeRef(k, TypeRef); err != nil {
		return err
	}
	if _, err := p.leaf(k, TokenIdent, VariableName, "attribute name"); err != nil {
		return err
	}
	p.close(k)
	return nil
}

func (p *parser) parseMethod(parent Key) error {
	k, err := p.open(parent, Method)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "method"); err != nil {
		return err
	}
	if _, err := p.leaf(k, TokenIdent, VariableName, "method name"); err != nil {
		return err
	}
	seenIn, seenOut := false, false
	return p.block(k, `"in", "out" or "}"`, func(tok Token) error {
		switch {
		case tok.isKeyword("in") && !seenIn && !seenOut:
			seenIn = true
			return p.parseParams(k, InputParams, "in")
		case tok.isKeyword("out") && !seenOut:
			seenOut = true
			return p.parseParams(k, OutputParams, "out")
		}
		return p.unexpected(`"in", "out" or "}"`)
	})
}

func (p *parser) parseParams(parent Key, rule Rule, kw string) error {
	k, err := p.open(parent, rule)
	if err != nil {
		return err
	}
	if err := p.keyword(k, kw); err != nil {
		return err
	}
	return p.block(k, `parameter or "}"`, func(tok Token) error {
		if tok.Kind != TokenIdent {
			return p.unexpected(`parameter or "}"`)
		}
		return p.parseVariableDeclaration(k)
	})
}

func (p *parser) parseStructure(parent Key) error {
	k, err := p.open(parent, Structure)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "struct"); err != nil {
		return err
	}
	if err := p.typeRef(k, TypeDec); err != nil {
		return err
	}
	return p.block(k, `field or "}"`, func(tok Token) error {
		if tok.Kind != TokenIdent {
			return p.unexpected(`field or "}"`)
		}
		return p.parseVariableDeclaration(k)
	})
}

func (p *parser) parseVariableDeclaration(parent Key) error {
	k, err := p.open(parent, VariableDeclaration)
	if err != nil {
		return err
	}
	if err := p.typeRef(k, TypeRef); err != nil {
		return err
	}
	if _, err := p.leaf(k, TokenIdent, VariableName, "variable name"); err != nil {
		return err
	}
	p.close(k)
	return nil
}

func (p *parser) parseEnumeration(parent Key) error {
	k, err := p.open(parent, Enumeration)
	if err != nil {
		return err
	}
	if err := p.keyword(k, "enumeration"); err != nil {
		return err
	}
	if err := p.typeRef(k, TypeDec); err != nil {
		return err
	}
	return p.block(k, `enumerator or "}"`, func(tok Token) error {
		if tok.Kind != TokenIdent {
			return p.unexpected(`enumerator or "}"`)
		}
		return p.parseEnumValue(k)
	})
}

func (p *parser) parseEnumValue(parent Key) error {
	k, err := p.open(parent, EnumValue)
	if err != nil {
		return err
	}
	if _, err := p.leaf(k, TokenIdent, VariableName, "enumerator name"); err != nil {
		return err
	}
	if p.lookahead(0).Kind == TokenAssign {
		if _, err := p.expect(k, TokenAssign, `"="`); err != nil {
			return err
		}
		if _, err := p.leaf(k, TokenNumber, Number, "number"); err != nil {
			return err
		}
	}
	if p.lookahead(0).Kind == TokenComma {
		if _, err := p.expect(k, TokenComma, `","`); err != nil {
			return err
		}
	}
	p.close(k)
	return nil
}
