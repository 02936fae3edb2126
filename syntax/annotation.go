package syntax

// parseAnnotationBlock splits a "<** ... **>" token into annotations. An
// annotation starts at "@name:" when the "@" begins the block or follows
// whitespace; its content runs until the next annotation or the closing
// "**>" and is recorded without surrounding whitespace.
func (p *parser) parseAnnotationBlock(parent Key, tok Token) error {
	block := p.tree.add(AnnotationBlock, tok.Start(), tok.End)
	p.tree.attach(parent, block)

	bodyStart := tok.Start() + len("<**")
	bodyEnd := tok.End - len("**>")
	body := p.input[bodyStart:bodyEnd]

	type mark struct{ at, nameEnd, colon int }
	var marks []mark
	for i := 0; i < len(body); i++ {
		if body[i] != '@' || (i > 0 && !isSpace(body[i-1])) {
			continue
		}
		j := i + 1
		if j >= len(body) || !isIdentStart(body[j]) {
			continue
		}
		for j < len(body) && isIdentPart(body[j]) {
			j++
		}
		c := j
		for c < len(body) && (body[c] == ' ' || body[c] == '\t') {
			c++
		}
		if c < len(body) && body[c] == ':' {
			marks = append(marks, mark{at: i, nameEnd: j, colon: c})
			i = c
		}
	}

	if len(marks) == 0 {
		return &Error{Pos: tok.Pos, Size: len(p.input), Message: "annotation block must contain at least one @name: annotation"}
	}
	for i := 0; i < marks[0].at; i++ {
		if !isSpace(body[i]) {
			return &Error{Pos: tok.Pos, Size: len(p.input), Message: "unexpected text before the first annotation"}
		}
	}

	for i, m := range marks {
		end := len(body)
		if i+1 < len(marks) {
			end = marks[i+1].at
		}
		cStart, cEnd := m.colon+1, end
		for cStart < cEnd && isSpace(body[cStart]) {
			cStart++
		}
		for cEnd > cStart && isSpace(body[cEnd-1]) {
			cEnd--
		}

		a := p.tree.add(Annotation, bodyStart+m.at, bodyStart+cEnd)
		if cEnd == cStart {
			p.tree.setEnd(a, bodyStart+m.colon+1)
		}
		p.tree.attach(block, a)
		name := p.tree.add(AnnotationName, bodyStart+m.at+1, bodyStart+m.nameEnd)
		p.tree.attach(a, name)
		content := p.tree.add(AnnotationContent, bodyStart+cStart, bodyStart+cEnd)
		p.tree.attach(a, content)
	}
	return nil
}
