package format

import (
	"bytes"
	"strings"

	"github.com/dhamidi/fidl/syntax"
)

// block collects the lines of a bracketed construct. Comments are placed by
// where they occur relative to the brackets: before "{" they trail the
// header, after body content on the same line they trail that line, before
// "}" they trail the previous line and after "}" they trail the closing
// line. Everything else in the body gets its own line.
type block struct {
	f        *formatter
	key      syntax.Key
	indent   int
	lines    []IndentedLine
	header   int
	pending  []syntax.Key
	closed   bool
	children []syntax.Key
	at       int
}

func (f *formatter) newBlock(k syntax.Key, indent int) *block {
	return &block{
		f:        f,
		key:      k,
		indent:   indent,
		header:   -1,
		children: f.tree.Children(k),
	}
}

// each calls fn for every child that is not trivia or a bracket. Trivia
// and brackets are handled by the block itself; header returns the text
// of the opening line once "{" is reached.
func (b *block) each(header func() string, fn func(c syntax.Key) error) ([]IndentedLine, error) {
	for i, c := range b.children {
		b.at = i
		var err error
		switch b.f.tree.Node(c).Rule {
		case syntax.AnnotationBlock:
			err = b.annotations(c)
		case syntax.Comment, syntax.MultilineComment:
			b.comment(c)
		case syntax.OpenBracket:
			b.open(header())
		case syntax.CloseBracket:
			b.close()
		default:
			err = fn(c)
		}
		if err != nil {
			return nil, err
		}
	}
	return b.lines, nil
}

func (b *block) annotations(c syntax.Key) error {
	lines, err := b.f.annotationBlock(c, b.indent)
	if err != nil {
		return err
	}
	b.lines = append(b.lines, lines...)
	return nil
}

func (b *block) open(text string) {
	b.lines = append(b.lines, newLine(b.indent, text, b.f.tree.Node(b.key).Rule))
	b.header = len(b.lines) - 1
	for _, c := range b.pending {
		b.lines, _ = b.f.trail(b.lines, c, b.indent+1)
	}
	b.pending = nil
}

func (b *block) comment(c syntax.Key) {
	switch {
	case b.header < 0:
		b.pending = append(b.pending, c)
	case b.closed:
		b.lines, _ = b.f.trail(b.lines, c, b.indent)
	case b.afterContentOnSameLine() || b.beforeClose():
		b.lines, _ = b.f.trail(b.lines, c, b.indent+1)
	default:
		b.lines = append(b.lines, b.f.comment(c, b.indent+1)...)
	}
}

// afterContentOnSameLine reports whether the current child starts on the
// line the previous child ends on. A comment directly after "{" does not
// count.
func (b *block) afterContentOnSameLine() bool {
	if b.at == 0 {
		return false
	}
	prev := b.f.tree.Node(b.children[b.at-1])
	if prev.Rule == syntax.OpenBracket {
		return false
	}
	cur := b.f.tree.Node(b.children[b.at])
	return bytes.IndexByte(b.f.source[prev.End:cur.Start], '\n') < 0
}

func (b *block) beforeClose() bool {
	next := b.at + 1
	return next < len(b.children) && b.f.tree.Node(b.children[next]).Rule == syntax.CloseBracket
}

// close merges "}" onto the header when nothing was emitted after it,
// otherwise "}" gets a line of its own.
func (b *block) close() {
	b.closed = true
	if b.header == len(b.lines)-1 {
		header := b.lines[b.header]
		sep := " "
		if strings.HasSuffix(header.Text, "{") {
			sep = ""
		}
		if merged, ok := header.Merge(newLine(b.indent, "}", syntax.CloseBracket), sep); ok {
			b.lines[b.header] = merged
			return
		}
	}
	b.lines = append(b.lines, newLine(b.indent, "}", syntax.CloseBracket))
}

// members appends the lines of a nested construct.
func (b *block) members(lines []IndentedLine) {
	b.lines = append(b.lines, lines...)
}

// add appends the lines of a nested construct rendered by one of the
// formatter's construct methods.
func (b *block) add(lines []IndentedLine, err error) error {
	if err != nil {
		return err
	}
	b.members(lines)
	return nil
}
