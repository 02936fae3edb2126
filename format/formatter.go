// Package format renders FIDL parse trees in canonical form. Comments,
// block comments and annotation blocks are kept at their logical position
// while layout, spacing and empty blocks are normalized.
package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/fidl/syntax"
)

type formatter struct {
	source []byte
	tree   *syntax.Tree
}

// Format renders tree, which must come from a successful parse of source.
func Format(source []byte, tree *syntax.Tree) (string, error) {
	lines, err := Lines(source, tree)
	if err != nil {
		return "", err
	}
	return Assemble(lines), nil
}

// Lines renders tree into indented lines without assembling them.
func Lines(source []byte, tree *syntax.Tree) ([]IndentedLine, error) {
	if tree == nil || tree.Len() == 0 {
		return nil, &Error{Rule: syntax.Grammar, Parent: syntax.Grammar}
	}
	f := &formatter{source: source, tree: tree}
	root := tree.Node(syntax.RootKey)
	if root.Rule != syntax.Grammar || len(root.Children) != 1 {
		return nil, &Error{Rule: root.Rule, Parent: syntax.Grammar, ParentStart: root.Start}
	}
	file := root.Children[0]
	if tree.Node(file).Rule != syntax.File {
		return nil, f.unexpected(file, syntax.RootKey)
	}
	return f.file(file)
}

// PrettyPrint parses and formats source.
func PrettyPrint(source []byte) ([]byte, error) {
	return PrettyPrintFile(source, "")
}

// PrettyPrintFile parses and formats source, using filename in parse
// errors.
func PrettyPrintFile(source []byte, filename string) ([]byte, error) {
	tree, err := syntax.Parse(source, syntax.WithFile(filename))
	if err != nil {
		return nil, err
	}
	out, err := Format(source, tree)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return []byte(out), nil
}

// SourceEncoder writes a tree as formatted FIDL.
type SourceEncoder struct {
	w io.Writer
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w}
}

func (e *SourceEncoder) Encode(source []byte, tree *syntax.Tree) error {
	out, err := Format(source, tree)
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.w, out)
	return err
}

func (f *formatter) text(k syntax.Key) string {
	return f.tree.Text(f.source, k)
}

// typeRef returns the text of a type reference without whitespace.
func (f *formatter) typeRef(k syntax.Key) string {
	return strings.Join(strings.Fields(f.text(k)), "")
}

func (f *formatter) unexpected(k, parent syntax.Key) error {
	p := f.tree.Node(parent)
	return &Error{Rule: f.tree.Node(k).Rule, Parent: p.Rule, ParentStart: p.Start}
}

func (f *formatter) sameLine(prev, next syntax.Key) bool {
	return bytes.IndexByte(f.source[f.tree.Node(prev).End:f.tree.Node(next).Start], '\n') < 0
}

// file renders the top level. Interfaces and type collections are separated
// from what precedes them by a blank line; comments directly above one stay
// attached to it.
func (f *formatter) file(k syntax.Key) ([]IndentedLine, error) {
	var lines []IndentedLine
	run := -1
	children := f.tree.Children(k)
	for i, c := range children {
		var (
			out []IndentedLine
			err error
		)
		switch f.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment:
			start := len(lines)
			if i > 0 && f.sameLine(children[i-1], c) {
				var own bool
				if lines, own = f.trail(lines, c, 0); own && run < 0 {
					run = start
				}
			} else {
				if run < 0 {
					run = start
				}
				lines = append(lines, f.comment(c, 0)...)
			}
			continue
		case syntax.Package:
			out, err = f.packageDecl(c, 0)
		case syntax.ImportModel:
			out, err = f.importModel(c, 0)
		case syntax.ImportNamespace:
			out, err = f.importNamespace(c, 0)
		case syntax.Interface:
			out, err = f.interfaceDecl(c, 0)
		case syntax.TypeCollection:
			out, err = f.typeCollection(c, 0)
		default:
			return nil, f.unexpected(c, k)
		}
		if err != nil {
			return nil, err
		}

		rule := f.tree.Node(c).Rule
		if (rule == syntax.Interface || rule == syntax.TypeCollection) && len(out) > 0 {
			first := run
			if first < 0 {
				first = len(lines)
			}
			lines = append(lines, out...)
			lines[first].LeadingNewline = true
		} else {
			lines = append(lines, out...)
		}
		run = -1
	}
	return lines, nil
}
