package model

import (
	"strconv"
	"strings"

	"github.com/dhamidi/fidl/syntax"
)

type builder struct {
	source []byte
	tree   *syntax.Tree
}

// Build walks a parse tree into a File. It fails on the first name that is
// declared twice within one scope.
func Build(source []byte, tree *syntax.Tree) (*File, error) {
	b := &builder{source: source, tree: tree}
	root := tree.Node(syntax.RootKey)
	if root.Rule != syntax.Grammar || len(root.Children) != 1 {
		return nil, &UnexpectedNodeError{Rule: root.Rule, Parent: syntax.Grammar, Span: b.span(syntax.RootKey)}
	}
	return b.file(root.Children[0])
}

func (b *builder) text(k syntax.Key) string {
	return b.tree.Text(b.source, k)
}

func (b *builder) span(k syntax.Key) Span {
	n := b.tree.Node(k)
	return Span{Start: n.Start, End: n.End}
}

func (b *builder) unexpected(k, parent syntax.Key) error {
	return &UnexpectedNodeError{
		Rule:   b.tree.Node(k).Rule,
		Parent: b.tree.Node(parent).Rule,
		Span:   b.span(k),
	}
}

// scope tracks the names declared in one namespace.
type scope map[string]Span

func (s scope) declare(kind, name string, at Span) error {
	if first, ok := s[name]; ok {
		return &DuplicateError{Kind: kind, Name: name, First: first, Second: at}
	}
	s[name] = at
	return nil
}

func (b *builder) typ(k syntax.Key) Type {
	ref := strings.Join(strings.Fields(b.text(k)), "")
	if name, ok := strings.CutSuffix(ref, "[]"); ok {
		return Type{Name: name, Array: true}
	}
	return Type{Name: ref}
}

func (b *builder) number(k syntax.Key) (uint64, error) {
	text := b.text(k)
	v, err := ParseNumber(text)
	if err != nil {
		return 0, &NumberError{Text: text, Span: b.span(k), Err: err}
	}
	return v, nil
}

// ParseNumber reads a decimal, 0x hexadecimal or 0b binary number.
func ParseNumber(text string) (uint64, error) {
	digits, base := text, 10
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		digits, base = text[2:], 16
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		digits, base = text[2:], 2
	}
	return strconv.ParseUint(digits, base, 64)
}

func (b *builder) annotations(k syntax.Key) []Annotation {
	var result []Annotation
	for _, a := range b.tree.ChildrenOfRule(k, syntax.Annotation) {
		var ann Annotation
		if name, ok := b.tree.FirstChildOfRule(a, syntax.AnnotationName); ok {
			ann.Name = b.text(name)
		}
		if content, ok := b.tree.FirstChildOfRule(a, syntax.AnnotationContent); ok {
			ann.Content = normalizeContent(b.text(content))
		}
		result = append(result, ann)
	}
	return result
}

// normalizeContent trims every line of an annotation so layout changes do
// not change its meaning.
func normalizeContent(s string) string {
	rows := strings.Split(s, "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSpace(row)
	}
	return strings.Join(rows, "\n")
}

func (b *builder) file(k syntax.Key) (*File, error) {
	f := &File{}
	interfaces, collections := scope{}, scope{}
	for _, c := range b.tree.Children(k) {
		switch b.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment:
		case syntax.Package:
			if ref, ok := b.tree.FirstChildOfRule(c, syntax.TypeRef); ok {
				f.Package = b.typ(ref).Name
			}
		case syntax.ImportModel:
			imp := Import{Span: b.span(c)}
			if path, ok := b.tree.FirstChildOfRule(c, syntax.FilePath); ok {
				imp.Path = strings.Trim(b.text(path), `"`)
			}
			f.Imports = append(f.Imports, imp)
		case syntax.ImportNamespace:
			f.Namespaces = append(f.Namespaces, b.namespace(c))
		case syntax.Interface:
			iface, err := b.iface(c)
			if err != nil {
				return nil, err
			}
			if err := interfaces.declare("interface", iface.Name, iface.Span); err != nil {
				return nil, err
			}
			f.Interfaces = append(f.Interfaces, iface)
		case syntax.TypeCollection:
			tc, err := b.typeCollection(c)
			if err != nil {
				return nil, err
			}
			if tc.Name != "" {
				if err := collections.declare("type collection", tc.Name, tc.Span); err != nil {
					return nil, err
				}
			}
			f.TypeCollections = append(f.TypeCollections, tc)
		default:
			return nil, b.unexpected(c, k)
		}
	}
	return f, nil
}

func (b *builder) namespace(k syntax.Key) Namespace {
	ns := Namespace{Span: b.span(k)}
	for _, c := range b.tree.Children(k) {
		switch b.tree.Node(c).Rule {
		case syntax.TypeRef:
			ns.Name = b.typ(c).Name
		case syntax.Wildcard:
			ns.Wildcard = true
		case syntax.FilePath:
			ns.Path = strings.Trim(b.text(c), `"`)
		}
	}
	return ns
}

// members holds the declarations interfaces and type collections share.
type members struct {
	version      *Version
	typedefs     []Typedef
	structures   []Structure
	enumerations []Enumeration
	types        scope
}

func (m *members) add(b *builder, c syntax.Key) (bool, error) {
	switch b.tree.Node(c).Rule {
	case syntax.Version:
		v, err := b.version(c)
		if err != nil {
			return true, err
		}
		if m.version != nil {
			return true, &DuplicateError{Kind: "version", First: m.version.Span, Second: v.Span}
		}
		m.version = v
	case syntax.Typedef:
		td, err := b.typedef(c)
		if err != nil {
			return true, err
		}
		if err := m.types.declare("typedef", td.Name, td.Span); err != nil {
			return true, err
		}
		m.typedefs = append(m.typedefs, td)
	case syntax.Structure:
		s, err := b.structure(c)
		if err != nil {
			return true, err
		}
		if err := m.types.declare("struct", s.Name, s.Span); err != nil {
			return true, err
		}
		m.structures = append(m.structures, s)
	case syntax.Enumeration:
		e, err := b.enumeration(c)
		if err != nil {
			return true, err
		}
		if err := m.types.declare("enumeration", e.Name, e.Span); err != nil {
			return true, err
		}
		m.enumerations = append(m.enumerations, e)
	default:
		return false, nil
	}
	return true, nil
}

func (b *builder) iface(k syntax.Key) (*Interface, error) {
	iface := &Interface{Span: b.span(k)}
	m := &members{types: scope{}}
	attributes, methods := scope{}, scope{}
	for _, c := range b.tree.Children(k) {
		if handled, err := m.add(b, c); err != nil {
			return nil, err
		} else if handled {
			continue
		}
		switch b.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment, syntax.OpenBracket, syntax.CloseBracket:
		case syntax.AnnotationBlock:
			iface.Annotations = b.annotations(c)
		case syntax.VariableName:
			iface.Name = b.text(c)
		case syntax.Attribute:
			attr, err := b.attribute(c)
			if err != nil {
				return nil, err
			}
			if err := attributes.declare("attribute", attr.Name, attr.Span); err != nil {
				return nil, err
			}
			iface.Attributes = append(iface.Attributes, attr)
		case syntax.Method:
			method, err := b.method(c)
			if err != nil {
				return nil, err
			}
			if err := methods.declare("method", method.Name, method.Span); err != nil {
				return nil, err
			}
			iface.Methods = append(iface.Methods, method)
		default:
			return nil, b.unexpected(c, k)
		}
	}
	iface.Version = m.version
	iface.Typedefs = m.typedefs
	iface.Structures = m.structures
	iface.Enumerations = m.enumerations
	return iface, nil
}

func (b *builder) typeCollection(k syntax.Key) (*TypeCollection, error) {
	tc := &TypeCollection{Span: b.span(k)}
	m := &members{types: scope{}}
	for _, c := range b.tree.Children(k) {
		if handled, err := m.add(b, c); err != nil {
			return nil, err
		} else if handled {
			continue
		}
		switch b.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment, syntax.OpenBracket, syntax.CloseBracket:
		case syntax.AnnotationBlock:
			tc.Annotations = b.annotations(c)
		case syntax.VariableName:
			tc.Name = b.text(c)
		default:
			return nil, b.unexpected(c, k)
		}
	}
	tc.Version = m.version
	tc.Typedefs = m.typedefs
	tc.Structures = m.structures
	tc.Enumerations = m.enumerations
	return tc, nil
}

func (b *builder) version(k syntax.Key) (*Version, error) {
	v := &Version{Span: b.span(k)}
	digits := b.tree.ChildrenOfRule(k, syntax.Digits)
	if len(digits) != 2 {
		return nil, &UnexpectedNodeError{Rule: syntax.Digits, Parent: syntax.Version, Span: v.Span}
	}
	var err error
	if v.Major, err = b.number(digits[0]); err != nil {
		return nil, err
	}
	if v.Minor, err = b.number(digits[1]); err != nil {
		return nil, err
	}
	return v, nil
}

func (b *builder) typedef(k syntax.Key) (Typedef, error) {
	td := Typedef{Span: b.span(k)}
	for _, c := range b.tree.Children(k) {
		switch b.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment:
		case syntax.AnnotationBlock:
			td.Annotations = b.annotations(c)
		case syntax.TypeDec:
			td.Name = b.typ(c).Name
		case syntax.TypeRef:
			td.Type = b.typ(c)
		default:
			return td, b.unexpected(c, k)
		}
	}
	return td, nil
}

func (b *builder) attribute(k syntax.Key) (Attribute, error) {
	field, err := b.field(k)
	if err != nil {
		return Attribute{}, err
	}
	return Attribute(field), nil
}

// field reads a variable declaration or an attribute, which share their
// shape.
func (b *builder) field(k syntax.Key) (Field, error) {
	f := Field{Span: b.span(k)}
	for _, c := range b.tree.Children(k) {
		switch b.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment:
		case syntax.AnnotationBlock:
			f.Annotations = b.annotations(c)
		case syntax.TypeRef:
			f.Type = b.typ(c)
		case syntax.VariableName:
			f.Name = b.text(c)
		default:
			return f, b.unexpected(c, k)
		}
	}
	return f, nil
}

// fields reads the variable declarations of a struct or parameter list.
func (b *builder) fields(k syntax.Key, kind string) ([]Field, error) {
	var result []Field
	names := scope{}
	for _, c := range b.tree.ChildrenOfRule(k, syntax.VariableDeclaration) {
		f, err := b.field(c)
		if err != nil {
			return nil, err
		}
		if err := names.declare(kind, f.Name, f.Span); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, nil
}

func (b *builder) method(k syntax.Key) (Method, error) {
	m := Method{Span: b.span(k)}
	for _, c := range b.tree.Children(k) {
		var err error
		switch b.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment, syntax.OpenBracket, syntax.CloseBracket:
		case syntax.AnnotationBlock:
			m.Annotations = b.annotations(c)
		case syntax.VariableName:
			m.Name = b.text(c)
		case syntax.InputParams:
			m.In, err = b.fields(c, "input parameter")
		case syntax.OutputParams:
			m.Out, err = b.fields(c, "output parameter")
		default:
			err = b.unexpected(c, k)
		}
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func (b *builder) structure(k syntax.Key) (Structure, error) {
	s := Structure{Span: b.span(k)}
	if dec, ok := b.tree.FirstChildOfRule(k, syntax.TypeDec); ok {
		s.Name = b.typ(dec).Name
	}
	if block, ok := b.tree.FirstChildOfRule(k, syntax.AnnotationBlock); ok {
		s.Annotations = b.annotations(block)
	}
	fields, err := b.fields(k, "field")
	if err != nil {
		return s, err
	}
	s.Fields = fields
	return s, nil
}

func (b *builder) enumeration(k syntax.Key) (Enumeration, error) {
	e := Enumeration{Span: b.span(k)}
	names := scope{}
	for _, c := range b.tree.Children(k) {
		switch b.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment, syntax.OpenBracket, syntax.CloseBracket:
		case syntax.AnnotationBlock:
			e.Annotations = b.annotations(c)
		case syntax.TypeDec:
			e.Name = b.typ(c).Name
		case syntax.EnumValue:
			v, err := b.enumValue(c)
			if err != nil {
				return e, err
			}
			if err := names.declare("enumerator", v.Name, v.Span); err != nil {
				return e, err
			}
			e.Values = append(e.Values, v)
		default:
			return e, b.unexpected(c, k)
		}
	}
	return e, nil
}

func (b *builder) enumValue(k syntax.Key) (EnumValue, error) {
	v := EnumValue{Span: b.span(k)}
	for _, c := range b.tree.Children(k) {
		switch b.tree.Node(c).Rule {
		case syntax.Comment, syntax.MultilineComment:
		case syntax.AnnotationBlock:
			v.Annotations = b.annotations(c)
		case syntax.VariableName:
			v.Name = b.text(c)
		case syntax.Number:
			n, err := b.number(c)
			if err != nil {
				return v, err
			}
			v.Value = &n
		default:
			return v, b.unexpected(c, k)
		}
	}
	return v, nil
}
