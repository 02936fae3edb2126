package format

import (
	"strings"

	"github.com/dhamidi/fidl/syntax"
)

// single renders a construct that occupies one line: annotations above it,
// then keyword and parts joined by spaces, then every comment the construct
// contains as trailing comments.
func (f *formatter) single(k syntax.Key, indent int, keyword string, part func(c syntax.Key, parts []string) ([]string, error)) ([]IndentedLine, error) {
	var (
		lines    []IndentedLine
		comments []syntax.Key
		parts    []string
	)
	if keyword != "" {
		parts = append(parts, keyword)
	}
	for _, c := range f.tree.Children(k) {
		switch f.tree.Node(c).Rule {
		case syntax.AnnotationBlock:
			annotations, err := f.annotationBlock(c, indent)
			if err != nil {
				return nil, err
			}
			lines = append(lines, annotations...)
		case syntax.Comment, syntax.MultilineComment:
			comments = append(comments, c)
		default:
			var err error
			if parts, err = part(c, parts); err != nil {
				return nil, err
			}
		}
	}
	lines = append(lines, newLine(indent, strings.Join(parts, " "), f.tree.Node(k).Rule))
	for _, c := range comments {
		lines, _ = f.trail(lines, c, indent)
	}
	return lines, nil
}

func (f *formatter) packageDecl(k syntax.Key, indent int) ([]IndentedLine, error) {
	return f.single(k, indent, "package", func(c syntax.Key, parts []string) ([]string, error) {
		if f.tree.Node(c).Rule != syntax.TypeRef {
			return nil, f.unexpected(c, k)
		}
		return append(parts, f.typeRef(c)), nil
	})
}

func (f *formatter) importModel(k syntax.Key, indent int) ([]IndentedLine, error) {
	return f.single(k, indent, "import model", func(c syntax.Key, parts []string) ([]string, error) {
		if f.tree.Node(c).Rule != syntax.FilePath {
			return nil, f.unexpected(c, k)
		}
		return append(parts, f.text(c)), nil
	})
}

func (f *formatter) importNamespace(k syntax.Key, indent int) ([]IndentedLine, error) {
	return f.single(k, indent, "import", func(c syntax.Key, parts []string) ([]string, error) {
		switch f.tree.Node(c).Rule {
		case syntax.TypeRef:
			return append(parts, f.typeRef(c)), nil
		case syntax.Wildcard:
			parts[len(parts)-1] += ".*"
			return parts, nil
		case syntax.FilePath:
			return append(parts, "from", f.text(c)), nil
		}
		return nil, f.unexpected(c, k)
	})
}

func (f *formatter) typedef(k syntax.Key, indent int) ([]IndentedLine, error) {
	return f.single(k, indent, "typedef", func(c syntax.Key, parts []string) ([]string, error) {
		switch f.tree.Node(c).Rule {
		case syntax.TypeDec:
			return append(parts, f.typeRef(c)), nil
		case syntax.TypeRef:
			return append(parts, "is", f.typeRef(c)), nil
		}
		return nil, f.unexpected(c, k)
	})
}

func (f *formatter) attribute(k syntax.Key, indent int) ([]IndentedLine, error) {
	return f.single(k, indent, "attribute", func(c syntax.Key, parts []string) ([]string, error) {
		switch f.tree.Node(c).Rule {
		case syntax.TypeRef:
			return append(parts, f.typeRef(c)), nil
		case syntax.VariableName:
			return append(parts, f.text(c)), nil
		}
		return nil, f.unexpected(c, k)
	})
}

func (f *formatter) variableDeclaration(k syntax.Key, indent int) ([]IndentedLine, error) {
	return f.single(k, indent, "", func(c syntax.Key, parts []string) ([]string, error) {
		switch f.tree.Node(c).Rule {
		case syntax.TypeRef:
			return append(parts, f.typeRef(c)), nil
		case syntax.VariableName:
			return append(parts, f.text(c)), nil
		}
		return nil, f.unexpected(c, k)
	})
}

// enumValue keeps an explicit value exactly as written. Values are never
// assigned here.
func (f *formatter) enumValue(k syntax.Key, indent int) ([]IndentedLine, error) {
	return f.single(k, indent, "", func(c syntax.Key, parts []string) ([]string, error) {
		switch f.tree.Node(c).Rule {
		case syntax.VariableName:
			return append(parts, f.text(c)), nil
		case syntax.Number:
			return append(parts, "=", f.text(c)), nil
		}
		return nil, f.unexpected(c, k)
	})
}

func (f *formatter) interfaceDecl(k syntax.Key, indent int) ([]IndentedLine, error) {
	b := f.newBlock(k, indent)
	var name string
	return b.each(func() string { return "interface " + name + " {" }, func(c syntax.Key) error {
		switch f.tree.Node(c).Rule {
		case syntax.VariableName:
			name = f.text(c)
			return nil
		case syntax.Version:
			return b.add(f.version(c, indent+1))
		case syntax.Typedef:
			return b.add(f.typedef(c, indent+1))
		case syntax.Method:
			return b.add(f.method(c, indent+1))
		case syntax.Attribute:
			return b.add(f.attribute(c, indent+1))
		case syntax.Structure:
			return b.add(f.structure(c, indent+1))
		case syntax.Enumeration:
			return b.add(f.enumeration(c, indent+1))
		}
		return f.unexpected(c, k)
	})
}

func (f *formatter) typeCollection(k syntax.Key, indent int) ([]IndentedLine, error) {
	b := f.newBlock(k, indent)
	header := "typeCollection"
	return b.each(func() string { return header + " {" }, func(c syntax.Key) error {
		switch f.tree.Node(c).Rule {
		case syntax.VariableName:
			header += " " + f.text(c)
			return nil
		case syntax.Version:
			return b.add(f.version(c, indent+1))
		case syntax.Typedef:
			return b.add(f.typedef(c, indent+1))
		case syntax.Structure:
			return b.add(f.structure(c, indent+1))
		case syntax.Enumeration:
			return b.add(f.enumeration(c, indent+1))
		}
		return f.unexpected(c, k)
	})
}

func (f *formatter) version(k syntax.Key, indent int) ([]IndentedLine, error) {
	b := f.newBlock(k, indent)
	labels := []string{"major", "minor"}
	return b.each(func() string { return "version {" }, func(c syntax.Key) error {
		if f.tree.Node(c).Rule != syntax.Digits || len(labels) == 0 {
			return f.unexpected(c, k)
		}
		b.members([]IndentedLine{newLine(indent+1, labels[0]+" "+f.text(c), syntax.Digits)})
		labels = labels[1:]
		return nil
	})
}

func (f *formatter) method(k syntax.Key, indent int) ([]IndentedLine, error) {
	b := f.newBlock(k, indent)
	var name string
	return b.each(func() string { return "method " + name + " {" }, func(c syntax.Key) error {
		switch f.tree.Node(c).Rule {
		case syntax.VariableName:
			name = f.text(c)
			return nil
		case syntax.InputParams:
			return b.add(f.params(c, indent+1, "in"))
		case syntax.OutputParams:
			return b.add(f.params(c, indent+1, "out"))
		}
		return f.unexpected(c, k)
	})
}

// params renders an in or out section. A section with nothing but its
// brackets produces no output at all.
func (f *formatter) params(k syntax.Key, indent int, keyword string) ([]IndentedLine, error) {
	// Only brackets count as empty; a section holding just comments or an
	// annotation block is kept so the trivia survives.
	empty := true
	for _, c := range f.tree.Children(k) {
		if rule := f.tree.Node(c).Rule; rule != syntax.OpenBracket && rule != syntax.CloseBracket {
			empty = false
		}
	}
	if empty {
		return nil, nil
	}

	b := f.newBlock(k, indent)
	return b.each(func() string { return keyword + " {" }, func(c syntax.Key) error {
		if f.tree.Node(c).Rule != syntax.VariableDeclaration {
			return f.unexpected(c, k)
		}
		return b.add(f.variableDeclaration(c, indent+1))
	})
}

func (f *formatter) structure(k syntax.Key, indent int) ([]IndentedLine, error) {
	b := f.newBlock(k, indent)
	var name string
	return b.each(func() string { return "struct " + name + " {" }, func(c syntax.Key) error {
		switch f.tree.Node(c).Rule {
		case syntax.TypeDec:
			name = f.typeRef(c)
			return nil
		case syntax.VariableDeclaration:
			return b.add(f.variableDeclaration(c, indent+1))
		}
		return f.unexpected(c, k)
	})
}

func (f *formatter) enumeration(k syntax.Key, indent int) ([]IndentedLine, error) {
	b := f.newBlock(k, indent)
	var name string
	return b.each(func() string { return "enumeration " + name + " {" }, func(c syntax.Key) error {
		switch f.tree.Node(c).Rule {
		case syntax.TypeDec:
			name = f.typeRef(c)
			return nil
		case syntax.EnumValue:
			return b.add(f.enumValue(c, indent+1))
		}
		return f.unexpected(c, k)
	})
}
