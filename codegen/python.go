package codegen

import (
	"path"
	"strings"

	"github.com/dhamidi/fidl/model"
)

// Python generates a package per FIDL file with one module for every
// interface and type collection.
//
// A "@details: id = N" annotation on an interface or method records its
// wire id; "@details: size = N" on an enumeration fixes its bit width.
type Python struct{}

func (Python) Name() string { return "python" }

func (p Python) Generate(file *model.File, base string) ([]Output, error) {
	outputs := []Output{{Path: path.Join(base, "__init__.py")}}
	for _, u := range units(file) {
		content, err := p.unit(u)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, Output{Path: path.Join(base, u.name+".py"), Content: content})
	}
	return outputs, nil
}

func (p Python) unit(u unit) (string, error) {
	c := &code{}
	c.line(0, "from dataclasses import dataclass")
	c.line(0, "from enum import IntEnum")
	c.blank()

	major, minor := u.versionNumbers()
	c.line(0, "VERSION_MAJOR: int = %d", major)
	c.line(0, "VERSION_MINOR: int = %d", minor)

	for _, td := range u.typedefs {
		c.blank()
		c.line(0, "%s = %s", td.Name, pythonType(td.Type))
	}
	for _, s := range u.structures {
		c.blank()
		c.blank()
		c.line(0, "@dataclass(frozen=True)")
		c.line(0, "class %s:", s.Name)
		if len(s.Fields) == 0 {
			c.line(1, "pass")
		}
		for _, f := range s.Fields {
			c.line(1, "%s: %s", f.Name, pythonType(f.Type))
		}
	}
	for _, e := range u.enumerations {
		values, err := NumberEnum(e)
		if err != nil {
			return "", err
		}
		bits, err := enumSize(e, values)
		if err != nil {
			return "", err
		}
		c.blank()
		c.blank()
		c.line(0, "class %s(IntEnum):", e.Name)
		c.line(1, `"""%d-bit enumeration."""`, bits)
		for _, v := range values {
			c.line(1, "%s = %d", v.Name, v.Value)
		}
	}

	id, hasID, err := detail(u.name, u.annotations, "id")
	if err != nil {
		return "", err
	}
	if !hasID && len(u.attributes) == 0 && len(u.methods) == 0 {
		return c.String(), nil
	}
	c.blank()
	c.blank()
	c.line(0, "class %s:", u.name)
	if hasID {
		c.line(1, "ID: int = %d", id)
	}
	for _, a := range u.attributes {
		typ := pythonType(a.Type)
		c.blank()
		c.line(1, "def get_%s(self) -> %s:", a.Name, typ)
		c.line(2, "raise NotImplementedError")
		c.blank()
		c.line(1, "def set_%s(self, %s: %s) -> None:", a.Name, a.Name, typ)
		c.line(2, "raise NotImplementedError")
	}
	for _, m := range u.methods {
		methodID, ok, err := detail(u.name+"."+m.Name, m.Annotations, "id")
		if err != nil {
			return "", err
		}
		c.blank()
		c.line(1, "%s", p.signature(m))
		if ok {
			c.line(2, `"""id = %d"""`, methodID)
		}
		c.line(2, "raise NotImplementedError")
	}
	return c.String(), nil
}

func (Python) signature(m model.Method) string {
	params := []string{"self"}
	for _, p := range m.In {
		params = append(params, p.Name+": "+pythonType(p.Type))
	}
	result := "None"
	switch len(m.Out) {
	case 0:
	case 1:
		result = pythonType(m.Out[0].Type)
	default:
		var out []string
		for _, p := range m.Out {
			out = append(out, pythonType(p.Type))
		}
		result = "tuple[" + strings.Join(out, ", ") + "]"
	}
	return "def " + m.Name + "(" + strings.Join(params, ", ") + ") -> " + result + ":"
}
