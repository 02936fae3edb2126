package codegen

import (
	"strings"

	"github.com/dhamidi/fidl/model"
)

// Rust generates one Rust source file per FIDL file with a module for
// every interface and type collection.
type Rust struct{}

func (Rust) Name() string { return "rust" }

func (r Rust) Generate(file *model.File, base string) ([]Output, error) {
	c := &code{}
	for _, u := range units(file) {
		c.blank()
		if err := r.unit(c, u); err != nil {
			return nil, err
		}
	}
	return []Output{{Path: base + ".rs", Content: c.String()}}, nil
}

func (r Rust) unit(c *code, u unit) error {
	major, minor := u.versionNumbers()
	c.line(0, "pub mod %s {", snake(u.name))
	c.line(1, "pub const VERSION_MAJOR: u32 = %d;", major)
	c.line(1, "pub const VERSION_MINOR: u32 = %d;", minor)

	for _, td := range u.typedefs {
		c.blank()
		c.line(1, "pub type %s = %s;", td.Name, rustType(td.Type))
	}
	for _, s := range u.structures {
		c.blank()
		c.line(1, "pub struct %s {", s.Name)
		for _, f := range s.Fields {
			c.line(2, "pub %s: %s,", snake(f.Name), rustType(f.Type))
		}
		c.line(1, "}")
	}
	for _, e := range u.enumerations {
		values, err := NumberEnum(e)
		if err != nil {
			return err
		}
		bits, err := enumSize(e, values)
		if err != nil {
			return err
		}
		c.blank()
		c.line(1, "#[repr(u%d)]", bits)
		c.line(1, "pub enum %s {", e.Name)
		for _, v := range values {
			c.line(2, "%s = %d,", v.Name, v.Value)
		}
		c.line(1, "}")
	}
	if len(u.attributes) > 0 || len(u.methods) > 0 {
		c.blank()
		c.line(1, "pub trait %s {", u.name)
		for _, a := range u.attributes {
			name, typ := snake(a.Name), rustType(a.Type)
			c.line(2, "fn get_%s(&self) -> %s;", name, typ)
			c.line(2, "fn set_%s(&mut self, %s: %s);", name, name, typ)
		}
		for _, m := range u.methods {
			c.line(2, "%s", r.signature(m))
		}
		c.line(1, "}")
	}
	c.line(0, "}")
	return nil
}

func (Rust) signature(m model.Method) string {
	params := []string{"&mut self"}
	for _, p := range m.In {
		params = append(params, snake(p.Name)+": "+rustType(p.Type))
	}
	sig := "fn " + snake(m.Name) + "(" + strings.Join(params, ", ") + ")"
	switch len(m.Out) {
	case 0:
	case 1:
		sig += " -> " + rustType(m.Out[0].Type)
	default:
		var out []string
		for _, p := range m.Out {
			out = append(out, rustType(p.Type))
		}
		sig += " -> (" + strings.Join(out, ", ") + ")"
	}
	return sig + ";"
}
