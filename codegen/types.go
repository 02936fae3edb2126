package codegen

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/dhamidi/fidl/model"
)

// builtin maps the FIDL built-in types to their Rust and Python names.
var builtin = map[string]struct{ rust, python string }{
	"UInt8":      {"u8", "int"},
	"Int8":       {"i8", "int"},
	"UInt16":     {"u16", "int"},
	"Int16":      {"i16", "int"},
	"UInt32":     {"u32", "int"},
	"Int32":      {"i32", "int"},
	"UInt64":     {"u64", "int"},
	"Int64":      {"i64", "int"},
	"Integer":    {"i64", "int"},
	"Boolean":    {"bool", "bool"},
	"Float":      {"f32", "float"},
	"Double":     {"f64", "float"},
	"String":     {"String", "str"},
	"ByteBuffer": {"Vec<u8>", "bytes"},
}

func rustType(t model.Type) string {
	name := strings.ReplaceAll(t.Name, ".", "::")
	if b, ok := builtin[t.Name]; ok {
		name = b.rust
	}
	if t.Array {
		return "Vec<" + name + ">"
	}
	return name
}

func pythonType(t model.Type) string {
	name := t.Name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if b, ok := builtin[t.Name]; ok {
		name = b.python
	}
	if t.Array {
		return "list[" + name + "]"
	}
	return name
}

// snake converts a CamelCase name to snake_case. A run of capitals is
// kept together as one word.
func snake(name string) string {
	return strcase.ToSnake(name)
}
