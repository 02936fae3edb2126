// Package model builds the semantic model of a FIDL file from its parse
// tree: declarations with their names, types and values, with comments and
// layout dropped.
package model

// Span is the byte range a declaration was parsed from.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

type File struct {
	Package         string            `json:"package,omitempty" yaml:"package,omitempty"`
	Imports         []Import          `json:"imports,omitempty" yaml:"imports,omitempty"`
	Namespaces      []Namespace       `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	Interfaces      []*Interface      `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	TypeCollections []*TypeCollection `json:"typeCollections,omitempty" yaml:"typeCollections,omitempty"`
}

// Import is an "import model" statement.
type Import struct {
	Path string `json:"path" yaml:"path"`
	Span Span   `json:"span" yaml:"span"`
}

// Namespace is an "import <name>[.*] from" statement.
type Namespace struct {
	Name     string `json:"name" yaml:"name"`
	Wildcard bool   `json:"wildcard,omitempty" yaml:"wildcard,omitempty"`
	Path     string `json:"path" yaml:"path"`
	Span     Span   `json:"span" yaml:"span"`
}

type Annotation struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

type Version struct {
	Major uint64 `json:"major" yaml:"major"`
	Minor uint64 `json:"minor" yaml:"minor"`
	Span  Span   `json:"span" yaml:"span"`
}

// Type is a reference to a named type, optionally as an array.
type Type struct {
	Name  string `json:"name" yaml:"name"`
	Array bool   `json:"array,omitempty" yaml:"array,omitempty"`
}

func (t Type) String() string {
	if t.Array {
		return t.Name + "[]"
	}
	return t.Name
}

type Interface struct {
	Name         string        `json:"name" yaml:"name"`
	Annotations  []Annotation  `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Version      *Version      `json:"version,omitempty" yaml:"version,omitempty"`
	Typedefs     []Typedef     `json:"typedefs,omitempty" yaml:"typedefs,omitempty"`
	Attributes   []Attribute   `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Methods      []Method      `json:"methods,omitempty" yaml:"methods,omitempty"`
	Structures   []Structure   `json:"structures,omitempty" yaml:"structures,omitempty"`
	Enumerations []Enumeration `json:"enumerations,omitempty" yaml:"enumerations,omitempty"`
	Span         Span          `json:"span" yaml:"span"`
}

// TypeCollection groups type declarations. Name is empty for an anonymous
// collection.
type TypeCollection struct {
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	Annotations  []Annotation  `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Version      *Version      `json:"version,omitempty" yaml:"version,omitempty"`
	Typedefs     []Typedef     `json:"typedefs,omitempty" yaml:"typedefs,omitempty"`
	Structures   []Structure   `json:"structures,omitempty" yaml:"structures,omitempty"`
	Enumerations []Enumeration `json:"enumerations,omitempty" yaml:"enumerations,omitempty"`
	Span         Span          `json:"span" yaml:"span"`
}

type Typedef struct {
	Name        string       `json:"name" yaml:"name"`
	Type        Type         `json:"type" yaml:"type"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Span        Span         `json:"span" yaml:"span"`
}

type Attribute struct {
	Name        string       `json:"name" yaml:"name"`
	Type        Type         `json:"type" yaml:"type"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Span        Span         `json:"span" yaml:"span"`
}

type Method struct {
	Name        string       `json:"name" yaml:"name"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	In          []Field      `json:"in,omitempty" yaml:"in,omitempty"`
	Out         []Field      `json:"out,omitempty" yaml:"out,omitempty"`
	Span        Span         `json:"span" yaml:"span"`
}

type Structure struct {
	Name        string       `json:"name" yaml:"name"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Fields      []Field      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Span        Span         `json:"span" yaml:"span"`
}

// Field is a variable declaration: a struct field or a method parameter.
type Field struct {
	Name        string       `json:"name" yaml:"name"`
	Type        Type         `json:"type" yaml:"type"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Span        Span         `json:"span" yaml:"span"`
}

type Enumeration struct {
	Name        string       `json:"name" yaml:"name"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Values      []EnumValue  `json:"values,omitempty" yaml:"values,omitempty"`
	Span        Span         `json:"span" yaml:"span"`
}

// EnumValue is an enumerator. Value is nil when no value was written.
type EnumValue struct {
	Name        string       `json:"name" yaml:"name"`
	Value       *uint64      `json:"value,omitempty" yaml:"value,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Span        Span         `json:"span" yaml:"span"`
}

// Lookup returns the annotation with the given name.
func Lookup(annotations []Annotation, name string) (Annotation, bool) {
	for _, a := range annotations {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}
