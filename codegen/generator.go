// Package codegen turns FIDL models into source code for other languages.
package codegen

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/dhamidi/fidl/format"
	"github.com/dhamidi/fidl/model"
)

// Output is one generated file. Path is relative to the output directory.
type Output struct {
	Path    string
	Content string
}

// Generator produces the outputs for one FIDL file. base is the file's
// path relative to the project, without the .fidl extension.
type Generator interface {
	Name() string
	Generate(file *model.File, base string) ([]Output, error)
}

// Registry looks generators up by name.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry returns a registry holding the built-in generators.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}
	r.Register(Rust{})
	r.Register(Python{})
	r.Register(JS{})
	return r
}

func (r *Registry) Register(g Generator) {
	r.generators[g.Name()] = g
}

func (r *Registry) Lookup(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown target %q, expected one of %v", name, r.Names())
	}
	return g, nil
}

// Names returns the registered target names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteOutputs writes every output below dir, creating directories as
// needed.
func WriteOutputs(fs afero.Fs, dir string, outputs []Output) error {
	for _, out := range outputs {
		path := filepath.Join(dir, out.Path)
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", out.Path, err)
		}
		if err := afero.WriteFile(fs, path, []byte(out.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out.Path, err)
		}
	}
	return nil
}

// code accumulates indented lines and renders them the way the formatter
// does.
type code struct {
	lines []format.IndentedLine
}

func (c *code) line(indent int, text string, args ...any) {
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	c.lines = append(c.lines, format.IndentedLine{Text: text, Indent: indent})
}

// blank separates the next line from the previous one.
func (c *code) blank() {
	if len(c.lines) > 0 {
		c.lines = append(c.lines, format.IndentedLine{})
	}
}

func (c *code) String() string {
	return format.Assemble(c.lines)
}

// unit is the part of a FIDL file that becomes one module: an interface or
// a type collection.
type unit struct {
	name         string
	annotations  []model.Annotation
	version      *model.Version
	typedefs     []model.Typedef
	attributes   []model.Attribute
	methods      []model.Method
	structures   []model.Structure
	enumerations []model.Enumeration
}

// anonymousCollection names the module of a type collection without a
// name.
const anonymousCollection = "types"

func units(file *model.File) []unit {
	var result []unit
	for _, tc := range file.TypeCollections {
		name := tc.Name
		if name == "" {
			name = anonymousCollection
		}
		result = append(result, unit{
			name:         name,
			annotations:  tc.Annotations,
			version:      tc.Version,
			typedefs:     tc.Typedefs,
			structures:   tc.Structures,
			enumerations: tc.Enumerations,
		})
	}
	for _, iface := range file.Interfaces {
		result = append(result, unit{
			name:         iface.Name,
			annotations:  iface.Annotations,
			version:      iface.Version,
			typedefs:     iface.Typedefs,
			attributes:   iface.Attributes,
			methods:      iface.Methods,
			structures:   iface.Structures,
			enumerations: iface.Enumerations,
		})
	}
	return result
}

func (u unit) versionNumbers() (uint64, uint64) {
	if u.version == nil {
		return 0, 0
	}
	return u.version.Major, u.version.Minor
}
