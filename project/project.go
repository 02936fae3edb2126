// Package project finds the FIDL files of a project and loads them.
package project

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/fidl/model"
	"github.com/dhamidi/fidl/syntax"
)

var log = commonlog.GetLogger("fidl.project")

// Extension is the file extension of FIDL sources.
const Extension = ".fidl"

// Collect expands paths into the FIDL files they name. Directories are
// walked recursively for *.fidl files, plain files are taken as given. The
// result is sorted and free of duplicates.
func Collect(fsys afero.Fs, paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := fsys.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = afero.Walk(fsys, path, func(p string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(p, Extension) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan fidl files in %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// File is one loaded FIDL file. Err is set when the file could not be
// read, parsed or built; the other fields hold whatever succeeded.
type File struct {
	Path   string
	Source []byte
	Tree   *syntax.Tree
	Model  *model.File
	Err    error
}

// Project is a set of loaded FIDL files.
type Project struct {
	Files []*File
}

// Load reads, parses and builds every FIDL file named by paths. A file
// that fails does not stop the others; its error is kept on the File.
func Load(fsys afero.Fs, paths []string) (*Project, error) {
	files, err := Collect(fsys, paths)
	if err != nil {
		return nil, err
	}
	p := &Project{}
	for _, path := range files {
		f := LoadFile(fsys, path)
		if f.Err != nil {
			log.Debugf("load %s: %v", path, f.Err)
		}
		p.Files = append(p.Files, f)
	}
	return p, nil
}

// LoadFile reads, parses and builds a single file.
func LoadFile(fsys afero.Fs, path string) *File {
	f := &File{Path: path}
	source, err := afero.ReadFile(fsys, path)
	if err != nil {
		f.Err = fmt.Errorf("read file: %w", err)
		return f
	}
	f.Source = source
	tree, err := syntax.Parse(source, syntax.WithFile(path))
	if err != nil {
		f.Err = err
		return f
	}
	f.Tree = tree
	m, err := model.Build(source, tree)
	if err != nil {
		f.Err = fmt.Errorf("%s: %w", path, err)
		return f
	}
	f.Model = m
	return f
}

// Failed returns the files that could not be loaded.
func (p *Project) Failed() []*File {
	var failed []*File
	for _, f := range p.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// File returns the loaded file with the given path, or nil if not found.
func (p *Project) File(path string) *File {
	path = filepath.Clean(path)
	for _, f := range p.Files {
		if f.Path == path {
			return f
		}
	}
	return nil
}

// Dependencies returns the project files f imports with "import model" or
// "import ... from". Import paths are relative to the importing file.
// Imports of files outside the project are ignored.
func (p *Project) Dependencies(f *File) []string {
	if f.Model == nil {
		return nil
	}
	var paths []string
	for _, imp := range f.Model.Imports {
		paths = append(paths, imp.Path)
	}
	for _, ns := range f.Model.Namespaces {
		paths = append(paths, ns.Path)
	}

	seen := make(map[string]bool)
	var deps []string
	for _, path := range paths {
		dep := filepath.Join(filepath.Dir(f.Path), path)
		if seen[dep] || dep == f.Path || p.File(dep) == nil {
			continue
		}
		seen[dep] = true
		deps = append(deps, dep)
	}
	return deps
}

// InOrder returns the files sorted so that every file comes after the
// files it imports. Files caught in an import cycle keep their original
// order and come last.
func (p *Project) InOrder() []*File {
	inDegree := make(map[string]int)
	dependents := make(map[string][]string)
	for _, f := range p.Files {
		deps := p.Dependencies(f)
		inDegree[f.Path] = len(deps)
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], f.Path)
		}
	}

	var queue []string
	for _, f := range p.Files {
		if inDegree[f.Path] == 0 {
			queue = append(queue, f.Path)
		}
	}

	var result []*File
	placed := make(map[string]bool)
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		result = append(result, p.File(path))
		placed[path] = true

		for _, dependent := range dependents[path] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(p.Files) {
		log.Warningf("import cycle among %d files", len(p.Files)-len(result))
		for _, f := range p.Files {
			if !placed[f.Path] {
				result = append(result, f)
			}
		}
	}
	return result
}

// Base returns path relative to root without its extension. Generators
// use it to name their outputs.
func Base(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), Extension)
}
