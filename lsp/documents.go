package lsp

import (
	"sync"

	"github.com/dhamidi/fidl/model"
	"github.com/dhamidi/fidl/syntax"
)

// document is the last known state of an open file.
type document struct {
	uri   string
	text  []byte
	tree  *syntax.Tree
	model *model.File
	err   error
}

func newDocument(uri string, text []byte) *document {
	doc := &document{uri: uri, text: text}
	tree, err := syntax.Parse(text, syntax.WithFile(uri))
	if err != nil {
		doc.err = err
		return doc
	}
	doc.tree = tree
	doc.model, doc.err = model.Build(text, tree)
	return doc
}

// documents holds the open files by URI. Documents are immutable once
// stored; an update replaces the whole document.
type documents struct {
	mu   sync.Mutex
	docs map[string]*document
}

func newDocuments() *documents {
	return &documents{docs: make(map[string]*document)}
}

func (d *documents) update(uri string, text []byte) *document {
	doc := newDocument(uri, text)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[uri] = doc
	return doc
}

func (d *documents) get(uri string) *document {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.docs[uri]
}

func (d *documents) remove(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, uri)
}
