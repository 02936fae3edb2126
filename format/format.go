package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/fidl/syntax"
)

// Encoder writes a parse tree in one output format.
type Encoder interface {
	Encode(source []byte, tree *syntax.Tree) error
}

// NewEncoder returns the encoder for the named format: "text" for the
// indented tree dump, "json" for the tree as JSON, "fidl" for formatted
// source.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text":
		return NewTreeTextEncoder(w), nil
	case "json":
		return NewTreeJSONEncoder(w), nil
	case "fidl":
		return NewSourceEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

// TreeTextEncoder writes the indented dump of a tree, one node per line.
type TreeTextEncoder struct {
	w io.Writer
}

func NewTreeTextEncoder(w io.Writer) *TreeTextEncoder {
	return &TreeTextEncoder{w: w}
}

func (e *TreeTextEncoder) Encode(source []byte, tree *syntax.Tree) error {
	_, err := io.WriteString(e.w, tree.Dump(source))
	return err
}
