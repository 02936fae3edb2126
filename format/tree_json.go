package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/fidl/syntax"
)

// TreeJSONEncoder writes a parse tree as indented JSON.
type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(source []byte, tree *syntax.Tree) error {
	text, err := e.MarshalText(source, tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TreeJSONEncoder) MarshalText(source []byte, tree *syntax.Tree) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(source, tree, syntax.RootKey), "", "  ")
}

type treeJSONNode struct {
	Rule     string          `json:"rule"`
	Span     treeJSONSpan    `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []*treeJSONNode `json:"children,omitempty"`
}

type treeJSONSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func nodeToJSON(source []byte, tree *syntax.Tree, k syntax.Key) *treeJSONNode {
	n := tree.Node(k)
	jn := &treeJSONNode{
		Rule: n.Rule.String(),
		Span: treeJSONSpan{Start: n.Start, End: n.End},
	}
	if len(n.Children) == 0 {
		jn.Text = string(source[n.Start:n.End])
		return jn
	}
	jn.Children = make([]*treeJSONNode, len(n.Children))
	for i, c := range n.Children {
		jn.Children[i] = nodeToJSON(source, tree, c)
	}
	return jn
}
