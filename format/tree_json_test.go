package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/fidl/syntax"
)

func TestTreeJSONEncoder(t *testing.T) {
	source := []byte("package a.b // c")
	tree, err := syntax.Parse(source)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTreeJSONEncoder(&buf).Encode(source, tree))

	var root treeJSONNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))
	assert.Equal(t, "grammar", root.Rule)
	require.Len(t, root.Children, 1)

	pkg := root.Children[0].Children[0]
	assert.Equal(t, "package", pkg.Rule)
	require.Len(t, pkg.Children, 2)
	assert.Equal(t, "a.b", pkg.Children[0].Text)
	assert.Equal(t, "// c", pkg.Children[1].Text)
	assert.Equal(t, treeJSONSpan{Start: 12, End: 16}, pkg.Children[1].Span)
}

func TestNewEncoder(t *testing.T) {
	source := []byte("package a")
	tree, err := syntax.Parse(source)
	require.NoError(t, err)

	tests := []struct {
		name string
		want string
	}{
		{"text", "grammar [0-9]\n  file [0-9]\n    package [0-9]\n      type_ref [8-9] \"a\"\n"},
		{"fidl", "package a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := NewEncoder(tt.name, &buf)
			require.NoError(t, err)
			require.NoError(t, enc.Encode(source, tree))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	_, err = NewEncoder("xml", &bytes.Buffer{})
	assert.EqualError(t, err, "unknown format: xml")
}
