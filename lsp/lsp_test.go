package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func pos(line, char int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func TestPosition(t *testing.T) {
	text := []byte("ab\ncdé\n😀x")
	tests := []struct {
		offset int
		want   protocol.Position
	}{
		{0, pos(0, 0)},
		{2, pos(0, 2)},
		{3, pos(1, 0)},
		{7, pos(1, 3)},
		{8, pos(2, 0)},
		{12, pos(2, 2)},
		{13, pos(2, 3)},
		{100, pos(2, 3)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, position(text, tt.offset), "offset %d", tt.offset)
	}
}

func TestDiagnosticsParseError(t *testing.T) {
	doc := newDocument("file:///a.fidl", []byte("interface A {\n  bogus\n}"))
	require.Error(t, doc.err)

	diags := diagnostics(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.Range{Start: pos(1, 2), End: pos(1, 7)}, diags[0].Range)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.Contains(t, diags[0].Message, `found ident "bogus"`)
}

func TestDiagnosticsDuplicate(t *testing.T) {
	doc := newDocument("file:///a.fidl", []byte("interface A {}\ninterface A {}"))
	diags := diagnostics(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.Range{Start: pos(1, 0), End: pos(1, 14)}, diags[0].Range)
	require.Len(t, diags[0].RelatedInformation, 1)
	assert.Equal(t, protocol.Range{Start: pos(0, 0), End: pos(0, 14)}, diags[0].RelatedInformation[0].Location.Range)
}

func TestDiagnosticsClean(t *testing.T) {
	diags := diagnostics(newDocument("file:///a.fidl", []byte("interface A {}")))
	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestFormatEdits(t *testing.T) {
	doc := newDocument("file:///a.fidl", []byte("interface Foo { }"))
	edits, err := formatEdits(doc)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "interface Foo {}\n", edits[0].NewText)
	assert.Equal(t, protocol.Range{Start: pos(0, 0), End: pos(0, 17)}, edits[0].Range)

	doc = newDocument("file:///a.fidl", []byte("interface Foo {}\n"))
	edits, err = formatEdits(doc)
	require.NoError(t, err)
	assert.Empty(t, edits)

	doc = newDocument("file:///a.fidl", []byte("interface {"))
	edits, err = formatEdits(doc)
	require.NoError(t, err)
	assert.Nil(t, edits)
}

func TestDocumentSymbols(t *testing.T) {
	doc := newDocument("file:///a.fidl", []byte(`typeCollection { typedef Id is UInt32 }
interface Player {
    version { major 1 minor 2 }
    attribute UInt8 volume
    method play { in { Id track } }
    enumeration State { Idle }
}`))
	require.NoError(t, doc.err)

	symbols := documentSymbols(doc.text, doc.model)
	require.Len(t, symbols, 2)
	assert.Equal(t, "typeCollection", symbols[0].Name)
	assert.Equal(t, "Id", symbols[0].Children[0].Name)

	player := symbols[1]
	assert.Equal(t, "Player", player.Name)
	assert.Equal(t, protocol.SymbolKindInterface, player.Kind)
	require.NotNil(t, player.Detail)
	assert.Equal(t, "v1.2", *player.Detail)

	var names []string
	for _, c := range player.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"volume", "play", "State"}, names)
	assert.Equal(t, "track", player.Children[1].Children[0].Name)
	assert.Equal(t, "in Id", *player.Children[1].Children[0].Detail)
}

func TestDocumentsStore(t *testing.T) {
	docs := newDocuments()
	assert.Nil(t, docs.get("a"))

	first := docs.update("a", []byte("interface A {}"))
	assert.Same(t, first, docs.get("a"))

	second := docs.update("a", []byte("interface B {}"))
	assert.Same(t, second, docs.get("a"))
	assert.Equal(t, "B", second.model.Interfaces[0].Name)

	docs.remove("a")
	assert.Nil(t, docs.get("a"))
}
