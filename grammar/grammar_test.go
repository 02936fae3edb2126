package grammar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/fidl/syntax"
)

func TestLoadVerifiesGrammar(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	for _, name := range Tokens {
		assert.Contains(t, g, name, "token production %s", name)
	}
	assert.Contains(t, g, Start)
}

func TestLexerMatchesTokens(t *testing.T) {
	tests := []struct {
		input string
		kind  string
	}{
		{"interface", "ident"},
		{"a", "ident"},
		{"0x1F", "number"},
		{"0b10", "number"},
		{"7", "number"},
		{`"x.fidl"`, "string"},
		{"// note", "comment"},
		{"/** a*b **/", "multilineComment"},
		{"<** @a: b@c **>", "annotationBlock"},
		{"{", "lbrace"},
		{",", "comma"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize([]byte(tt.input), "")
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.Equal(t, tt.input, tokens[0].Literal)
		})
	}
}

func TestLexerRejectsUnknownCharacter(t *testing.T) {
	_, err := Tokenize([]byte("#"), "x.fidl")
	assert.Error(t, err)
}

// TestHandLexerAgreesWithGrammar tokenizes every testcase with both lexers
// and compares the results token by token.
func TestHandLexerAgreesWithGrammar(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "testcases", "*.fidl"))
	require.NoError(t, err)
	if len(files) == 0 {
		t.Skip("no testcases found")
	}

	g, err := Load()
	require.NoError(t, err)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			source, err := os.ReadFile(file)
			require.NoError(t, err)

			want, err := NewLexer(g, Tokens, source, file).Tokenize()
			require.NoError(t, err)

			got := syntax.NewLexer(source, file).Tokenize()
			got = got[:len(got)-1] // EOF
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].Kind, got[i].Kind.String(), "token %d at %s", i, want[i].Position)
				assert.Equal(t, want[i].Literal, got[i].Literal, "token %d at %s", i, want[i].Position)
				assert.Equal(t, want[i].Position, got[i].Pos)
			}
		})
	}
}
