package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/fidl/syntax"
)

func formatString(t *testing.T, input string) string {
	t.Helper()
	out, err := PrettyPrint([]byte(input))
	require.NoError(t, err)
	return string(out)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty file",
			input:    "",
			expected: "",
		},
		{
			name:     "empty interface collapses",
			input:    "interface Foo { }",
			expected: "interface Foo {}\n",
		},
		{
			name:     "package then interface",
			input:    "package org.acme\ninterface Foo { }",
			expected: "package org.acme\n\ninterface Foo {}\n",
		},
		{
			name:  "imports follow each other",
			input: "package a.b   import model   \"x.fidl\"\nimport a.c.* from \"y.fidl\" import a.d.E from \"z.fidl\"",
			expected: `package a.b
import model "x.fidl"
import a.c.* from "y.fidl"
import a.d.E from "z.fidl"
`,
		},
		{
			name:  "input params only",
			input: "interface Foo { method bar { in { uint8 x } } }",
			expected: `interface Foo {
    method bar {
        in {
            uint8 x
        }
    }
}
`,
		},
		{
			name:  "empty in and out are dropped",
			input: "interface Foo { method bar { in { } out {} } }",
			expected: `interface Foo {
    method bar {}
}
`,
		},
		{
			name:  "in section holding only a comment is kept",
			input: "interface Foo { method m { in { // c\n } } }",
			expected: `interface Foo {
    method m {
        in { // c
        }
    }
}
`,
		},
		{
			name:  "comment in empty block trails the header",
			input: "interface Foo { method bar {//c\n} }",
			expected: `interface Foo {
    method bar { // c
    }
}
`,
		},
		{
			name:  "comment after open bracket gets its own line",
			input: "interface Foo { // head\n attribute UInt8 a\n}",
			expected: `interface Foo {
    // head
    attribute UInt8 a
}
`,
		},
		{
			name:  "comment after content on the same line trails it",
			input: "typeCollection { version { major 1 // one\n minor 2 } }",
			expected: `typeCollection {
    version {
        major 1 // one
        minor 2
    }
}
`,
		},
		{
			name:     "line comment body is trimmed",
			input:    "package foo //   x   ",
			expected: "package foo // x\n",
		},
		{
			name:     "line comment gets a space after the marker",
			input:    "package foo //bar",
			expected: "package foo // bar\n",
		},
		{
			name:     "empty line comment",
			input:    "package foo //   ",
			expected: "package foo //\n",
		},
		{
			name:  "enum values are kept verbatim",
			input: "interface Foo { enumeration E { A = 3 B C } }",
			expected: `interface Foo {
    enumeration E {
        A = 3
        B
        C
    }
}
`,
		},
		{
			name:  "version",
			input: "interface Foo { version {major 1 minor   2} }",
			expected: `interface Foo {
    version {
        major 1
        minor 2
    }
}
`,
		},
		{
			name:  "members",
			input: "typeCollection T { typedef A is  org . B [ ] struct S { A a UInt8[] b } }",
			expected: `typeCollection T {
    typedef A is org.B[]
    struct S {
        A a
        UInt8[] b
    }
}
`,
		},
		{
			name:     "comment before open bracket trails the header",
			input:    "package foo // bar\ninterface Foo // c\n{\n}",
			expected: "package foo // bar\n\ninterface Foo { // c\n}\n",
		},
		{
			name:     "block comment inside empty block",
			input:    "interface Foo {\n  struct S {\n    /** nothing **/\n  }\n}",
			expected: "interface Foo {\n    struct S { /** nothing **/ }\n}\n",
		},
		{
			name:  "comment before close bracket trails previous line",
			input: "interface Foo {\n  attribute UInt8 a\n  // done\n}",
			expected: `interface Foo {
    attribute UInt8 a // done
}
`,
		},
		{
			name:  "comments on their own line",
			input: "interface Foo {\n// one\n// two\nattribute UInt8 a\n}",
			expected: `interface Foo {
    // one
    // two
    attribute UInt8 a
}
`,
		},
		{
			name:  "comment after close bracket",
			input: "interface Foo {\n  method m {} // nothing to do\n}",
			expected: `interface Foo {
    method m {} // nothing to do
}
`,
		},
		{
			name:  "multi-line block comment",
			input: "interface Foo {\n/** first\n      second\n**/\nattribute UInt8 a\n}",
			expected: `interface Foo {
    /**
        first
        second
    **/
    attribute UInt8 a
}
`,
		},
		{
			name:     "comments stay above interface",
			input:    "package a\n// about Foo\ninterface Foo {}",
			expected: "package a\n\n// about Foo\ninterface Foo {}\n",
		},
		{
			name:     "single annotation collapses",
			input:    "<**\n   @description: hello there\n**>\ninterface Foo {}",
			expected: "<** @description: hello there **>\ninterface Foo {}\n",
		},
		{
			name:  "two annotations expand",
			input: "<** @description: hello @author: me **> interface Foo {}",
			expected: `<**
    @description: hello
    @author: me
**>
interface Foo {}
`,
		},
		{
			name:  "multi-line annotation content",
			input: "interface Foo {\n<** @description: line one\n line two **>\nattribute UInt8 a\n}",
			expected: `interface Foo {
    <**
        @description: line one
            line two
    **>
    attribute UInt8 a
}
`,
		},
		{
			name:  "annotated parameter",
			input: "interface Foo { method m { in { <** @description: x **> UInt8 a } } }",
			expected: `interface Foo {
    method m {
        in {
            <** @description: x **>
            UInt8 a
        }
    }
}
`,
		},
		{
			name:  "line comment blocks further text",
			input: "interface Foo { // a\n}",
			expected: `interface Foo { // a
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatString(t, tt.input))
		})
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	inputs := []string{
		"interface Foo { method bar {//c\n} }",
		"interface Foo { struct S { /** x\n y **/ } }",
		"interface Foo /** a\nb **/ { }",
		"<** @a: b **> // c\ninterface Foo {}",
		"interface Foo { enumeration E { A, // one\n B /** two **/ } }",
		"interface Foo { method m { in {} // c\n } }",
		"typeCollection { version { major 1 // one\n minor 2 // two\n } }",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := formatString(t, input)
			twice := formatString(t, once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestFormatPreservesComments(t *testing.T) {
	input := "// a\npackage p // b\ninterface I { // c\n /** d **/ method m { in { UInt8 x // e\n } } // f\n}\n// g"
	out := formatString(t, input)
	for _, c := range []string{"// a", "// b", "// c", "/** d **/", "// e", "// f", "// g"} {
		assert.Equal(t, 1, strings.Count(out, c), "comment %q in\n%s", c, out)
	}
}

func TestFormatRejectsEmptyTree(t *testing.T) {
	_, err := Format([]byte("package a"), nil)
	require.Error(t, err)

	_, err = Format([]byte("package a"), &syntax.Tree{})
	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, syntax.Grammar, ferr.Parent)
}

func TestFormatErrorNamesRuleAndParent(t *testing.T) {
	err := error(&Error{Rule: syntax.Attribute, Parent: syntax.Structure, ParentStart: 12})
	assert.Equal(t, "unexpected attribute in structure at offset 12", err.Error())

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, syntax.Attribute, ferr.Rule)
}

func TestMerge(t *testing.T) {
	header := IndentedLine{Text: "method m {", Indent: 1, Rule: syntax.Method, LeadingNewline: true}

	merged, ok := header.Merge(IndentedLine{Text: "}", Indent: 5, Rule: syntax.CloseBracket}, "")
	require.True(t, ok)
	assert.Equal(t, IndentedLine{Text: "method m {}", Indent: 1, Rule: syntax.Method, LeadingNewline: true}, merged)
	assert.Equal(t, "method m {", header.Text, "Merge must not modify its receiver")

	commented, ok := header.Merge(IndentedLine{Text: "// c", LineComment: true}, " ")
	require.True(t, ok)
	assert.True(t, commented.LineComment)

	_, ok = commented.Merge(IndentedLine{Text: "}"}, "")
	assert.False(t, ok)
}

func TestAssemble(t *testing.T) {
	lines := []IndentedLine{
		{Text: "interface A {}", LeadingNewline: true},
		{Text: "interface B {"},
		{Text: "", Indent: 1},
		{Text: "}"},
		{Text: "typeCollection {}", LeadingNewline: true},
	}
	assert.Equal(t, "interface A {}\ninterface B {\n\n}\n\ntypeCollection {}\n", Assemble(lines))
}
