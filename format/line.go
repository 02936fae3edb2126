package format

import (
	"strings"

	"github.com/dhamidi/fidl/syntax"
)

const indentUnit = "    "

// IndentedLine is one logical output line before indentation is applied.
type IndentedLine struct {
	Text           string
	Indent         int
	LeadingNewline bool
	Rule           syntax.Rule

	// LineComment is set when Text ends in a // comment. Nothing can be
	// appended to such a line.
	LineComment bool
}

func newLine(indent int, text string, rule syntax.Rule) IndentedLine {
	return IndentedLine{Text: text, Indent: indent, Rule: rule}
}

// Merge returns l with next's text appended after sep. The result keeps
// l's indent, rule and leading newline. It reports false, and returns l
// unchanged, when l ends in a line comment.
func (l IndentedLine) Merge(next IndentedLine, sep string) (IndentedLine, bool) {
	if l.LineComment {
		return l, false
	}
	l.Text += sep + next.Text
	l.LineComment = next.LineComment
	return l, true
}

// Assemble joins lines into the final text. Every line ends in a newline
// and a leading newline produces one blank line, except before the first
// line.
func Assemble(lines []IndentedLine) string {
	var sb strings.Builder
	for i, line := range lines {
		if line.LeadingNewline && i > 0 {
			sb.WriteByte('\n')
		}
		if line.Text != "" {
			sb.WriteString(strings.Repeat(indentUnit, line.Indent))
			sb.WriteString(line.Text)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
