package format

import (
	"strings"

	"github.com/dhamidi/fidl/syntax"
)

// comment renders a comment node. Line comments become "// body" with the
// body trimmed, or just "//" when the body is empty. A block comment whose
// body fits on one line becomes "/** body **/"; otherwise each body line is
// trimmed and indented one level inside the delimiters.
func (f *formatter) comment(k syntax.Key, indent int) []IndentedLine {
	n := f.tree.Node(k)
	text := f.text(k)
	if n.Rule == syntax.Comment {
		rendered := "//"
		if body := strings.TrimSpace(strings.TrimPrefix(text, "//")); body != "" {
			rendered += " " + body
		}
		line := newLine(indent, rendered, syntax.Comment)
		line.LineComment = true
		return []IndentedLine{line}
	}

	body := strings.TrimSpace(text[len("/**") : len(text)-len("**/")])
	if body == "" {
		return []IndentedLine{newLine(indent, "/** **/", syntax.MultilineComment)}
	}
	rows := strings.Split(body, "\n")
	if len(rows) == 1 {
		return []IndentedLine{newLine(indent, "/** "+body+" **/", syntax.MultilineComment)}
	}
	lines := []IndentedLine{newLine(indent, "/**", syntax.MultilineComment)}
	for _, row := range rows {
		lines = append(lines, newLine(indent+1, strings.TrimSpace(row), syntax.MultilineComment))
	}
	return append(lines, newLine(indent, "**/", syntax.MultilineComment))
}

type annotation struct {
	name    string
	content []string
}

// annotationBlock renders "<** ... **>". A single annotation with one line
// of content stays on one line; anything else is expanded with one
// annotation per line and continuation lines indented one level further.
func (f *formatter) annotationBlock(k syntax.Key, indent int) ([]IndentedLine, error) {
	var annotations []annotation
	for _, c := range f.tree.Children(k) {
		if f.tree.Node(c).Rule != syntax.Annotation {
			return nil, f.unexpected(c, k)
		}
		var a annotation
		for _, part := range f.tree.Children(c) {
			switch f.tree.Node(part).Rule {
			case syntax.AnnotationName:
				a.name = f.text(part)
			case syntax.AnnotationContent:
				for _, row := range strings.Split(f.text(part), "\n") {
					a.content = append(a.content, strings.TrimSpace(row))
				}
			default:
				return nil, f.unexpected(part, c)
			}
		}
		annotations = append(annotations, a)
	}

	if len(annotations) == 1 && len(annotations[0].content) <= 1 {
		return []IndentedLine{newLine(indent, "<** "+annotations[0].head()+" **>", syntax.AnnotationBlock)}, nil
	}
	lines := []IndentedLine{newLine(indent, "<**", syntax.AnnotationBlock)}
	for _, a := range annotations {
		lines = append(lines, newLine(indent+1, a.head(), syntax.Annotation))
		if len(a.content) > 1 {
			for _, row := range a.content[1:] {
				lines = append(lines, newLine(indent+2, row, syntax.AnnotationContent))
			}
		}
	}
	return append(lines, newLine(indent, "**>", syntax.AnnotationBlock)), nil
}

// head is the first line of an annotation: "@name: first content line".
func (a annotation) head() string {
	if len(a.content) == 0 || a.content[0] == "" {
		return "@" + a.name + ":"
	}
	return "@" + a.name + ": " + a.content[0]
}

// trail appends comment k to the end of lines. A comment that cannot share
// the last line, because that line ends in a line comment or the comment
// spans several lines, is added as its own lines at indent instead. It
// reports whether the comment was placed on its own lines.
func (f *formatter) trail(lines []IndentedLine, k syntax.Key, indent int) ([]IndentedLine, bool) {
	rendered := f.comment(k, indent)
	if len(rendered) == 1 && len(lines) > 0 {
		if merged, ok := lines[len(lines)-1].Merge(rendered[0], " "); ok {
			lines[len(lines)-1] = merged
			return lines, false
		}
	}
	return append(lines, rendered...), true
}
