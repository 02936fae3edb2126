package lsp

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/fidl/model"
	"github.com/dhamidi/fidl/syntax"
)

const diagnosticSource = "fidl"

// position converts a byte offset to an LSP position. Characters are
// counted in UTF-16 code units.
func position(text []byte, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	var line, char int
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(text[i:])
		i += size
		if r == '\n' {
			line++
			char = 0
			continue
		}
		char += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func span(text []byte, start, end int) protocol.Range {
	return protocol.Range{Start: position(text, start), End: position(text, end)}
}

// wordEnd returns the end of the run of non-space bytes at offset.
func wordEnd(text []byte, offset int) int {
	end := offset
	for end < len(text) {
		switch text[end] {
		case ' ', '\t', '\r', '\n':
			return end
		}
		end++
	}
	return end
}

// diagnostics reports the error of doc, if any. The result is never nil
// so that publishing it clears earlier diagnostics.
func diagnostics(doc *document) []protocol.Diagnostic {
	result := []protocol.Diagnostic{}
	if doc.err == nil {
		return result
	}

	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	d := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  doc.err.Error(),
	}

	var (
		parseErr  *syntax.Error
		dupErr    *model.DuplicateError
		nodeErr   *model.UnexpectedNodeError
		numberErr *model.NumberError
	)
	switch {
	case errors.As(doc.err, &parseErr):
		offset := parseErr.Pos.Offset
		d.Range = span(doc.text, offset, wordEnd(doc.text, offset))
		if parseErr.Message != "" {
			d.Message = parseErr.Message
		} else {
			d.Message = "expected " + parseErr.Expected + ", found " + parseErr.Found
		}
	case errors.As(doc.err, &dupErr):
		d.Range = span(doc.text, dupErr.Second.Start, dupErr.Second.End)
		d.RelatedInformation = []protocol.DiagnosticRelatedInformation{{
			Location: protocol.Location{URI: doc.uri, Range: span(doc.text, dupErr.First.Start, dupErr.First.End)},
			Message:  "first declared here",
		}}
	case errors.As(doc.err, &nodeErr):
		d.Range = span(doc.text, nodeErr.Span.Start, nodeErr.Span.End)
	case errors.As(doc.err, &numberErr):
		d.Range = span(doc.text, numberErr.Span.Start, numberErr.Span.End)
	}
	return append(result, d)
}
