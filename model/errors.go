package model

import (
	"fmt"

	"github.com/dhamidi/fidl/syntax"
)

// DuplicateError reports a name declared twice in the same scope. First and
// Second locate both declarations.
type DuplicateError struct {
	Kind   string
	Name   string
	First  Span
	Second Span
}

func (e *DuplicateError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("duplicate %s at offset %d, first declared at offset %d", e.Kind, e.Second.Start, e.First.Start)
	}
	return fmt.Sprintf("duplicate %s %q at offset %d, first declared at offset %d", e.Kind, e.Name, e.Second.Start, e.First.Start)
}

// UnexpectedNodeError reports a tree shape the builder does not know.
type UnexpectedNodeError struct {
	Rule   syntax.Rule
	Parent syntax.Rule
	Span   Span
}

func (e *UnexpectedNodeError) Error() string {
	return fmt.Sprintf("unexpected %s in %s at offset %d", e.Rule, e.Parent, e.Span.Start)
}

// NumberError reports a number that does not fit in 64 bits.
type NumberError struct {
	Text string
	Span Span
	Err  error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("invalid number %s at offset %d: %v", e.Text, e.Span.Start, e.Err)
}

func (e *NumberError) Unwrap() error {
	return e.Err
}
