package format

import (
	"fmt"

	"github.com/dhamidi/fidl/syntax"
)

// Error reports a node the formatter does not expect at its position. It
// means the tree did not come from a successful parse of the same grammar.
type Error struct {
	Rule        syntax.Rule
	Parent      syntax.Rule
	ParentStart int
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected %s in %s at offset %d", e.Rule, e.Parent, e.ParentStart)
}
