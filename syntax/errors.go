package syntax

import "fmt"

// Error is returned by Parse when the source is not valid FIDL. Pos is the
// position up to which the source was accepted.
type Error struct {
	Pos      Position
	Size     int
	Found    string
	Expected string
	Message  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Progress describes how far the parser got, e.g. "parsed up to offset
// 120 of 341".
func (e *Error) Progress() string {
	return fmt.Sprintf("parsed up to offset %d of %d", e.Pos.Offset, e.Size)
}
