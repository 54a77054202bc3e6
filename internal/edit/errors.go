package edit

import "fmt"

// InvalidLineIndexError reports an action invoked with a line index outside
// the document. Indices are caller-validated, so hitting this is a bug in the
// host, not a user error; actions return it before touching the document.
type InvalidLineIndexError struct {
	Index int
	Len   int
}

func (e InvalidLineIndexError) Error() string {
	return fmt.Sprintf("invalid line index %d (document has %d lines)", e.Index, e.Len)
}

// InvalidSpanError reports an InsertIndentSpaces call whose [start,end) span
// does not fit the target line's text.
type InvalidSpanError struct {
	Start int
	End   int
	Len   int
}

func (e InvalidSpanError) Error() string {
	return fmt.Sprintf("invalid span [%d,%d) for line of length %d", e.Start, e.End, e.Len)
}
