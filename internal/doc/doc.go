// Package doc holds the line-based document model behind a note's content:
// a flat sequence of text and checklist lines addressed by position, plus the
// plain-text grammar it is parsed from and serialized back to.
package doc

// Kind discriminates the two line shapes a note can hold.
type Kind string

const (
	KindText Kind = "text"
	KindTodo Kind = "todo"
)

// MaxIndent is the deepest nesting an edit action may produce.
// Parsing accepts deeper raw indentation; edits re-clamp.
const MaxIndent = 3

// Line is one row of a note.
//
// Indent and Checked carry meaning only when Kind is KindTodo; a text line
// always has Indent 0 and Checked false.
type Line struct {
	Kind    Kind   `json:"kind"`
	Text    string `json:"text"`
	Checked bool   `json:"checked,omitempty"`
	Indent  int    `json:"indent,omitempty"`
}

// Document is an ordered top-to-bottom sequence of lines. A well-formed
// document never has fewer than one line; lines have no identity beyond
// their position.
type Document []Line

// Empty returns the smallest well-formed document: a single empty text line.
func Empty() Document {
	return Document{{Kind: KindText}}
}

// Clone returns an independent copy. Edit actions copy before mutating so the
// caller's document is never changed in place.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	copy(out, d)
	return out
}
