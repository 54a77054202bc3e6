// Package edit implements the structural edit actions on a note document:
// pure transition functions from (document, line index) to a new document
// plus a focus directive for the host UI. The engine holds no state of its
// own; the document is cloned before any mutation.
package edit

import (
	"notary-cli/internal/doc"
)

// Result is the outcome of one edit action.
//
// Doc is the post-action document (the input is never mutated). Focus names
// the line that should receive input next; positions shift on insert/remove,
// so hosts must reapply it after every action. Changed is false for no-ops,
// letting hosts skip the serialize/save cycle.
type Result struct {
	Doc     doc.Document
	Focus   FocusDirective
	Changed bool
}

func checkIndex(d doc.Document, i int) error {
	if i < 0 || i >= len(d) {
		return InvalidLineIndexError{Index: i, Len: len(d)}
	}
	return nil
}

// Split inserts a new empty line after i. The new line inherits the todo
// kind and indent of line i (unchecked), or stays a text line. Focus moves
// to the new line.
func Split(d doc.Document, i int) (Result, error) {
	if err := checkIndex(d, i); err != nil {
		return Result{}, err
	}
	nl := doc.Line{Kind: doc.KindText}
	if d[i].Kind == doc.KindTodo {
		nl = doc.Line{Kind: doc.KindTodo, Indent: d[i].Indent}
	}
	out := make(doc.Document, 0, len(d)+1)
	out = append(out, d[:i+1]...)
	out = append(out, nl)
	out = append(out, d[i+1:]...)
	return Result{Doc: out, Focus: FocusDirective{Line: i + 1}, Changed: true}, nil
}

// Toggle flips the checked state of a todo line and recomputes ancestor
// checked states. Text lines are untouched.
func Toggle(d doc.Document, i int) (Result, error) {
	if err := checkIndex(d, i); err != nil {
		return Result{}, err
	}
	if d[i].Kind != doc.KindTodo {
		return Result{Doc: d, Focus: caretless(i)}, nil
	}
	out := d.Clone()
	out[i].Checked = !out[i].Checked
	out = Propagate(out, i)
	return Result{Doc: out, Focus: caretless(i), Changed: true}, nil
}

// EditText replaces the text of line i. The single automatic type coercion
// lives here: a text line whose new text starts with a todo marker becomes a
// todo at indent 0, with the marker consumed. Everything else is a verbatim
// text replacement that leaves kind, checked and indent alone.
func EditText(d doc.Document, i int, newText string) (Result, error) {
	if err := checkIndex(d, i); err != nil {
		return Result{}, err
	}
	out := d.Clone()
	if d[i].Kind == doc.KindText {
		if checked, rest, ok := doc.IsTodoPrefixed(newText); ok {
			out[i] = doc.Line{Kind: doc.KindTodo, Text: rest, Checked: checked}
			return Result{Doc: out, Focus: FocusDirective{Line: i, Caret: len(rest)}, Changed: true}, nil
		}
	}
	out[i].Text = newText
	return Result{Doc: out, Focus: caretless(i), Changed: true}, nil
}

// Indent deepens a todo line by one level, clamped at doc.MaxIndent.
// No-op on text lines.
func Indent(d doc.Document, i int) (Result, error) {
	if err := checkIndex(d, i); err != nil {
		return Result{}, err
	}
	if d[i].Kind != doc.KindTodo || d[i].Indent >= doc.MaxIndent {
		return Result{Doc: d, Focus: caretless(i)}, nil
	}
	out := d.Clone()
	out[i].Indent++
	return Result{Doc: out, Focus: caretless(i), Changed: true}, nil
}

// Outdent shallows a todo line by one level. A todo already at indent 0
// converts to a text line, dropping its checked state. No-op on text lines.
func Outdent(d doc.Document, i int) (Result, error) {
	if err := checkIndex(d, i); err != nil {
		return Result{}, err
	}
	if d[i].Kind != doc.KindTodo {
		return Result{Doc: d, Focus: caretless(i)}, nil
	}
	out := d.Clone()
	if out[i].Indent > 0 {
		out[i].Indent--
	} else {
		out[i] = doc.Line{Kind: doc.KindText, Text: out[i].Text}
	}
	return Result{Doc: out, Focus: caretless(i), Changed: true}, nil
}

// DeleteBackward is the backspace-on-empty-line ladder. On a todo it steps
// down one structural level per press (outdent, then demote to text); a text
// line is removed, unless it is the last line in the document. A line with
// text is left alone.
func DeleteBackward(d doc.Document, i int) (Result, error) {
	if err := checkIndex(d, i); err != nil {
		return Result{}, err
	}
	if d[i].Text != "" {
		return Result{Doc: d, Focus: caretless(i)}, nil
	}
	if d[i].Kind == doc.KindTodo {
		// Same demotion ladder as Outdent, one step per press.
		return Outdent(d, i)
	}
	if len(d) == 1 {
		// The document never empties.
		return Result{Doc: d, Focus: caretless(i)}, nil
	}
	out := make(doc.Document, 0, len(d)-1)
	out = append(out, d[:i]...)
	out = append(out, d[i+1:]...)
	focus := i - 1
	if focus < 0 {
		focus = 0
	}
	return Result{Doc: out, Focus: FocusDirective{Line: focus, Caret: len(out[focus].Text)}, Changed: true}, nil
}

// Direction selects the neighbor for MoveFocus.
type Direction int

const (
	Up Direction = iota
	Down
)

// MoveFocus emits a directive for the adjacent line without mutating the
// document. At a document edge the focus stays put.
func MoveFocus(d doc.Document, i int, dir Direction) (Result, error) {
	if err := checkIndex(d, i); err != nil {
		return Result{}, err
	}
	j := i
	switch dir {
	case Up:
		if i > 0 {
			j = i - 1
		}
	case Down:
		if i < len(d)-1 {
			j = i + 1
		}
	}
	return Result{Doc: d, Focus: caretless(j)}, nil
}

// InsertIndentSpaces replaces the [start,end) span of a text line with the
// literal two-character indent marker and directs the caret just past it.
// This is the literal-indent behavior of Tab on text lines.
func InsertIndentSpaces(d doc.Document, i, start, end int) (Result, error) {
	if err := checkIndex(d, i); err != nil {
		return Result{}, err
	}
	if d[i].Kind != doc.KindText {
		return Result{Doc: d, Focus: caretless(i)}, nil
	}
	text := d[i].Text
	if start < 0 || end < start || end > len(text) {
		return Result{}, InvalidSpanError{Start: start, End: end, Len: len(text)}
	}
	out := d.Clone()
	out[i].Text = text[:start] + doc.IndentMarker() + text[end:]
	return Result{Doc: out, Focus: FocusDirective{Line: i, Caret: start + len(doc.IndentMarker())}, Changed: true}, nil
}
