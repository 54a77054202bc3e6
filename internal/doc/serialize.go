package doc

import "strings"

// Serialize renders a document back to the persisted plain-text form.
// It is the paired inverse of Parse: for any document whose indents stay
// within [0, MaxIndent], Parse(Serialize(d)) reproduces d exactly.
func Serialize(d Document) string {
	var b strings.Builder
	for i, ln := range d {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderLine(ln))
	}
	return b.String()
}

func renderLine(ln Line) string {
	if ln.Kind != KindTodo {
		return ln.Text
	}
	mark := todoOpenMark
	if ln.Checked {
		mark = todoDoneMark
	}
	return strings.Repeat(indentMarker, ln.Indent) + mark + ln.Text
}
