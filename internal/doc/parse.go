package doc

import "strings"

// Indent marker and todo prefixes of the persisted plain-text grammar.
const (
	indentMarker  = "  "
	todoOpenMark  = "- [ ] "
	todoDoneMark  = "- [x] "
	todoMarkLen   = len(todoOpenMark)
	indentMarkLen = len(indentMarker)
)

// Parse turns persisted note content into a document. It is total: every
// string has a representation, and anything that does not match the todo
// grammar survives verbatim as a text line.
func Parse(content string) Document {
	if content == "" {
		return Empty()
	}
	raw := strings.Split(content, "\n")
	d := make(Document, 0, len(raw))
	for _, r := range raw {
		d = append(d, parseLine(r))
	}
	return d
}

func parseLine(raw string) Line {
	rest := raw
	indent := 0
	for strings.HasPrefix(rest, indentMarker) {
		rest = rest[indentMarkLen:]
		indent++
	}
	switch {
	case strings.HasPrefix(rest, todoOpenMark):
		return Line{Kind: KindTodo, Text: rest[todoMarkLen:], Indent: indent}
	case strings.HasPrefix(rest, todoDoneMark):
		return Line{Kind: KindTodo, Text: rest[todoMarkLen:], Checked: true, Indent: indent}
	}
	// Indent markers are only informational for todo detection; a text line
	// keeps its original raw form.
	return Line{Kind: KindText, Text: raw}
}

// IsTodoPrefixed reports whether s starts with one of the todo markers.
// EditText uses this for the single automatic text-to-todo coercion.
func IsTodoPrefixed(s string) (checked bool, rest string, ok bool) {
	switch {
	case strings.HasPrefix(s, todoOpenMark):
		return false, s[todoMarkLen:], true
	case strings.HasPrefix(s, todoDoneMark):
		return true, s[todoMarkLen:], true
	}
	return false, "", false
}

// IndentMarker returns the literal two-character marker used for one level of
// nesting in the persisted format.
func IndentMarker() string { return indentMarker }
