package edit

import "notary-cli/internal/doc"

// Propagate recomputes ancestor checked states after the line at changed was
// toggled. Only ancestors are rewritten; descendants are never touched. The
// walk cascades upward until the current line sits at indent 0 or no parent
// exists, so checking the last open leaf of a deep nest completes every
// level above it in one call.
//
// Propagate mutates d in place and returns it; callers that need the input
// preserved pass a clone.
func Propagate(d doc.Document, changed int) doc.Document {
	for {
		ln := d[changed]
		if ln.Kind != doc.KindTodo || ln.Indent == 0 {
			return d
		}
		parent := findParent(d, changed)
		if parent < 0 {
			return d
		}
		if n, all := directChildren(d, parent); n > 0 {
			d[parent].Checked = all
		}
		changed = parent
	}
}

// findParent walks backward through the contiguous todo block above changed
// and returns the first line with a strictly smaller indent, or -1.
func findParent(d doc.Document, changed int) int {
	indent := d[changed].Indent
	for j := changed - 1; j >= 0 && d[j].Kind == doc.KindTodo; j-- {
		if d[j].Indent < indent {
			return j
		}
	}
	return -1
}

// directChildren counts the direct children of the todo at parent and
// reports whether all of them are checked. The scan covers the subtree
// below parent, stopping at the first text line or any line at or above
// parent's level; only lines exactly one level deeper count as direct.
func directChildren(d doc.Document, parent int) (n int, all bool) {
	all = true
	for j := parent + 1; j < len(d); j++ {
		if d[j].Kind != doc.KindTodo || d[j].Indent <= d[parent].Indent {
			break
		}
		if d[j].Indent == d[parent].Indent+1 {
			n++
			if !d[j].Checked {
				all = false
			}
		}
	}
	return n, all
}
