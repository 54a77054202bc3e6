package edit

import "notary-cli/internal/doc"

// FocusDirective names the line that should receive the next input, and
// optionally where the caret lands in it. Caret is NoCaret when the action
// implies no particular caret position.
type FocusDirective struct {
	Line  int
	Caret int
}

// NoCaret marks a directive that moves line focus without placing the caret.
const NoCaret = -1

func caretless(line int) FocusDirective {
	return FocusDirective{Line: line, Caret: NoCaret}
}

// Controller tracks which line currently has input focus. Lines have no
// stable identity, so the host applies every action's directive through the
// controller, which clamps it against the post-action document.
type Controller struct {
	Line  int
	Caret int
}

// Apply moves the controller to the directive's target, clamped to d.
// A NoCaret directive places the caret at the end of the target line.
func (c *Controller) Apply(d doc.Document, f FocusDirective) {
	line := f.Line
	if line < 0 {
		line = 0
	}
	if line > len(d)-1 {
		line = len(d) - 1
	}
	caret := f.Caret
	if caret == NoCaret || caret > len(d[line].Text) {
		caret = len(d[line].Text)
	}
	if caret < 0 {
		caret = 0
	}
	c.Line = line
	c.Caret = caret
}
