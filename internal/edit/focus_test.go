package edit

import (
	"testing"

	"notary-cli/internal/doc"
)

func TestController_ClampsToDocument(t *testing.T) {
	t.Parallel()

	d := doc.Document{
		{Kind: doc.KindText, Text: "abc"},
		{Kind: doc.KindTodo, Text: "de"},
	}

	var c Controller
	c.Apply(d, FocusDirective{Line: 5, Caret: NoCaret})
	if c.Line != 1 || c.Caret != 2 {
		t.Fatalf("overshoot: got line=%d caret=%d", c.Line, c.Caret)
	}

	c.Apply(d, FocusDirective{Line: -1, Caret: 99})
	if c.Line != 0 || c.Caret != 3 {
		t.Fatalf("undershoot: got line=%d caret=%d", c.Line, c.Caret)
	}

	c.Apply(d, FocusDirective{Line: 0, Caret: 1})
	if c.Line != 0 || c.Caret != 1 {
		t.Fatalf("explicit caret: got line=%d caret=%d", c.Line, c.Caret)
	}
}

func TestController_ReappliedAfterRemoval(t *testing.T) {
	t.Parallel()

	d := doc.Document{
		{Kind: doc.KindText, Text: "top"},
		{Kind: doc.KindText, Text: ""},
	}
	r, err := DeleteBackward(d, 1)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	var c Controller
	c.Apply(r.Doc, r.Focus)
	if c.Line != 0 || c.Caret != len("top") {
		t.Fatalf("got line=%d caret=%d", c.Line, c.Caret)
	}
}
