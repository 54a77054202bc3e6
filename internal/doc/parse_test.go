package doc

import (
	"reflect"
	"testing"
)

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	d := Parse("")
	if len(d) != 1 {
		t.Fatalf("expected 1 line; got %d", len(d))
	}
	if d[0].Kind != KindText || d[0].Text != "" {
		t.Fatalf("expected empty text line; got %#v", d[0])
	}
}

func TestParse_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Line
	}{
		{"plain text", "hello", Line{Kind: KindText, Text: "hello"}},
		{"open todo", "- [ ] milk", Line{Kind: KindTodo, Text: "milk"}},
		{"done todo", "- [x] eggs", Line{Kind: KindTodo, Text: "eggs", Checked: true}},
		{"nested todo", "    - [ ] deep", Line{Kind: KindTodo, Text: "deep", Indent: 2}},
		{"deeper than edit clamp", "          - [x] way down", Line{Kind: KindTodo, Text: "way down", Checked: true, Indent: 5}},
		{"indented text keeps raw form", "  just indented prose", Line{Kind: KindText, Text: "  just indented prose"}},
		{"marker without trailing space", "- [x]", Line{Kind: KindText, Text: "- [x]"}},
		{"uppercase X is not a marker", "- [X] nope", Line{Kind: KindText, Text: "- [X] nope"}},
		{"empty todo text", "- [ ] ", Line{Kind: KindTodo, Text: ""}},
		{"odd leading space stays text", "   - [ ] off by one", Line{Kind: KindText, Text: "   - [ ] off by one"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.raw)
			if len(got) != 1 {
				t.Fatalf("expected 1 line; got %d", len(got))
			}
			if got[0] != tc.want {
				t.Fatalf("parse %q:\n  got  %#v\n  want %#v", tc.raw, got[0], tc.want)
			}
		})
	}
}

func TestParse_MultiLine(t *testing.T) {
	t.Parallel()

	d := Parse("- [ ] a\n  - [ ] b\n  - [ ] c")
	want := Document{
		{Kind: KindTodo, Text: "a"},
		{Kind: KindTodo, Text: "b", Indent: 1},
		{Kind: KindTodo, Text: "c", Indent: 1},
	}
	if !reflect.DeepEqual(d, want) {
		t.Fatalf("got %#v, want %#v", d, want)
	}
}

func TestParse_BlankLinesSurvive(t *testing.T) {
	t.Parallel()

	d := Parse("a\n\nb")
	if len(d) != 3 {
		t.Fatalf("expected 3 lines; got %d", len(d))
	}
	if d[1].Kind != KindText || d[1].Text != "" {
		t.Fatalf("expected empty middle line; got %#v", d[1])
	}
}

func TestRoundTrip_DocumentToText(t *testing.T) {
	t.Parallel()

	docs := []Document{
		{{Kind: KindText, Text: "plain"}},
		{{Kind: KindTodo, Text: "a"}, {Kind: KindTodo, Text: "b", Indent: 1, Checked: true}},
		{
			{Kind: KindText, Text: "title"},
			{Kind: KindTodo, Text: "x", Indent: 0},
			{Kind: KindTodo, Text: "y", Indent: 1},
			{Kind: KindTodo, Text: "z", Indent: 3, Checked: true},
			{Kind: KindText, Text: ""},
		},
		Empty(),
	}
	for _, d := range docs {
		got := Parse(Serialize(d))
		if !reflect.DeepEqual(got, d) {
			t.Fatalf("round trip changed document:\n  got  %#v\n  want %#v", got, d)
		}
	}
}

func TestRoundTrip_TextToDocument(t *testing.T) {
	t.Parallel()

	// Strings without todo-prefix ambiguity must survive a parse/serialize
	// round trip byte-for-byte.
	inputs := []string{
		"hello",
		"line one\nline two",
		"- [ ] a\n  - [x] b",
		"text\n\n- [ ] after blank",
		"  indented prose survives verbatim",
	}
	for _, s := range inputs {
		if got := Serialize(Parse(s)); got != s {
			t.Fatalf("round trip changed text: got %q, want %q", got, s)
		}
	}
}

func TestIsTodoPrefixed(t *testing.T) {
	t.Parallel()

	if _, _, ok := IsTodoPrefixed("nope"); ok {
		t.Fatal("plain text misread as todo prefix")
	}
	checked, rest, ok := IsTodoPrefixed("- [x] done")
	if !ok || !checked || rest != "done" {
		t.Fatalf("got checked=%v rest=%q ok=%v", checked, rest, ok)
	}
	checked, rest, ok = IsTodoPrefixed("- [ ] open")
	if !ok || checked || rest != "open" {
		t.Fatalf("got checked=%v rest=%q ok=%v", checked, rest, ok)
	}
}
