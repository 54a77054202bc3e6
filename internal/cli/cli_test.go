package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func dataObject(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var v map[string]any
	if err := json.Unmarshal(out, &v); err != nil {
		t.Fatalf("unmarshal output: %v\nstdout:\n%s", err, string(out))
	}
	data, ok := v["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got: %#v", v["data"])
	}
	return data
}

func createNote(t *testing.T, dir string) string {
	t.Helper()
	out, errOut, err := runCLI(t, []string{"--dir", dir, "notes", "create"})
	if err != nil {
		t.Fatalf("notes create error: %v\nstderr:\n%s", err, string(errOut))
	}
	id, _ := dataObject(t, out)["id"].(string)
	if id == "" {
		t.Fatalf("missing note id in output:\n%s", string(out))
	}
	return id
}

func TestNotes_CreateListShow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	id := createNote(t, dir)

	out, errOut, err := runCLI(t, []string{"--dir", dir, "notes", "list"})
	if err != nil {
		t.Fatalf("notes list error: %v\nstderr:\n%s", err, string(errOut))
	}
	var v map[string]any
	if err := json.Unmarshal(out, &v); err != nil {
		t.Fatalf("unmarshal output: %v\nstdout:\n%s", err, string(out))
	}
	items, ok := v["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one note; got: %#v", v["data"])
	}

	out, errOut, err = runCLI(t, []string{"--dir", dir, "notes", "show", id})
	if err != nil {
		t.Fatalf("notes show error: %v\nstderr:\n%s", err, string(errOut))
	}
	data := dataObject(t, out)
	if got, _ := data["mode"].(string); got != "text" {
		t.Fatalf("expected text mode; got %q", got)
	}
}

func TestNotes_SetContentAndMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	id := createNote(t, dir)

	out, errOut, err := runCLI(t, []string{"--dir", dir, "notes", "set-content", id, "--content", "- [ ] milk\n  - [x] oat"})
	if err != nil {
		t.Fatalf("set-content error: %v\nstderr:\n%s", err, string(errOut))
	}
	data := dataObject(t, out)
	if got, _ := data["content"].(string); got != "- [ ] milk\n  - [x] oat" {
		t.Fatalf("content %q", got)
	}

	out, errOut, err = runCLI(t, []string{"--dir", dir, "notes", "set-mode", id, "todo"})
	if err != nil {
		t.Fatalf("set-mode error: %v\nstderr:\n%s", err, string(errOut))
	}
	if got, _ := dataObject(t, out)["mode"].(string); got != "todo" {
		t.Fatalf("mode %q, want todo", got)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "notes", "set-mode", id, "outline"}); err == nil {
		t.Fatal("expected invalid mode error")
	}
}

func TestNotes_GeometryClamps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	id := createNote(t, dir)

	out, errOut, err := runCLI(t, []string{"--dir", dir, "notes", "resize", id, "--width", "10", "--height", "9000"})
	if err != nil {
		t.Fatalf("resize error: %v\nstderr:\n%s", err, string(errOut))
	}
	data := dataObject(t, out)
	if got, _ := data["width"].(float64); got != 200 {
		t.Fatalf("width %v, want clamped 200", got)
	}
	if got, _ := data["height"].(float64); got != 9000 {
		t.Fatalf("height %v", got)
	}

	out, errOut, err = runCLI(t, []string{"--dir", dir, "notes", "set-opacity", id, "--opacity", "2.5"})
	if err != nil {
		t.Fatalf("set-opacity error: %v\nstderr:\n%s", err, string(errOut))
	}
	if got, _ := dataObject(t, out)["opacity"].(float64); got != 1.0 {
		t.Fatalf("opacity %v, want clamped 1.0", got)
	}
}

func TestNotes_SetOpacityAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createNote(t, dir)
	createNote(t, dir)

	out, errOut, err := runCLI(t, []string{"--dir", dir, "notes", "set-opacity", "--all", "--opacity", "0.5"})
	if err != nil {
		t.Fatalf("set-opacity --all error: %v\nstderr:\n%s", err, string(errOut))
	}
	var v map[string]any
	if err := json.Unmarshal(out, &v); err != nil {
		t.Fatalf("unmarshal output: %v\nstdout:\n%s", err, string(out))
	}
	items, ok := v["data"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected both notes echoed; got %#v", v["data"])
	}
	for _, it := range items {
		n, _ := it.(map[string]any)
		if got, _ := n["opacity"].(float64); got != 0.5 {
			t.Fatalf("opacity %v, want 0.5 on every note", got)
		}
	}

	// Without --all a note id is required.
	if _, _, err := runCLI(t, []string{"--dir", dir, "notes", "set-opacity", "--opacity", "0.5"}); err == nil {
		t.Fatal("expected missing note-id error")
	}
}

func TestNotes_Merge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := createNote(t, dir)
	source := createNote(t, dir)

	seed := func(id, content string) {
		t.Helper()
		if _, errOut, err := runCLI(t, []string{"--dir", dir, "notes", "set-content", id, "--content", content}); err != nil {
			t.Fatalf("seed content: %v\nstderr:\n%s", err, string(errOut))
		}
	}
	seed(target, "target text")
	seed(source, "- [ ] from source")

	out, errOut, err := runCLI(t, []string{"--dir", dir, "notes", "merge", target, source})
	if err != nil {
		t.Fatalf("merge error: %v\nstderr:\n%s", err, string(errOut))
	}
	data := dataObject(t, out)
	want := "target text\n\n---\n\n- [ ] from source"
	if got, _ := data["content"].(string); got != want {
		t.Fatalf("merged content %q, want %q", got, want)
	}

	// Source is gone.
	if _, _, err := runCLI(t, []string{"--dir", dir, "notes", "show", source}); err == nil {
		t.Fatal("expected source note to be deleted")
	}
}

func TestNotes_OpenClose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	id := createNote(t, dir)

	out, errOut, err := runCLI(t, []string{"--dir", dir, "notes", "close", id})
	if err != nil {
		t.Fatalf("close error: %v\nstderr:\n%s", err, string(errOut))
	}
	if got, _ := dataObject(t, out)["isOpen"].(bool); got {
		t.Fatal("expected closed note")
	}

	out, errOut, err = runCLI(t, []string{"--dir", dir, "notes", "list", "--open"})
	if err != nil {
		t.Fatalf("list --open error: %v\nstderr:\n%s", err, string(errOut))
	}
	var v map[string]any
	if err := json.Unmarshal(out, &v); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if items, _ := v["data"].([]any); len(items) != 0 {
		t.Fatalf("expected no open notes; got %#v", items)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	out, errOut, err := runCLI(t, []string{"--dir", dir, "settings", "set-theme", "dark"})
	if err != nil {
		t.Fatalf("set-theme error: %v\nstderr:\n%s", err, string(errOut))
	}
	if got, _ := dataObject(t, out)["theme"].(string); got != "dark" {
		t.Fatalf("theme %q", got)
	}

	out, errOut, err = runCLI(t, []string{"--dir", dir, "settings", "set-opacity", "0.1"})
	if err != nil {
		t.Fatalf("set-opacity error: %v\nstderr:\n%s", err, string(errOut))
	}
	if got, _ := dataObject(t, out)["defaultOpacity"].(float64); got != 0.3 {
		t.Fatalf("defaultOpacity %v, want clamped 0.3", got)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "settings", "set-theme", "solarized"}); err == nil {
		t.Fatal("expected invalid theme error")
	}
}

func TestMergeContents_SeparatorRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target, source, want string
	}{
		{"a", "b", "a\n\n---\n\nb"},
		{"", "b", "b"},
		{"a", "", "a"},
		{"", "", ""},
	}
	for _, tc := range tests {
		if got := MergeContents(tc.target, tc.source); got != tc.want {
			t.Fatalf("MergeContents(%q, %q) = %q, want %q", tc.target, tc.source, got, tc.want)
		}
	}
}
