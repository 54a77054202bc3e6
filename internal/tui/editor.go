package tui

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"notary-cli/internal/doc"
	"notary-cli/internal/edit"
	"notary-cli/internal/model"
	"notary-cli/internal/saver"
)

// editorModel is the structured note editor: a document plus the focus
// controller, wired to a debounced saver. Every committed action
// re-serializes the document and hands the text to the saver; the saver is
// flushed when the editor closes.
type editorModel struct {
	note model.Note
	d    doc.Document

	focus edit.Controller
	sv    *saver.Debounced

	// literalTab switches Tab on text lines to inserting an indent marker.
	literalTab bool

	width   int
	height  int
	scroll  int
	preview bool
	status  string
}

func newEditorModel(n model.Note, sv *saver.Debounced, literalTab bool) editorModel {
	d := doc.Parse(n.Content)
	m := editorModel{note: n, d: d, sv: sv, literalTab: literalTab}
	m.focus.Apply(d, edit.FocusDirective{Line: 0, Caret: edit.NoCaret})
	return m
}

// commit applies an action result: adopt the new document, reapply focus
// (positions shift on insert/remove) and schedule a save when anything
// changed.
func (m *editorModel) commit(r edit.Result) {
	m.d = r.Doc
	m.focus.Apply(m.d, r.Focus)
	if r.Changed && m.sv != nil {
		m.sv.Save(doc.Serialize(m.d))
	}
}

func (m *editorModel) fail(err error) {
	m.status = err.Error()
}

func (m *editorModel) currentLine() doc.Line {
	return m.d[m.focus.Line]
}

// editText replaces the focused line's text, keeping the caret where the
// host expects it. The engine's directive wins when the edit coerced the
// line into a todo (the marker prefix is consumed, so byte offsets moved).
func (m *editorModel) editText(newText string, caret int) {
	i := m.focus.Line
	wasText := m.d[i].Kind == doc.KindText
	r, err := edit.EditText(m.d, i, newText)
	if err != nil {
		m.fail(err)
		return
	}
	m.commit(r)
	if !(wasText && m.d[i].Kind == doc.KindTodo) {
		m.focus.Apply(m.d, edit.FocusDirective{Line: i, Caret: caret})
	}
}

func (m editorModel) Update(msg tea.Msg) (editorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		i := m.focus.Line
		line := m.currentLine()

		switch msg.String() {
		case "up":
			r, err := edit.MoveFocus(m.d, i, edit.Up)
			if err != nil {
				m.fail(err)
				return m, nil
			}
			m.commit(r)

		case "down":
			r, err := edit.MoveFocus(m.d, i, edit.Down)
			if err != nil {
				m.fail(err)
				return m, nil
			}
			m.commit(r)

		case "left":
			if m.focus.Caret > 0 {
				_, n := utf8.DecodeLastRuneInString(line.Text[:m.focus.Caret])
				m.focus.Caret -= n
			}

		case "right":
			if m.focus.Caret < len(line.Text) {
				_, n := utf8.DecodeRuneInString(line.Text[m.focus.Caret:])
				m.focus.Caret += n
			}

		case "home":
			m.focus.Caret = 0

		case "end":
			m.focus.Caret = len(line.Text)

		case "enter":
			r, err := edit.Split(m.d, i)
			if err != nil {
				m.fail(err)
				return m, nil
			}
			m.commit(r)

		case "tab":
			if line.Kind == doc.KindTodo {
				r, err := edit.Indent(m.d, i)
				if err != nil {
					m.fail(err)
					return m, nil
				}
				m.commit(r)
			} else if m.literalTab {
				caret := m.focus.Caret
				r, err := edit.InsertIndentSpaces(m.d, i, caret, caret)
				if err != nil {
					m.fail(err)
					return m, nil
				}
				m.commit(r)
			}

		case "shift+tab":
			r, err := edit.Outdent(m.d, i)
			if err != nil {
				m.fail(err)
				return m, nil
			}
			m.commit(r)

		case "ctrl+t":
			r, err := edit.Toggle(m.d, i)
			if err != nil {
				m.fail(err)
				return m, nil
			}
			m.commit(r)

		case "backspace":
			if m.focus.Caret > 0 {
				_, n := utf8.DecodeLastRuneInString(line.Text[:m.focus.Caret])
				caret := m.focus.Caret - n
				m.editText(line.Text[:caret]+line.Text[m.focus.Caret:], caret)
			} else if line.Text == "" {
				r, err := edit.DeleteBackward(m.d, i)
				if err != nil {
					m.fail(err)
					return m, nil
				}
				m.commit(r)
			}

		case "ctrl+p":
			m.preview = !m.preview

		case "ctrl+s":
			if m.sv != nil {
				if err := m.sv.Flush(); err != nil {
					m.fail(err)
				} else {
					m.status = "saved"
				}
			}

		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				text := string(msg.Runes)
				if msg.Type == tea.KeySpace {
					text = " "
				}
				caret := m.focus.Caret
				m.editText(line.Text[:caret]+text+line.Text[caret:], caret+len(text))
			}
		}
	}
	m.scrollIntoView()
	return m, nil
}

func (m *editorModel) scrollIntoView() {
	visible := m.visibleLines()
	if visible <= 0 {
		return
	}
	if m.focus.Line < m.scroll {
		m.scroll = m.focus.Line
	}
	if m.focus.Line >= m.scroll+visible {
		m.scroll = m.focus.Line - visible + 1
	}
}

// visibleLines is the editor body height: total minus header, status and help.
func (m editorModel) visibleLines() int {
	return m.height - 3
}

func (m editorModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	title := m.note.Title
	if title == "" {
		title = "untitled"
	}
	header := ansi.Truncate(styleTitle().Render(title)+styleMuted().Render("  ("+string(m.note.Mode)+")"), width, "…")

	var body string
	if m.preview {
		body = renderMarkdown(doc.Serialize(m.d), width)
	} else {
		body = m.renderDocument(width)
	}

	help := styleMuted().Render("enter: new line  tab/shift+tab: indent  ctrl+t: toggle  ctrl+p: preview  ctrl+s: save  esc: back")
	status := m.status
	if status != "" {
		status = styleMuted().Render(status)
	}
	return strings.Join([]string{header, body, status, ansi.Truncate(help, width, "…")}, "\n")
}

func (m editorModel) renderDocument(width int) string {
	visible := m.visibleLines()
	if visible <= 0 {
		visible = len(m.d)
	}
	end := m.scroll + visible
	if end > len(m.d) {
		end = len(m.d)
	}

	var out []string
	for i := m.scroll; i < end; i++ {
		out = append(out, m.renderDocLine(i, width))
	}
	return strings.Join(out, "\n")
}

func (m editorModel) renderDocLine(i, width int) string {
	ln := m.d[i]
	focused := i == m.focus.Line

	var prefix string
	if ln.Kind == doc.KindTodo {
		box := "[ ] "
		if ln.Checked {
			box = "[x] "
		}
		prefix = strings.Repeat("  ", ln.Indent) + box
	}

	text := ln.Text
	if focused {
		text = withCaret(text, m.focus.Caret)
	}
	s := prefix + text
	if ln.Kind == doc.KindTodo && ln.Checked && !focused {
		s = styleChecked().Render(s)
	} else if focused {
		s = styleFocusedLine().Render(s)
	}
	return ansi.Truncate(s, width, "…")
}

// withCaret marks the caret position with a block cursor.
func withCaret(text string, caret int) string {
	if caret < 0 || caret > len(text) {
		caret = len(text)
	}
	if caret == len(text) {
		return text + "█"
	}
	_, n := utf8.DecodeRuneInString(text[caret:])
	under := text[caret : caret+n]
	return text[:caret] + styleFocusedLine().Reverse(true).Render(under) + text[caret+n:]
}
