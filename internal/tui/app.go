package tui

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notary-cli/internal/config"
	"notary-cli/internal/model"
	"notary-cli/internal/saver"
	"notary-cli/internal/store"
)

type view int

const (
	viewNotes view = iota
	viewEditor
)

type appModel struct {
	cfg   config.Config
	store store.Store
	db    *sql.DB

	width  int
	height int

	view      view
	notesList list.Model
	editor    editorModel

	status string
}

type noteItem struct {
	note model.Note
}

func (it noteItem) Title() string {
	if it.note.Title != "" {
		return it.note.Title
	}
	return "untitled"
}

func (it noteItem) Description() string {
	return fmt.Sprintf("%s · updated %s", it.note.Mode, it.note.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

func (it noteItem) FilterValue() string {
	return it.note.Title + " " + it.note.Content
}

func newNotesList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Notes"
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	l.SetShowStatusBar(false)
	l.SetStatusBarItemName("note", "notes")
	return l
}

func newAppModel(cfg config.Config, s store.Store, db *sql.DB) appModel {
	m := appModel{
		cfg:       cfg,
		store:     s,
		db:        db,
		view:      viewNotes,
		notesList: newNotesList(),
	}
	m.refreshNotes()
	return m
}

// Run starts the interactive TUI.
func Run(cfg config.Config) error {
	applyColorProfilePreference()
	applyThemePreference(cfg.Theme)

	s := store.Store{Dir: cfg.DataDir}
	ctx := context.Background()
	db, err := s.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	m := newAppModel(cfg, s, db)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	// Whatever model state we ended in, no pending edit may be lost.
	if am, ok := final.(appModel); ok && am.editor.sv != nil {
		return am.editor.sv.Flush()
	}
	return nil
}

func (m *appModel) refreshNotes() {
	notes, err := m.store.AllNotes(context.Background(), m.db)
	if err != nil {
		m.status = err.Error()
		return
	}
	items := make([]list.Item, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteItem{note: n})
	}
	m.notesList.SetItems(items)
}

func (m *appModel) openEditor(n model.Note) {
	noteID := n.ID
	sv := saver.New(func(content string) error {
		return m.store.UpdateNote(context.Background(), m.db, noteID, store.NoteUpdate{Content: &content})
	}, saver.Options{Quiet: m.cfg.Debounce.Duration})

	m.editor = newEditorModel(n, sv, m.cfg.LiteralTab)
	m.editor.width = m.width
	m.editor.height = m.height
	m.view = viewEditor
}

// closeEditor flushes pending edits and returns to the notes list.
func (m *appModel) closeEditor() {
	if m.editor.sv != nil {
		if err := m.editor.sv.Flush(); err != nil {
			m.status = err.Error()
		}
	}
	m.view = viewNotes
	m.refreshNotes()
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notesList.SetSize(msg.Width, msg.Height-1)
		if m.view == viewEditor {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewEditor {
			switch msg.String() {
			case "esc":
				m.closeEditor()
				return m, nil
			case "ctrl+c":
				m.closeEditor()
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}

		// Notes list view. Let the list handle keys while filtering.
		if m.notesList.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if it, ok := m.notesList.SelectedItem().(noteItem); ok {
				m.openEditor(it.note)
			}
			return m, nil
		case "n":
			n, err := m.store.CreateNote(context.Background(), m.db, 100, 100)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.refreshNotes()
			m.openEditor(n)
			return m, nil
		case "x":
			if it, ok := m.notesList.SelectedItem().(noteItem); ok {
				if err := m.store.DeleteNote(context.Background(), m.db, it.note.ID); err != nil {
					m.status = err.Error()
					return m, nil
				}
				m.refreshNotes()
			}
			return m, nil
		}
	}

	if m.view == viewNotes {
		var cmd tea.Cmd
		m.notesList, cmd = m.notesList.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	if m.view == viewEditor {
		return m.editor.View()
	}
	help := styleMuted().Render("enter: edit  n: new  x: delete  q: quit")
	if m.status != "" {
		help = styleMuted().Render(m.status) + "  " + help
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.notesList.View(), help)
}
