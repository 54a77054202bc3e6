package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"notary-cli/internal/model"
	"notary-cli/internal/store"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Note commands",
	}
	cmd.AddCommand(newNotesCreateCmd(app))
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesShowCmd(app))
	cmd.AddCommand(newNotesOpenCmd(app))
	cmd.AddCommand(newNotesCloseCmd(app))
	cmd.AddCommand(newNotesDeleteCmd(app))
	cmd.AddCommand(newNotesSetContentCmd(app))
	cmd.AddCommand(newNotesSetTitleCmd(app))
	cmd.AddCommand(newNotesSetModeCmd(app))
	cmd.AddCommand(newNotesMoveCmd(app))
	cmd.AddCommand(newNotesResizeCmd(app))
	cmd.AddCommand(newNotesSetOpacityCmd(app))
	cmd.AddCommand(newNotesSetOnTopCmd(app))
	cmd.AddCommand(newNotesMergeCmd(app))
	return cmd
}

func newNotesCreateCmd(app *App) *cobra.Command {
	var posX, posY int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new note",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			n, err := s.CreateNote(cmd.Context(), db, posX, posY)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}
	cmd.Flags().IntVar(&posX, "x", 100, "Initial window x position")
	cmd.Flags().IntVar(&posY, "y", 100, "Initial window y position")
	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			var notes []model.Note
			if openOnly {
				notes, err = s.OpenNotes(cmd.Context(), db)
			} else {
				notes, err = s.AllNotes(cmd.Context(), db)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if notes == nil {
				notes = []model.Note{}
			}
			return writeOut(cmd, app, map[string]any{"data": notes})
		},
	}
	cmd.Flags().BoolVar(&openOnly, "open", false, "Only notes currently open")
	return cmd
}

func newNotesShowCmd(app *App) *cobra.Command {
	var rendered bool

	cmd := &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			n, err := s.GetNote(cmd.Context(), db, strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			if rendered {
				out, err := renderContentMarkdown(n.Content)
				if err != nil {
					return writeErr(cmd, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}
	cmd.Flags().BoolVar(&rendered, "rendered", false, "Render content as markdown instead of JSON")
	return cmd
}

func renderContentMarkdown(content string) (string, error) {
	// Fixed style instead of auto-detection: stdout may not be a terminal.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func newNotesOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <note-id>",
		Short: "Mark a note open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setOpen(cmd, app, args[0], true)
		},
	}
}

func newNotesCloseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "close <note-id>",
		Short: "Mark a note closed (kept in the store)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setOpen(cmd, app, args[0], false)
		},
	}
}

func setOpen(cmd *cobra.Command, app *App, id string, open bool) error {
	s, db, err := openStore(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer db.Close()

	id = strings.TrimSpace(id)
	if err := s.SetNoteOpen(cmd.Context(), db, id, open); err != nil {
		return writeErr(cmd, err)
	}
	n, err := s.GetNote(cmd.Context(), db, id)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": n})
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			id := strings.TrimSpace(args[0])
			if err := s.DeleteNote(cmd.Context(), db, id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}

// updateNote runs one partial update and echoes the updated note.
func updateNote(cmd *cobra.Command, app *App, id string, u store.NoteUpdate) error {
	s, db, err := openStore(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer db.Close()

	id = strings.TrimSpace(id)
	if err := s.UpdateNote(cmd.Context(), db, id, u); err != nil {
		return writeErr(cmd, err)
	}
	n, err := s.GetNote(cmd.Context(), db, id)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": n})
}

func newNotesSetContentCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "set-content <note-id>",
		Short: "Replace a note's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateNote(cmd, app, args[0], store.NoteUpdate{Content: &content})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "New content (plain text / checklist grammar)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newNotesSetTitleCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "set-title <note-id>",
		Short: "Set a note's title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateNote(cmd, app, args[0], store.NoteUpdate{Title: &title})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesSetModeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-mode <note-id> <text|todo>",
		Short: "Switch a note between text and todo mode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := model.Mode(strings.TrimSpace(args[1]))
			return updateNote(cmd, app, args[0], store.NoteUpdate{Mode: &mode})
		},
	}
	return cmd
}

func newNotesMoveCmd(app *App) *cobra.Command {
	var x, y int

	cmd := &cobra.Command{
		Use:   "move <note-id>",
		Short: "Move a note's window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateNote(cmd, app, args[0], store.NoteUpdate{PosX: &x, PosY: &y})
		},
	}
	cmd.Flags().IntVar(&x, "x", 0, "Window x position")
	cmd.Flags().IntVar(&y, "y", 0, "Window y position")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func newNotesResizeCmd(app *App) *cobra.Command {
	var w, h int

	cmd := &cobra.Command{
		Use:   "resize <note-id>",
		Short: "Resize a note's window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateNote(cmd, app, args[0], store.NoteUpdate{Width: &w, Height: &h})
		},
	}
	cmd.Flags().IntVar(&w, "width", model.DefaultWidth, "Window width")
	cmd.Flags().IntVar(&h, "height", model.DefaultHeight, "Window height")
	return cmd
}

func newNotesSetOpacityCmd(app *App) *cobra.Command {
	var opacity float64
	var all bool

	cmd := &cobra.Command{
		Use:   "set-opacity [note-id]",
		Short: "Set window opacity for one note or all notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				s, db, err := openStore(cmd.Context(), app)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer db.Close()

				if err := s.SetAllOpacity(cmd.Context(), db, opacity); err != nil {
					return writeErr(cmd, err)
				}
				notes, err := s.AllNotes(cmd.Context(), db)
				if err != nil {
					return writeErr(cmd, err)
				}
				if notes == nil {
					notes = []model.Note{}
				}
				return writeOut(cmd, app, map[string]any{"data": notes})
			}
			if len(args) != 1 {
				return writeErr(cmd, errors.New("note-id required unless --all is given"))
			}
			return updateNote(cmd, app, args[0], store.NoteUpdate{Opacity: &opacity})
		},
	}
	cmd.Flags().Float64Var(&opacity, "opacity", model.DefaultOpacity, "Opacity in [0.3, 1.0] (clamped)")
	cmd.Flags().BoolVar(&all, "all", false, "Apply to every note")
	return cmd
}

func newNotesSetOnTopCmd(app *App) *cobra.Command {
	var onTop bool

	cmd := &cobra.Command{
		Use:   "set-on-top <note-id>",
		Short: "Keep a note's window above others",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateNote(cmd, app, args[0], store.NoteUpdate{AlwaysOnTop: &onTop})
		},
	}
	cmd.Flags().BoolVar(&onTop, "on", true, "Always on top")
	return cmd
}
