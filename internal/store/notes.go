package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notary-cli/internal/model"
)

const noteColumns = `id, title, content, mode, pos_x, pos_y, width, height, opacity,
	is_open, is_minimized, always_on_top, created_at, updated_at`

func scanNote(row interface{ Scan(...any) error }) (model.Note, error) {
	var n model.Note
	var mode, created, updated string
	var isOpen, isMin, onTop int
	err := row.Scan(&n.ID, &n.Title, &n.Content, &mode, &n.PosX, &n.PosY,
		&n.Width, &n.Height, &n.Opacity, &isOpen, &isMin, &onTop, &created, &updated)
	if err != nil {
		return model.Note{}, err
	}
	n.Mode = model.Mode(mode)
	n.IsOpen = isOpen == 1
	n.IsMinimized = isMin == 1
	n.AlwaysOnTop = onTop == 1
	if n.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return model.Note{}, fmt.Errorf("note %s: parse created_at: %w", n.ID, err)
	}
	if n.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return model.Note{}, fmt.Errorf("note %s: parse updated_at: %w", n.ID, err)
	}
	return n, nil
}

// AllNotes returns every note ordered by creation time.
func (s Store) AllNotes(ctx context.Context, db *sql.DB) ([]model.Note, error) {
	return s.queryNotes(ctx, db, `SELECT `+noteColumns+` FROM notes ORDER BY created_at`)
}

// OpenNotes returns the notes currently marked open, ordered by creation time.
func (s Store) OpenNotes(ctx context.Context, db *sql.DB) ([]model.Note, error) {
	return s.queryNotes(ctx, db, `SELECT `+noteColumns+` FROM notes WHERE is_open = 1 ORDER BY created_at`)
}

func (s Store) queryNotes(ctx context.Context, db *sql.DB, q string) ([]model.Note, error) {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetNote fetches one note by id.
func (s Store) GetNote(ctx context.Context, db *sql.DB, id string) (model.Note, error) {
	row := db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return n, err
}

// CreateNote inserts a new empty text-mode note at the given position, sized
// to the defaults and using the configured default opacity.
func (s Store) CreateNote(ctx context.Context, db *sql.DB, posX, posY int) (model.Note, error) {
	opacity := model.DefaultOpacity
	if settings, err := s.GetSettings(ctx, db); err == nil {
		opacity = settings.DefaultOpacity
	}
	now := time.Now().UTC()
	n := model.Note{
		ID:          uuid.NewString(),
		Mode:        model.ModeText,
		PosX:        posX,
		PosY:        posY,
		Width:       model.DefaultWidth,
		Height:      model.DefaultHeight,
		Opacity:     opacity,
		IsOpen:      true,
		AlwaysOnTop: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := db.ExecContext(ctx, `INSERT INTO notes (`+noteColumns+`)
		VALUES (?, '', '', 'text', ?, ?, ?, ?, ?, 1, 0, 1, ?, ?)`,
		n.ID, n.PosX, n.PosY, n.Width, n.Height, n.Opacity,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// NoteUpdate is a partial update: nil fields are left untouched. Geometry and
// appearance values are clamped, not rejected.
type NoteUpdate struct {
	Title       *string
	Content     *string
	Mode        *model.Mode
	PosX        *int
	PosY        *int
	Width       *int
	Height      *int
	Opacity     *float64
	AlwaysOnTop *bool
}

func (u *NoteUpdate) clamp() error {
	if u.Mode != nil && !u.Mode.Valid() {
		return fmt.Errorf("invalid mode: %q (must be %q or %q)", *u.Mode, model.ModeText, model.ModeTodo)
	}
	if u.Opacity != nil {
		o := model.ClampOpacity(*u.Opacity)
		u.Opacity = &o
	}
	if u.Width != nil && *u.Width < model.MinWidth {
		w := model.MinWidth
		u.Width = &w
	}
	if u.Height != nil && *u.Height < model.MinHeight {
		h := model.MinHeight
		u.Height = &h
	}
	return nil
}

// UpdateNote applies a partial update in one transaction, bumping updated_at.
func (s Store) UpdateNote(ctx context.Context, db *sql.DB, id string, u NoteUpdate) error {
	if err := u.clamp(); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	set := func(query string, args ...any) error {
		res, execErr := tx.ExecContext(ctx, query, append(args, now, id)...)
		if execErr != nil {
			return execErr
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
		}
		return nil
	}

	if u.Title != nil {
		if err := set(`UPDATE notes SET title = ?, updated_at = ? WHERE id = ?`, *u.Title); err != nil {
			return err
		}
	}
	if u.Content != nil {
		if err := set(`UPDATE notes SET content = ?, updated_at = ? WHERE id = ?`, *u.Content); err != nil {
			return err
		}
	}
	if u.Mode != nil {
		if err := set(`UPDATE notes SET mode = ?, updated_at = ? WHERE id = ?`, string(*u.Mode)); err != nil {
			return err
		}
	}
	if u.PosX != nil && u.PosY != nil {
		if err := set(`UPDATE notes SET pos_x = ?, pos_y = ?, updated_at = ? WHERE id = ?`, *u.PosX, *u.PosY); err != nil {
			return err
		}
	}
	if u.Width != nil && u.Height != nil {
		if err := set(`UPDATE notes SET width = ?, height = ?, updated_at = ? WHERE id = ?`, *u.Width, *u.Height); err != nil {
			return err
		}
	}
	if u.Opacity != nil {
		if err := set(`UPDATE notes SET opacity = ?, updated_at = ? WHERE id = ?`, *u.Opacity); err != nil {
			return err
		}
	}
	if u.AlwaysOnTop != nil {
		onTop := 0
		if *u.AlwaysOnTop {
			onTop = 1
		}
		if err := set(`UPDATE notes SET always_on_top = ?, updated_at = ? WHERE id = ?`, onTop); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SetAllOpacity applies one clamped opacity to every note.
func (s Store) SetAllOpacity(ctx context.Context, db *sql.DB, opacity float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.ExecContext(ctx, `UPDATE notes SET opacity = ?, updated_at = ?`,
		model.ClampOpacity(opacity), now)
	return err
}

// SetNoteOpen flips the is_open flag (open/close a note without deleting it).
func (s Store) SetNoteOpen(ctx context.Context, db *sql.DB, id string, open bool) error {
	v := 0
	if open {
		v = 1
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.ExecContext(ctx, `UPDATE notes SET is_open = ?, updated_at = ? WHERE id = ?`, v, now, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return nil
}

// DeleteNote removes a note permanently.
func (s Store) DeleteNote(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return nil
}
