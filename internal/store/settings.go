package store

import (
	"context"
	"database/sql"
	"strconv"

	"notary-cli/internal/model"
)

// GetSetting returns one raw settings value.
func (s Store) GetSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	return v, err
}

// SetSetting upserts one settings value.
func (s Store) SetSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// GetSettings returns the typed settings, falling back to defaults for
// missing or malformed values.
func (s Store) GetSettings(ctx context.Context, db *sql.DB) (model.Settings, error) {
	out := model.Settings{
		Theme:          model.DefaultTheme,
		DefaultOpacity: model.DefaultOpacity,
	}
	if theme, err := s.GetSetting(ctx, db, "theme"); err == nil && theme != "" {
		out.Theme = theme
	}
	if raw, err := s.GetSetting(ctx, db, "default_opacity"); err == nil {
		if o, err := strconv.ParseFloat(raw, 64); err == nil {
			out.DefaultOpacity = model.ClampOpacity(o)
		}
	}
	return out, nil
}
