package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"notary-cli/internal/model"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "App-wide settings",
	}
	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetThemeCmd(app))
	cmd.AddCommand(newSettingsSetOpacityCmd(app))
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			settings, err := s.GetSettings(cmd.Context(), db)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": settings})
		},
	}
}

func newSettingsSetThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-theme <light|dark>",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := strings.TrimSpace(args[0])
			if theme != "light" && theme != "dark" {
				return writeErr(cmd, fmt.Errorf("invalid theme: %q (must be light or dark)", theme))
			}
			s, db, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			if err := s.SetSetting(cmd.Context(), db, "theme", theme); err != nil {
				return writeErr(cmd, err)
			}
			settings, err := s.GetSettings(cmd.Context(), db)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": settings})
		},
	}
}

func newSettingsSetOpacityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-opacity <value>",
		Short: "Set the default opacity for new notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid opacity: %w", err))
			}
			o = model.ClampOpacity(o)

			s, db, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			if err := s.SetSetting(cmd.Context(), db, "default_opacity", strconv.FormatFloat(o, 'f', -1, 64)); err != nil {
				return writeErr(cmd, err)
			}
			settings, err := s.GetSettings(cmd.Context(), db)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": settings})
		},
	}
}
