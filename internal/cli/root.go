package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notary-cli/internal/config"
	"notary-cli/internal/format"
	"notary-cli/internal/store"
	"notary-cli/internal/tui"
)

// App carries flag state shared by every command.
type App struct {
	Dir        string
	PrettyJSON bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "notary",
		Short:        "Floating sticky notes with nested checklists",
		SilenceUsage: true,
		Example: `
  # Open the interactive TUI
  notary

  # Scriptable commands
  notary notes create
  notary notes list
  notary notes set-content <note-id> --content "- [ ] milk"
  notary notes merge <target-id> <source-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if app.Dir != "" {
			cfg.DataDir = app.Dir
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", os.Getenv("NOTARY_DIR"), "Path to the data dir holding notary.db (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newSettingsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	return tui.Run(app.cfg)
}

// openStore opens the sqlite-backed store; the caller closes db.
func openStore(ctx context.Context, app *App) (store.Store, *sql.DB, error) {
	s := store.Store{Dir: app.cfg.DataDir}
	db, err := s.Open(ctx)
	if err != nil {
		return store.Store{}, nil, err
	}
	return s, db, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
