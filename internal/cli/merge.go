package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"notary-cli/internal/store"
)

// mergeSeparator sits between the two contents when both sides are non-empty.
const mergeSeparator = "\n\n---\n\n"

// MergeContents concatenates a source note's content onto a target's.
// The separator appears only when both sides are non-empty.
func MergeContents(target, source string) string {
	if target != "" && source != "" {
		return target + mergeSeparator + source
	}
	return target + source
}

func newNotesMergeCmd(app *App) *cobra.Command {
	var keepSource bool

	cmd := &cobra.Command{
		Use:   "merge <target-id> <source-id>",
		Short: "Append the source note's content to the target note",
		Long: strings.TrimSpace(`
Append the source note's content to the target note, separated by a horizontal
rule when both are non-empty. The source note is deleted afterwards unless
--keep-source is given.

Interactive editors flush their pending saves before a merge; the stored
content read here is therefore always current.`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			targetID := strings.TrimSpace(args[0])
			sourceID := strings.TrimSpace(args[1])

			target, err := s.GetNote(cmd.Context(), db, targetID)
			if err != nil {
				return writeErr(cmd, err)
			}
			source, err := s.GetNote(cmd.Context(), db, sourceID)
			if err != nil {
				return writeErr(cmd, err)
			}

			merged := MergeContents(target.Content, source.Content)
			if err := s.UpdateNote(cmd.Context(), db, targetID, store.NoteUpdate{Content: &merged}); err != nil {
				return writeErr(cmd, err)
			}
			if !keepSource {
				if err := s.DeleteNote(cmd.Context(), db, sourceID); err != nil {
					return writeErr(cmd, err)
				}
			}

			n, err := s.GetNote(cmd.Context(), db, targetID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}
	cmd.Flags().BoolVar(&keepSource, "keep-source", false, "Keep the source note after merging")
	return cmd
}
