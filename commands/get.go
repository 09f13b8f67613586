package commands

import (
	"fmt"
	"io"

	"labrain/models"

	"github.com/spf13/cobra"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a note with its tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseNoteID(args[0])
			if err != nil {
				return err
			}

			note, err := opts.app.Notes.Get(id)
			if err != nil {
				return fmt.Errorf("getting a note failed: %w", err)
			}

			return render(cmd.OutOrStdout(), output, note, func(w io.Writer) {
				fmt.Fprintf(w, "--- %s ---\n", note.Title)
				fmt.Fprintln(w, note.Content)
				fmt.Fprintln(w, "---")
				fmt.Fprintln(w, "TAGS:")
				for _, tag := range note.Tags {
					fmt.Fprintf(w, " - %s\n", tag.Name)
				}
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
