package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := opts.app.Notes.List()
			if err != nil {
				return fmt.Errorf("listing the notes failed: %w", err)
			}

			return render(cmd.OutOrStdout(), output, notes, func(w io.Writer) {
				fmt.Fprintln(w, "--- Search Results ---")
				for _, note := range notes {
					fmt.Fprintf(w, "ID: %d Title: %s\n", note.ID.Int64(), note.Title)
				}
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
