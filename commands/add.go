package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> <content>",
		Short: "Add a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := opts.app.Notes.Add(args[0], args[1])
			if err != nil {
				return fmt.Errorf("adding a note failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created note %d\n", note.ID.Int64())
			return nil
		},
	}
}
