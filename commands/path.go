package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the note store lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), opts.app.Notes.Path())
			return nil
		},
	}
}
