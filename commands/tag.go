package commands

import (
	"fmt"
	"io"

	"labrain/models"

	"github.com/spf13/cobra"
)

func newTagCmd(opts *rootOptions) *cobra.Command {
	tagCmd := &cobra.Command{
		Use:   "tag",
		Short: "Create tags and attach them to notes",
	}

	tagCmd.AddCommand(
		newTagNewCmd(opts),
		newTagAttachCmd(opts),
		newTagListCmd(opts),
	)
	return tagCmd
}

func newTagNewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name> [description]",
		Short: "Create a tag",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := ""
			if len(args) == 2 {
				description = args[1]
			}

			tag, err := opts.app.Notes.CreateTag(args[0], description)
			if err != nil {
				return fmt.Errorf("creating a tag failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created tag %d\n", tag.ID.Int64())
			return nil
		},
	}
}

func newTagAttachCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <note-id> <tag-id>",
		Short: "Attach a tag to a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := models.ParseNoteID(args[0])
			if err != nil {
				return err
			}
			tagID, err := models.ParseTagID(args[1])
			if err != nil {
				return err
			}

			if err := opts.app.Notes.Tag(noteID, tagID); err != nil {
				return fmt.Errorf("tagging a note failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tagged note %d with tag %d\n", noteID.Int64(), tagID.Int64())
			return nil
		},
	}
}

func newTagListCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := opts.app.Notes.Tags()
			if err != nil {
				return fmt.Errorf("listing the tags failed: %w", err)
			}

			return render(cmd.OutOrStdout(), output, tags, func(w io.Writer) {
				for _, tag := range tags {
					if tag.Description == "" {
						fmt.Fprintf(w, "%d %s\n", tag.ID.Int64(), tag.Name)
						continue
					}
					fmt.Fprintf(w, "%d %s - %s\n", tag.ID.Int64(), tag.Name, tag.Description)
				}
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
