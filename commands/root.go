package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"labrain/app"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	dataDir string
	verbose bool

	app *app.App
}

// newRootCmd builds the command tree. defaultDataDir seeds --data-dir; empty
// means the platform data directory.
func newRootCmd(defaultDataDir string) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "labrain",
		Short: "Keep notes and tag them from the command line",
		Long: `labrain stores notes and a tag taxonomy in a local SQLite database.
Notes are created once and read back by id or as a full listing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			if opts.verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}
			// Correlates every log line of one invocation.
			logger = logger.With("run_id", uuid.NewString(), "command", cmd.Name())

			a, err := app.Open(opts.dataDir, logger)
			if err != nil {
				return fmt.Errorf("opening the note store failed: %w", err)
			}
			opts.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir, "Directory holding notes.db (default: platform data directory)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newAddCmd(opts),
		newGetCmd(opts),
		newListCmd(opts),
		newTagCmd(opts),
		newPathCmd(opts),
	)

	return rootCmd, opts
}

func (o *rootOptions) close() error {
	if o.app == nil {
		return nil
	}
	err := o.app.Close()
	o.app = nil
	return err
}

// Execute runs the command tree against os.Args and exits non-zero with a
// message on stderr when a command fails.
func Execute(defaultDataDir string) {
	if err := run(defaultDataDir, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one invocation. cobra skips post-run hooks when a command
// fails, so the store is released here as well.
func run(defaultDataDir string, args []string, stdout, stderr io.Writer) error {
	cmd, opts := newRootCmd(defaultDataDir)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	execErr := cmd.Execute()
	return errors.Join(execErr, opts.close())
}
