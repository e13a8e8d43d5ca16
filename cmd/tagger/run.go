package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the notification spool once",
		Long: `Run performs one batch pass: every spooled notification is normalized,
the resulting tag additions are grouped per task and applied to Phabricator,
and the spool is cleared. A failed pass leaves the spool in place so the next
run retries it; already tagged tasks are not updated twice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, rootOpts)
		},
	}

	cmd.Flags().String("spool-dir", "", "override tagger.spool_dir")
	cmd.Flags().Bool("dry-run", false, "compute updates without writing to Phabricator")
	cmd.Flags().Bool("suggest-release-branch", false, "also tag core master merges with the next REL branch")

	return cmd
}

func runBatch(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := newRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}

	summary, runErr := r.Run(ctx)
	if err := writeSummary(cmd.OutOrStdout(), opts.Format, summary); err != nil {
		return err
	}
	return runErr
}
