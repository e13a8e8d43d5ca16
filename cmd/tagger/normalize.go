package main

import (
	"context"

	"github.com/spf13/cobra"

	"release-tagger/internal/spool"
)

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Show what a single notification would do",
		Long: `Normalize reads one .eml or .json notification and prints the action it
produces (task, branch and tag slugs) or the reason it is skipped. Nothing is
written to Phabricator and the file is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, rootOpts, args[0])
		},
	}

	cmd.Flags().Bool("suggest-release-branch", false, "also tag core master merges with the next REL branch")

	return cmd
}

func runNormalize(cmd *cobra.Command, opts *RootOptions, path string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	n, err := spool.ReadFile(path, cfg.Gerrit.Sender)
	if err != nil {
		return err
	}

	ctx := context.Background()
	r, err := newRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}

	res, err := r.Normalize(ctx, n)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), opts.Format, res)
}
