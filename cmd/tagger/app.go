package main

import (
	"context"

	"github.com/spf13/cobra"

	"release-tagger/config"
	"release-tagger/internal/event"
	"release-tagger/internal/reconcile"
	"release-tagger/internal/runner"
	"release-tagger/internal/sourcecontrol/repository/gerrit"
	"release-tagger/internal/spool"
	"release-tagger/internal/tracker/repository/phabricator"
	"release-tagger/internal/watchlist"
	"release-tagger/pkg/log"
	"release-tagger/pkg/telegram"
)

// loadConfig loads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	cfg, err := config.LoadFrom(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("spool-dir") {
		cfg.Tagger.SpoolDir, _ = flags.GetString("spool-dir")
	}
	if flags.Changed("dry-run") {
		cfg.Tagger.DryRun, _ = flags.GetBool("dry-run")
	}
	if flags.Changed("suggest-release-branch") {
		cfg.Tagger.SuggestReleaseBranch, _ = flags.GetBool("suggest-release-branch")
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) log.Logger {
	return log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

// newRunner wires the Gerrit and Phabricator backends, the spool and the
// optional Telegram notifier.
func newRunner(ctx context.Context, cfg *config.Config, logger log.Logger) (runner.Runner, error) {
	sourceControl := gerrit.New(gerrit.NewClient(cfg.Gerrit.URL), logger)
	tracker := phabricator.New(
		phabricator.NewClient(cfg.Phabricator.URL, cfg.Phabricator.APIToken, cfg.Phabricator.RequestsPerSecond),
		logger,
	)

	sp, err := spool.New(spool.Config{Dir: cfg.Tagger.SpoolDir, Sender: cfg.Gerrit.Sender}, logger)
	if err != nil {
		return nil, err
	}

	var notifier runner.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		notifier = newNotifier(ctx, telegram.NewBot(cfg.Telegram.BotToken), cfg.Telegram.ChatID, logger)
	}

	return runner.New(sourceControl, tracker, sp, notifier, runner.Config{
		LockFile: cfg.Tagger.LockFile,
		Event: event.Config{
			GerritURL:      cfg.Gerrit.URL,
			PrimaryProject: cfg.Gerrit.PrimaryProject,
		},
		Watchlist: watchlist.Config{
			Projects: cfg.Gerrit.WatchedProjects,
			Prefixes: cfg.Gerrit.WatchedPrefixes,
		},
		SuggestReleaseBranch: cfg.Tagger.SuggestReleaseBranch,
		Reconcile:            reconcile.Config{DryRun: cfg.Tagger.DryRun},
	}, logger), nil
}

// newNotifier checks the bot token before the run. A rejected token disables
// alerts instead of failing the run.
func newNotifier(ctx context.Context, bot *telegram.Bot, chatID int64, logger log.Logger) runner.Notifier {
	me, err := bot.GetMe(ctx)
	if err != nil {
		logger.Warnf(ctx, "Telegram alerts disabled: %v", err)
		return nil
	}
	logger.Debugf(ctx, "Telegram alerts sent as @%s", me.Username)
	return runner.NewTelegramNotifier(bot, chatID)
}
