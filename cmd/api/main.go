package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"release-tagger/config"
	_ "release-tagger/docs" // Swagger docs
	"release-tagger/internal/httpserver"
	"release-tagger/internal/spool"
	"release-tagger/internal/webhook"
	"release-tagger/pkg/log"
)

// @title       Release Tagger API
// @description Receives Gerrit merge events and spools them for the release tagger.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting release-tagger API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Spool: %s", cfg.Tagger.SpoolDir)

	// 3. Spool
	sp, err := spool.New(spool.Config{Dir: cfg.Tagger.SpoolDir, Sender: cfg.Gerrit.Sender}, logger)
	if err != nil {
		logger.Error(ctx, "Failed to open spool: ", err)
		os.Exit(1)
	}

	// 4. Gerrit webhook
	var gerritHandler httpserver.GerritWebhookHandler
	if cfg.Webhook.Enabled {
		if cfg.Webhook.Secret == "" {
			logger.Warn(ctx, "webhook.secret is empty: every Gerrit webhook will be rejected")
		}
		gerritHandler = webhook.NewHandler(sp, webhook.SecurityConfig{
			Secret:          cfg.Webhook.Secret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		}, logger)
	} else {
		logger.Warn(ctx, "Gerrit webhook disabled: only mail notifications reach the spool")
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:               logger,
		Port:                 cfg.HTTPServer.Port,
		Mode:                 cfg.HTTPServer.Mode,
		Environment:          cfg.Environment.Name,
		ReadyCheck:           spoolWritable(cfg.Tagger.SpoolDir),
		GerritWebhookHandler: gerritHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// spoolWritable reports whether new entries can be created in dir.
func spoolWritable(dir string) func() error {
	return func() error {
		f, err := os.CreateTemp(dir, ".ready-*")
		if err != nil {
			return fmt.Errorf("spool not writable: %w", err)
		}
		name := f.Name()
		f.Close()
		return os.Remove(name)
	}
}
