package log_test

import (
	"context"
	"testing"

	"release-tagger/pkg/log"
)

func TestRunID(t *testing.T) {
	ctx := context.Background()
	if got := log.RunID(ctx); got != "" {
		t.Errorf("expected empty run id, got %q", got)
	}

	ctx = log.WithRunID(ctx, "run-1")
	if got := log.RunID(ctx); got != "run-1" {
		t.Errorf("expected run-1, got %q", got)
	}
}

func TestInit(t *testing.T) {
	l := log.Init(log.ZapConfig{Level: "error", Mode: log.ModeProduction, Encoding: log.EncodingJSON})
	if l == nil {
		t.Fatal("expected logger")
	}
	// Below the configured level, must not panic or write.
	l.Infof(log.WithRunID(context.Background(), "run-2"), "ignored %d", 1)
}
