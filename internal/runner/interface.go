package runner

import (
	"context"

	"release-tagger/internal/model"
)

// Runner drives batch passes over the notification spool.
type Runner interface {
	// Run performs one pass: normalize every spooled notification, reconcile
	// the resulting actions and ack the spool.
	Run(ctx context.Context) (Summary, error)
	// Normalize evaluates a single notification with a fresh run cache.
	Normalize(ctx context.Context, n model.Notification) (model.Result, error)
}

// Notifier alerts operators when a run fails.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
