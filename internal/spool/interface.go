package spool

import (
	"context"

	"release-tagger/internal/model"
)

// Spool is the directory backlog of merge notifications.
type Spool interface {
	// List reads every pending entry in filename order. Entries that cannot be
	// used carry Err and are still returned so they can be acked.
	List(ctx context.Context) ([]Entry, error)
	// Ack removes processed entries.
	Ack(ctx context.Context, entries ...Entry) error
	// Write spools a notification and returns the entry name.
	Write(ctx context.Context, n model.Notification) (string, error)
}
