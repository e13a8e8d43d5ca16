package runner

import (
	"release-tagger/internal/event"
	"release-tagger/internal/model"
	"release-tagger/internal/reconcile"
	"release-tagger/internal/watchlist"
)

type Config struct {
	LockFile  string
	CacheSize int
	Event     event.Config
	Watchlist watchlist.Config
	// SuggestReleaseBranch also tags primary project master merges with the next REL branch.
	SuggestReleaseBranch bool
	Reconcile            reconcile.Config
}

// Summary describes one batch pass.
type Summary struct {
	RunID   string
	Entries int
	Dropped []string // unusable spool entries, acked without processing
	Skipped []SkippedEntry
	Actions []model.Action
	Report  reconcile.Report
	Acked   bool
}

type SkippedEntry struct {
	Entry  string `json:"entry"`
	Reason string `json:"reason"`
}
