package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"release-tagger/internal/branch"
	"release-tagger/internal/event"
	"release-tagger/internal/model"
	"release-tagger/internal/reconcile"
	"release-tagger/internal/runcache"
	"release-tagger/internal/spool"
	"release-tagger/internal/watchlist"
	pkgLog "release-tagger/pkg/log"
)

func (r *implRunner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	ctx = pkgLog.WithRunID(ctx, summary.RunID)

	unlock, err := r.lock()
	if err != nil {
		return summary, err
	}
	defer unlock()

	err = r.run(ctx, &summary)
	if err != nil {
		r.l.Errorf(ctx, "runner: run failed: %v", err)
		r.notify(ctx, summary, err)
		return summary, err
	}

	r.l.Infof(ctx, "runner: %d entries, %d actions, %d skipped, %d dropped, %d tasks updated",
		summary.Entries, len(summary.Actions), len(summary.Skipped), len(summary.Dropped), len(summary.Report.Updated))
	return summary, nil
}

func (r *implRunner) run(ctx context.Context, summary *Summary) error {
	entries, err := r.spool.List(ctx)
	if err != nil {
		return err
	}
	summary.Entries = len(entries)
	if len(entries) == 0 {
		r.l.Debugf(ctx, "runner: spool is empty")
		return nil
	}

	normalizer, reconciler := r.pipeline(runcache.New(r.cfg.CacheSize))

	var usable, dropped []spool.Entry
	for _, entry := range entries {
		if entry.Err != nil {
			dropped = append(dropped, entry)
			summary.Dropped = append(summary.Dropped, entry.Name)
			continue
		}
		usable = append(usable, entry)

		res, err := normalizer.Normalize(ctx, entry.Notification)
		if err != nil {
			return fmt.Errorf("failed to normalize %s: %w", entry.Name, err)
		}
		if res.Skipped() {
			r.l.Infof(ctx, "runner: skip %s: %s", entry.Name, res.Skip.Reason)
			summary.Skipped = append(summary.Skipped, SkippedEntry{Entry: entry.Name, Reason: res.Skip.Reason})
			continue
		}
		r.l.Infof(ctx, "runner: %s -> %s on %s: %v", res.Action.URL, res.Action.Task, res.Action.Branch, res.Action.Slugs)
		summary.Actions = append(summary.Actions, *res.Action)
	}

	// Unusable entries never become usable, so they are dropped even if
	// reconciliation fails below.
	if err := r.spool.Ack(ctx, dropped...); err != nil {
		return err
	}

	summary.Report, err = reconciler.Reconcile(ctx, summary.Actions)
	if err != nil {
		return err
	}

	if r.cfg.Reconcile.DryRun {
		r.l.Infof(ctx, "runner: dry-run, spool left untouched")
		return nil
	}
	if err := r.spool.Ack(ctx, usable...); err != nil {
		return err
	}
	summary.Acked = true
	return nil
}

func (r *implRunner) Normalize(ctx context.Context, n model.Notification) (model.Result, error) {
	normalizer, _ := r.pipeline(runcache.New(r.cfg.CacheSize))
	return normalizer.Normalize(ctx, n)
}

// pipeline wires the per-run use cases around one cache.
func (r *implRunner) pipeline(cache *runcache.Cache) (event.UseCase, reconcile.UseCase) {
	wl := watchlist.New(r.sourceControl, cache, r.cfg.Watchlist, r.l)
	resolver := branch.New(r.sourceControl, cache, branch.Config{
		PrimaryProject:       r.cfg.Event.PrimaryProject,
		SuggestReleaseBranch: r.cfg.SuggestReleaseBranch,
	}, r.l)
	normalizer := event.New(wl, resolver, r.cfg.Event, r.l)
	reconciler := reconcile.New(r.tracker, cache, r.cfg.Reconcile, r.l)
	return normalizer, reconciler
}

// lock takes the run lock without waiting. Caller must defer unlock().
func (r *implRunner) lock() (func(), error) {
	if r.cfg.LockFile == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(r.cfg.LockFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating lock dir: %w", err)
	}
	fl := flock.New(r.cfg.LockFile)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock: %w", err)
	}
	if !locked {
		return nil, ErrRunInProgress
	}
	return func() { _ = fl.Unlock() }, nil
}

func (r *implRunner) notify(ctx context.Context, summary Summary, runErr error) {
	if r.notifier == nil || errors.Is(runErr, context.Canceled) {
		return
	}
	if err := r.notifier.Notify(ctx, FormatFailure(summary, runErr)); err != nil {
		r.l.Warnf(ctx, "runner: failed to notify operators: %v", err)
	}
}
