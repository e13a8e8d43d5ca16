package reconcile

import (
	"context"
	"errors"
	"fmt"

	"release-tagger/internal/model"
	"release-tagger/internal/tracker"
)

func (uc *usecase) Reconcile(ctx context.Context, actions []model.Action) (Report, error) {
	var report Report

	groups := groupByTask(actions)
	if len(groups) == 0 {
		return report, nil
	}

	// Every slug is resolved before the first write so an unknown slug leaves
	// the tracker untouched.
	var all []model.TagSlug
	for _, g := range groups {
		all = append(all, g.slugs...)
	}
	if err := uc.resolveTags(ctx, all); err != nil {
		return report, err
	}

	var failures []error
	for _, g := range groups {
		update, changed, failure := uc.reconcileTask(ctx, g)
		switch {
		case failure != nil:
			uc.l.Errorf(ctx, "reconcile: %v", failure)
			report.Failures = append(report.Failures, failure)
			failures = append(failures, failure)
		case changed:
			report.Updated = append(report.Updated, update)
		default:
			report.Unchanged = append(report.Unchanged, g.task)
		}
	}

	uc.l.Infof(ctx, "reconcile: %d updated, %d unchanged, %d failed",
		len(report.Updated), len(report.Unchanged), len(report.Failures))

	if len(failures) > 0 {
		return report, errors.Join(append([]error{ErrTaskAccess}, failures...)...)
	}
	return report, nil
}

func (uc *usecase) resolveTags(ctx context.Context, slugs []model.TagSlug) error {
	missing := uc.cache.MissingTags(slugs)
	if len(missing) == 0 {
		return nil
	}

	ids, err := uc.repo.ResolveTagIdentifiers(ctx, missing)
	if err != nil {
		if errors.Is(err, tracker.ErrUnknownSlug) {
			return fmt.Errorf("%w: %w", ErrUnknownSlug, err)
		}
		return fmt.Errorf("failed to resolve tags: %w", err)
	}
	for _, slug := range missing {
		id, ok := ids[slug]
		if !ok {
			return fmt.Errorf("%w: no tag for %s", ErrUnknownSlug, slug)
		}
		uc.cache.SetTag(slug, id)
	}
	return nil
}

func (uc *usecase) reconcileTask(ctx context.Context, g taskGroup) (TaskUpdate, bool, *TaskFailure) {
	if len(g.slugs) == 0 {
		return TaskUpdate{}, false, nil
	}

	wanted := make([]model.TagIdentifier, 0, len(g.slugs))
	for _, slug := range g.slugs {
		id, ok := uc.cache.Tag(slug)
		if !ok {
			return TaskUpdate{}, false, &TaskFailure{
				Task: g.task,
				Tags: wanted,
				Err:  fmt.Errorf("%w: no tag for %s", ErrUnknownSlug, slug),
			}
		}
		wanted = append(wanted, id)
	}

	state, err := uc.repo.FetchTaskState(ctx, g.task)
	if err != nil {
		return TaskUpdate{}, false, &TaskFailure{Task: g.task, Tags: wanted, Err: err}
	}

	desired := append([]model.TagIdentifier(nil), state.Tags...)
	var added []model.TagSlug
	for i, id := range wanted {
		if containsTag(desired, id) {
			continue
		}
		desired = append(desired, id)
		added = append(added, g.slugs[i])
	}
	if len(added) == 0 {
		uc.l.Debugf(ctx, "reconcile: %s already tagged", g.task)
		return TaskUpdate{}, false, nil
	}

	update := TaskUpdate{Task: g.task, Added: added, Tags: desired}
	if uc.cfg.DryRun {
		uc.l.Infof(ctx, "reconcile: dry-run, would tag %s with %v", g.task, added)
		return update, true, nil
	}

	if err := uc.repo.UpdateTaskTags(ctx, g.task, desired); err != nil {
		return TaskUpdate{}, false, &TaskFailure{Task: g.task, Tags: desired, Err: err}
	}
	uc.l.Infof(ctx, "reconcile: tagged %s with %v", g.task, added)
	return update, true, nil
}

// groupByTask keeps the first-seen order of tasks and slugs, dropping
// duplicate slugs within a task.
func groupByTask(actions []model.Action) []taskGroup {
	index := make(map[model.TaskRef]int)
	var groups []taskGroup
	for _, a := range actions {
		i, ok := index[a.Task]
		if !ok {
			i = len(groups)
			index[a.Task] = i
			groups = append(groups, taskGroup{task: a.Task})
		}
		for _, s := range a.Slugs {
			if !containsSlug(groups[i].slugs, s) {
				groups[i].slugs = append(groups[i].slugs, s)
			}
		}
	}
	return groups
}

func containsSlug(slugs []model.TagSlug, s model.TagSlug) bool {
	for _, v := range slugs {
		if v == s {
			return true
		}
	}
	return false
}

func containsTag(tags []model.TagIdentifier, id model.TagIdentifier) bool {
	for _, v := range tags {
		if v == id {
			return true
		}
	}
	return false
}
