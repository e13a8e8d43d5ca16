package phabricator

import (
	"context"
	"errors"
	"fmt"

	"release-tagger/internal/model"
	"release-tagger/internal/tracker"
	"release-tagger/internal/tracker/repository"
	pkgLog "release-tagger/pkg/log"
)

// errBadTask is returned by maniphest.info for missing tasks and for tasks the bot may not see.
const errBadTask = "ERR_BAD_TASK"

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a Phabricator backed tracker repository.
func New(client *Client, l pkgLog.Logger) repository.Repository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) ResolveTagIdentifiers(ctx context.Context, slugs []model.TagSlug) (map[model.TagSlug]model.TagIdentifier, error) {
	if len(slugs) == 0 {
		return map[model.TagSlug]model.TagIdentifier{}, nil
	}

	query := make([]string, 0, len(slugs))
	for _, s := range slugs {
		query = append(query, string(s))
	}

	slugMap, err := r.client.ProjectQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve slugs %v: %w", query, err)
	}

	ids := make(map[model.TagSlug]model.TagIdentifier, len(slugs))
	for _, s := range slugs {
		phid, ok := slugMap[string(s)]
		if !ok || phid == "" {
			return nil, &tracker.UnknownSlugError{Slug: string(s)}
		}
		ids[s] = model.TagIdentifier(phid)
	}
	return ids, nil
}

func (r *implRepository) FetchTaskState(ctx context.Context, task model.TaskRef) (model.TaskState, error) {
	info, err := r.client.ManiphestInfo(ctx, int(task))
	if err != nil {
		var cErr *ConduitError
		if errors.As(err, &cErr) && cErr.Code == errBadTask {
			return model.TaskState{}, fmt.Errorf("%w: %s: %v", tracker.ErrTaskNotFound, task, err)
		}
		return model.TaskState{}, fmt.Errorf("failed to fetch %s: %w", task, err)
	}

	tags := make([]model.TagIdentifier, 0, len(info.ProjectPHIDs))
	for _, phid := range info.ProjectPHIDs {
		tags = append(tags, model.TagIdentifier(phid))
	}
	return model.TaskState{Task: task, Tags: tags}, nil
}

func (r *implRepository) UpdateTaskTags(ctx context.Context, task model.TaskRef, tags []model.TagIdentifier) error {
	phids := make([]string, 0, len(tags))
	for _, t := range tags {
		phids = append(phids, string(t))
	}

	if err := r.client.ManiphestUpdate(ctx, int(task), phids); err != nil {
		return fmt.Errorf("failed to update %s: %w", task, err)
	}
	r.l.Infof(ctx, "phabricator repository: %s now tagged %v", task, phids)
	return nil
}
