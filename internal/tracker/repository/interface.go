package repository

import (
	"context"

	"release-tagger/internal/model"
)

// Repository is the issue tracker as seen by the reconciliation engine.
type Repository interface {
	// ResolveTagIdentifiers maps every slug to its tag identifier. It fails with
	// tracker.ErrUnknownSlug if any slug is not registered.
	ResolveTagIdentifiers(ctx context.Context, slugs []model.TagSlug) (map[model.TagSlug]model.TagIdentifier, error)
	// FetchTaskState fails with tracker.ErrTaskNotFound for missing or restricted tasks.
	FetchTaskState(ctx context.Context, task model.TaskRef) (model.TaskState, error)
	// UpdateTaskTags replaces the task's tag set with tags.
	UpdateTaskTags(ctx context.Context, task model.TaskRef, tags []model.TagIdentifier) error
}
