package reconcile

import "release-tagger/internal/model"

type Config struct {
	// DryRun computes the report without writing to the tracker.
	DryRun bool
}

// Report summarizes one reconciliation pass.
type Report struct {
	Updated   []TaskUpdate
	Unchanged []model.TaskRef
	Failures  []*TaskFailure
}

// TaskUpdate is the tag set written (or, in dry-run, that would be written).
type TaskUpdate struct {
	Task  model.TaskRef
	Added []model.TagSlug
	Tags  []model.TagIdentifier
}

// taskGroup collects the slugs every action of a task asks for.
type taskGroup struct {
	task  model.TaskRef
	slugs []model.TagSlug
}
