package reconcile

import (
	"errors"
	"fmt"

	"release-tagger/internal/model"
)

var (
	ErrUnknownSlug = errors.New("tag slug could not be resolved")
	ErrTaskAccess  = errors.New("one or more tasks could not be reconciled")
)

// TaskFailure records a task whose state could not be read or written.
type TaskFailure struct {
	Task model.TaskRef
	Tags []model.TagIdentifier
	Err  error
}

func (e *TaskFailure) Error() string {
	return fmt.Sprintf("%s (tags %v): %v", e.Task, e.Tags, e.Err)
}

func (e *TaskFailure) Unwrap() error {
	return e.Err
}
