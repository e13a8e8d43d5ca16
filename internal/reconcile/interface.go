package reconcile

import (
	"context"

	"release-tagger/internal/model"
)

// UseCase applies the Actions of one batch to the issue tracker.
type UseCase interface {
	// Reconcile groups actions by task and adds the missing release tags.
	// Tasks already carrying every tag are left untouched.
	Reconcile(ctx context.Context, actions []model.Action) (Report, error)
}
