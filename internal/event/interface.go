package event

import (
	"context"

	"release-tagger/internal/model"
)

type UseCase interface {
	// Normalize turns one notification into an Action or a Skip. The error is
	// reserved for failures that must stop the run, such as an unresolvable master.
	Normalize(ctx context.Context, n model.Notification) (model.Result, error)
}
