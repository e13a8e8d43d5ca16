package branch

import "context"

type Resolver interface {
	// NextBranches returns the branches a change merged on master of project
	// will ship in: the next wmf branch, plus the next REL branch for the
	// primary project when release suggestions are enabled.
	NextBranches(ctx context.Context, project string) ([]string, error)
}
