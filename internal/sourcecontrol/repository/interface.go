package repository

import (
	"context"

	"release-tagger/internal/model"
)

// Repository is read access to the source-control host.
type Repository interface {
	// FetchBranches returns every branch ref of project, e.g. "refs/heads/REL1_35".
	FetchBranches(ctx context.Context, project string) ([]model.BranchRef, error)
	// ListProjects returns the names of all projects starting with prefix.
	ListProjects(ctx context.Context, prefix string) ([]string, error)
}
