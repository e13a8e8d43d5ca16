package gerrit

import (
	"context"
	"sort"

	"release-tagger/internal/model"
	"release-tagger/internal/sourcecontrol/repository"
	pkgLog "release-tagger/pkg/log"
)

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a Gerrit backed source-control repository.
func New(client *Client, l pkgLog.Logger) repository.Repository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) FetchBranches(ctx context.Context, project string) ([]model.BranchRef, error) {
	branches, err := r.client.ListBranches(ctx, project)
	if err != nil {
		r.l.Errorf(ctx, "gerrit repository: %v", err)
		return nil, err
	}

	refs := make([]model.BranchRef, 0, len(branches))
	for _, b := range branches {
		refs = append(refs, model.BranchRef{Ref: b.Ref, Revision: b.Revision})
	}
	r.l.Debugf(ctx, "gerrit repository: %s has %d branches", project, len(refs))
	return refs, nil
}

func (r *implRepository) ListProjects(ctx context.Context, prefix string) ([]string, error) {
	projects, err := r.client.ListProjects(ctx, prefix)
	if err != nil {
		r.l.Errorf(ctx, "gerrit repository: %v", err)
		return nil, err
	}

	names := make([]string, 0, len(projects))
	for name, info := range projects {
		if info.State == "READ_ONLY" || info.State == "HIDDEN" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
