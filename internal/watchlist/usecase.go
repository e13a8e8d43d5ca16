package watchlist

import (
	"context"
	"fmt"
)

func (uc *usecase) Watched(ctx context.Context) (map[string]struct{}, error) {
	if watched, ok := uc.cache.Watched(); ok {
		return watched, nil
	}

	watched := make(map[string]struct{}, len(uc.cfg.Projects))
	for _, p := range uc.cfg.Projects {
		watched[p] = struct{}{}
	}

	for _, prefix := range uc.cfg.Prefixes {
		projects, err := uc.repo.ListProjects(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects under %q: %w", prefix, err)
		}
		for _, p := range projects {
			watched[p] = struct{}{}
		}
	}

	uc.l.Infof(ctx, "watchlist: watching %d projects", len(watched))
	uc.cache.SetWatched(watched)
	return watched, nil
}

func (uc *usecase) IsWatched(ctx context.Context, project string) (bool, error) {
	watched, err := uc.Watched(ctx)
	if err != nil {
		return false, err
	}
	_, ok := watched[project]
	return ok, nil
}
