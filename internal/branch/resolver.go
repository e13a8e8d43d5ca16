package branch

import (
	"context"
	"fmt"
	"strings"

	"release-tagger/internal/model"
	"release-tagger/internal/release"
)

func (r *resolver) NextBranches(ctx context.Context, project string) ([]string, error) {
	if next, ok := r.cache.NextBranches(project); ok {
		return next, nil
	}

	refs, err := r.repo.FetchBranches(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branches of %s: %w", project, err)
	}

	wmf, err := nextDeploymentBranch(refs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", project, err)
	}
	next := []string{wmf}

	if r.cfg.SuggestReleaseBranch && project == r.cfg.PrimaryProject {
		rel, err := nextReleaseBranch(refs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", project, err)
		}
		next = append(next, rel)
	}

	r.l.Infof(ctx, "branch resolver: master of %s resolves to %v", project, next)
	r.cache.SetNextBranches(project, next)
	return next, nil
}

// nextDeploymentBranch picks the newest refs/heads/wmf/* and increments it.
func nextDeploymentBranch(refs []model.BranchRef) (string, error) {
	prefix := headsPrefix + release.DeploymentBranchPrefix

	var (
		latest    string
		latestOrd release.Ordinal
		found     bool
	)
	for _, ref := range refs {
		if !strings.HasPrefix(ref.Ref, prefix) {
			continue
		}
		version := strings.TrimPrefix(ref.Ref, prefix)
		ord, ok := release.ParseOrdinal(version)
		if !ok {
			continue
		}
		if !found || ord > latestOrd {
			latest, latestOrd, found = version, ord, true
		}
	}
	if !found {
		return "", ErrNoDeploymentBranch
	}

	return release.NextDeploymentBranch(latest)
}

// nextReleaseBranch picks the newest refs/heads/RELx_y and increments y.
func nextReleaseBranch(refs []model.BranchRef) (string, error) {
	var (
		latest release.ReleaseBranch
		found  bool
	)
	for _, ref := range refs {
		rel, ok := release.ParseReleaseBranch(strings.TrimPrefix(ref.Ref, headsPrefix))
		if !ok || !strings.HasPrefix(ref.Ref, headsPrefix) {
			continue
		}
		if !found || latest.Less(rel) {
			latest, found = rel, true
		}
	}
	if !found {
		return "", ErrNoReleaseBranch
	}

	return latest.Next().String(), nil
}
