package event

import (
	"context"
	"fmt"
	"strings"

	"release-tagger/internal/branch"
	"release-tagger/internal/model"
	"release-tagger/internal/release"
)

func (uc *usecase) Normalize(ctx context.Context, n model.Notification) (model.Result, error) {
	project := n.Field(ProjectFields...)

	watched, err := uc.watchlist.IsWatched(ctx, project)
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to load watch list: %w", err)
	}
	if !watched {
		return model.NewSkipResult(fmt.Sprintf(SkipNotWatchedFormat, project)), nil
	}

	if n.Field(MessageTypeFields...) != MessageTypeMerged {
		return model.NewSkipResult(SkipNotMerged), nil
	}

	bug := n.Field(BugFields...)
	if strings.TrimSpace(bug) == "" {
		return model.NewSkipResult(SkipNoTask), nil
	}

	task, err := ParseTaskRef(bug)
	if err != nil {
		return model.NewSkipResult(err.Error()), nil
	}

	notified := n.Field(BranchFields...)
	branches := []string{notified}
	if notified == branch.MasterBranch {
		branches, err = uc.resolver.NextBranches(ctx, project)
		if err != nil {
			return model.Result{}, err
		}
	}

	// REL branches of other projects may not end up in the release tarball.
	if project != uc.cfg.PrimaryProject {
		kept := make([]string, 0, len(branches))
		for _, b := range branches {
			if !release.IsReleaseBranch(b) {
				kept = append(kept, b)
			}
		}
		branches = kept
	}

	action := model.Action{
		URL:    uc.changeURL(n),
		Branch: notified,
		Task:   task,
		Slugs:  release.Slugify(branches),
	}
	uc.l.Debugf(ctx, "event: %s on %s of %s -> %s %v", action.URL, notified, project, task, action.Slugs)
	return model.NewActionResult(action), nil
}

// changeURL prefers the URL Gerrit sends, "<https://gerrit/r/123>", and falls
// back to building it from the change number.
func (uc *usecase) changeURL(n model.Notification) string {
	if u := strings.Trim(strings.TrimSpace(n.Field(ChangeURLFields...)), "<>"); u != "" {
		return u
	}
	if num := n.Field(ChangeNumFields...); num != "" && uc.cfg.GerritURL != "" {
		return strings.TrimRight(uc.cfg.GerritURL, "/") + "/" + num
	}
	return ""
}
