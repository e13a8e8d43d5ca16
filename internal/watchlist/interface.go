package watchlist

import "context"

type UseCase interface {
	// Watched returns every project whose merges get tagged.
	Watched(ctx context.Context) (map[string]struct{}, error)
	// IsWatched reports whether project is in Watched.
	IsWatched(ctx context.Context, project string) (bool, error)
}
