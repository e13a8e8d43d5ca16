package watchlist

import (
	"release-tagger/internal/runcache"
	"release-tagger/internal/sourcecontrol/repository"
	pkgLog "release-tagger/pkg/log"
)

// Config lists the watched projects.
type Config struct {
	Projects []string // always watched
	Prefixes []string // every project below these is watched, e.g. "mediawiki/"
}

type usecase struct {
	repo  repository.Repository
	cache *runcache.Cache
	cfg   Config
	l     pkgLog.Logger
}

// New creates a watch list that is fetched at most once per cache.
func New(repo repository.Repository, cache *runcache.Cache, cfg Config, l pkgLog.Logger) UseCase {
	return &usecase{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		l:     l,
	}
}
