package branch

import (
	"release-tagger/internal/runcache"
	"release-tagger/internal/sourcecontrol/repository"
	pkgLog "release-tagger/pkg/log"
)

type resolver struct {
	repo  repository.Repository
	cache *runcache.Cache
	cfg   Config
	l     pkgLog.Logger
}

// New creates a Resolver whose lookups live as long as cache.
func New(repo repository.Repository, cache *runcache.Cache, cfg Config, l pkgLog.Logger) Resolver {
	return &resolver{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		l:     l,
	}
}
