package reconcile

import (
	"release-tagger/internal/runcache"
	"release-tagger/internal/tracker/repository"
	pkgLog "release-tagger/pkg/log"
)

type usecase struct {
	repo  repository.Repository
	cache *runcache.Cache
	cfg   Config
	l     pkgLog.Logger
}

func New(repo repository.Repository, cache *runcache.Cache, cfg Config, l pkgLog.Logger) UseCase {
	return &usecase{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		l:     l,
	}
}
