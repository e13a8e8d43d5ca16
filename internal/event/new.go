package event

import (
	"release-tagger/internal/branch"
	"release-tagger/internal/watchlist"
	pkgLog "release-tagger/pkg/log"
)

type usecase struct {
	watchlist watchlist.UseCase
	resolver  branch.Resolver
	cfg       Config
	l         pkgLog.Logger
}

func New(wl watchlist.UseCase, resolver branch.Resolver, cfg Config, l pkgLog.Logger) UseCase {
	return &usecase{
		watchlist: wl,
		resolver:  resolver,
		cfg:       cfg,
		l:         l,
	}
}
