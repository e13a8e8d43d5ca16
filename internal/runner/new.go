package runner

import (
	"release-tagger/internal/spool"
	scRepo "release-tagger/internal/sourcecontrol/repository"
	trRepo "release-tagger/internal/tracker/repository"
	pkgLog "release-tagger/pkg/log"
)

type implRunner struct {
	sourceControl scRepo.Repository
	tracker       trRepo.Repository
	spool         spool.Spool
	notifier      Notifier
	cfg           Config
	l             pkgLog.Logger
}

// New creates a Runner. notifier may be nil.
func New(sourceControl scRepo.Repository, tracker trRepo.Repository, sp spool.Spool, notifier Notifier, cfg Config, l pkgLog.Logger) Runner {
	return &implRunner{
		sourceControl: sourceControl,
		tracker:       tracker,
		spool:         sp,
		notifier:      notifier,
		cfg:           cfg,
		l:             l,
	}
}
