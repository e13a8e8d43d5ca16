package spool

import (
	"fmt"
	"os"

	pkgLog "release-tagger/pkg/log"
)

type implSpool struct {
	cfg Config
	l   pkgLog.Logger
}

// New opens the spool directory, creating it if needed.
func New(cfg Config, l pkgLog.Logger) (Spool, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create spool dir: %w", err)
	}
	return &implSpool{
		cfg: cfg,
		l:   l,
	}, nil
}
