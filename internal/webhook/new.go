package webhook

import (
	"release-tagger/internal/spool"
	pkgLog "release-tagger/pkg/log"
)

type Handler struct {
	spool    spool.Spool
	security *SecurityValidator
	l        pkgLog.Logger
}

func NewHandler(sp spool.Spool, securityConfig SecurityConfig, l pkgLog.Logger) *Handler {
	return &Handler{
		spool:    sp,
		security: NewSecurityValidator(securityConfig),
		l:        l,
	}
}
