package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"release-tagger/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Readiness probe, e.g. spool directory access
	readyCheck func() error

	// Gerrit webhooks
	gerritWebhookHandler GerritWebhookHandler
}

// GerritWebhookHandler receives Gerrit events.
type GerritWebhookHandler interface {
	HandleGerritWebhook(c *gin.Context)
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	ReadyCheck func() error

	// Nil disables POST /webhook/gerrit.
	GerritWebhookHandler GerritWebhookHandler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                    logger,
		gin:                  gin.New(),
		port:                 cfg.Port,
		mode:                 cfg.Mode,
		environment:          cfg.Environment,
		readyCheck:           cfg.ReadyCheck,
		gerritWebhookHandler: cfg.GerritWebhookHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
