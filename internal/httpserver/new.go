package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	extractionHTTP "gtd-capture/internal/extraction/delivery/http"
	"gtd-capture/internal/middleware"
	"gtd-capture/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	mw                middleware.Middleware
	extractionHandler extractionHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	Middleware        middleware.Middleware
	ExtractionHandler extractionHTTP.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                 logger,
		gin:               gin.New(),
		port:              cfg.Port,
		mode:              cfg.Mode,
		environment:       cfg.Environment,
		mw:                cfg.Middleware,
		extractionHandler: cfg.ExtractionHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.extractionHandler == nil {
		return errors.New("extraction handler is required")
	}
	return nil
}
