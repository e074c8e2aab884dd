// Package server exposes the negotiation engine over HTTP: a JSON API for
// synchronous calls and an SSE stream for full orchestrations.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/averill/parley/internal/agents"
	"github.com/averill/parley/internal/notify"
	"github.com/averill/parley/internal/stream"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB       *gorm.DB       // nil disables persistence and the history API
	Port     int            // defaults to 8080
	Backend  agents.Backend // nil means the deterministic evaluators
	Pacer    stream.Pacer   // nil means demo pacing
	Notifier *notify.Notifier
	Out      io.Writer
}

// Server wires the negotiation engine to the HTTP handlers.
type Server struct {
	db       *gorm.DB
	backend  agents.Backend
	pacer    stream.Pacer
	notifier *notify.Notifier
}

// NewRouter builds the gin engine with all routes registered. Split from
// Start so tests can drive it with httptest.
func NewRouter(opts StartOpts) *gin.Engine {
	s := &Server{
		db:       opts.DB,
		backend:  opts.Backend,
		pacer:    opts.Pacer,
		notifier: opts.Notifier,
	}
	if s.backend == nil {
		s.backend = agents.Deterministic{}
	}
	if s.pacer == nil {
		s.pacer = stream.DemoPacer()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	s.registerRoutes(router)
	return router
}

// Start launches the API server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Port <= 0 {
		opts.Port = 8080
	}
	router := NewRouter(opts)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Parley API at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
