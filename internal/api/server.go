package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/macrolens/backend/internal/engine"
	"github.com/macrolens/backend/internal/scheduler"
	"github.com/macrolens/backend/pkg/config"
	"github.com/macrolens/backend/pkg/database"
	"github.com/macrolens/backend/pkg/logger"
)

// Server is the read-only HTTP surface. It serves derived views; all
// writes happen in the scheduled jobs.
type Server struct {
	httpServer *http.Server
	engine     *engine.Engine
	scheduler  *scheduler.Scheduler
	db         *database.DB
	logger     *logger.Logger
}

// NewServer creates the API server.
func NewServer(cfg *config.Config, eng *engine.Engine, sched *scheduler.Scheduler, db *database.DB, log *logger.Logger) *Server {
	s := &Server{
		engine:    eng,
		scheduler: sched,
		db:        db,
		logger:    log,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      s.router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("API server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("API server shutting down")
	return s.httpServer.Shutdown(ctx)
}
