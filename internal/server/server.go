package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucianli/cookbook-graphql/config"
	"github.com/lucianli/cookbook-graphql/internal/graph"
	"github.com/lucianli/cookbook-graphql/internal/logging"
	"github.com/lucianli/cookbook-graphql/internal/middleware"
	"github.com/lucianli/cookbook-graphql/internal/router"
	"github.com/lucianli/cookbook-graphql/internal/service"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

const healthTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	store  store.Store
	logger *slog.Logger
}

// New wires the catalog service behind the GraphQL endpoint. limiter may be
// nil.
func New(cfg *config.Config, s store.Store, svc service.ICatalogService, limiter *middleware.RateLimiter, logger *slog.Logger) (*Server, error) {
	handler, err := graph.NewHandler(graph.NewResolver(svc, logging.NewSlogLogger(logger)))
	if err != nil {
		return nil, err
	}

	srv := &Server{store: s, logger: logger}
	srv.router = router.SetupRouter(router.Deps{
		Logger:      logger,
		GraphQL:     handler,
		Health:      srv.health,
		CORSOrigins: cfg.CORSAllowedOrigins,
		RateLimiter: limiter,
	})
	srv.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv, nil
}

// Handler exposes the routes, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "record store unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
