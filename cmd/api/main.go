package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucianli/cookbook-graphql/config"
	"github.com/lucianli/cookbook-graphql/internal/database"
	"github.com/lucianli/cookbook-graphql/internal/logging"
	"github.com/lucianli/cookbook-graphql/internal/middleware"
	"github.com/lucianli/cookbook-graphql/internal/server"
	"github.com/lucianli/cookbook-graphql/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	slogger := logger.Slog()

	ctx := context.Background()

	// Initialize record store
	store, err := database.OpenStore(ctx, cfg, slogger)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close(context.Background())

	// Rate limiting is optional
	var limiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL, slogger)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window: cfg.RateLimitWindow,
			Limit:  cfg.RateLimitRequests,
		}, slogger)
	}

	catalog := service.NewCatalogService(store, service.Policy{
		CascadeSavedRecipes: cfg.CascadeSavedRecipes,
	}, logger)

	srv, err := server.New(cfg, store, catalog, limiter, slogger)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			slogger.Error("server error", "error", err)
			return
		}
	case sig := <-quit:
		slogger.Info("received signal", "signal", sig.String())
	}

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slogger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogger.Error("server shutdown error", "error", err)
		return
	}
	slogger.Info("server stopped")
}
