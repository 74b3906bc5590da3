// Command migrate prepares the configured record store: tables for
// PostgreSQL and SQLite, indexes for MongoDB.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/lucianli/cookbook-graphql/config"
	"github.com/lucianli/cookbook-graphql/internal/database"
	"github.com/lucianli/cookbook-graphql/internal/logging"
)

func main() {
	driver := flag.String("driver", "", "override STORE_DRIVER (mongo, postgres or sqlite)")
	flag.Parse()

	if *driver != "" {
		os.Setenv("STORE_DRIVER", *driver)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx := context.Background()

	// OpenStore migrates before returning
	store, err := database.OpenStore(ctx, cfg, logger.Slog())
	if err != nil {
		log.Fatalf("Failed to migrate record store: %v", err)
	}
	defer store.Close(ctx)

	logger.Info(ctx, "migration complete", "driver", cfg.StoreDriver)
}
