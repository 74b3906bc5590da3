package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm/logger"

	"github.com/lucianli/cookbook-graphql/config"
	"github.com/lucianli/cookbook-graphql/internal/store"
	"github.com/lucianli/cookbook-graphql/internal/store/gormstore"
	"github.com/lucianli/cookbook-graphql/internal/store/mongostore"
)

// Migrate prepares the backing schema: tables for relational stores, indexes
// for MongoDB.
func Migrate(ctx context.Context, s store.Store) error {
	switch st := s.(type) {
	case *gormstore.Store:
		return st.Migrate(ctx)
	case *mongostore.Store:
		return st.EnsureIndexes(ctx)
	default:
		return nil
	}
}

// OpenStore connects the record store selected by cfg.StoreDriver and
// migrates it.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, error) {
	var s store.Store

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := NewMongo(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, err
		}
		s = mongostore.New(client, cfg.MongoDatabase)
	case config.DriverPostgres:
		db, err := NewPostgres(cfg, log)
		if err != nil {
			return nil, err
		}
		s = gormstore.New(db)
	case config.DriverSQLite:
		db, err := NewSQLite(cfg.SQLitePath, logger.Warn)
		if err != nil {
			return nil, err
		}
		s = gormstore.New(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if err := Migrate(ctx, s); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	log.Info("record store ready", "driver", cfg.StoreDriver)
	return s, nil
}
