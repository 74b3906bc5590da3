// Package gormstore implements the record store on a relational database
// through gorm. PostgreSQL is used in deployments and SQLite in tests.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lucianli/cookbook-graphql/internal/store"
)

// Store is a gorm-backed store.Store.
type Store struct {
	db      *gorm.DB
	recipes *RecipeStore
	users   *UserStore
}

var _ store.Store = (*Store)(nil)

// New wraps an open gorm connection. Call Migrate before first use.
func New(db *gorm.DB) *Store {
	return &Store{
		db:      db,
		recipes: &RecipeStore{db: db},
		users:   &UserStore{db: db},
	}
}

// Migrate creates or updates the tables backing both collections.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&recipeRow{}, &userRow{}, &recipeRefRow{}); err != nil {
		return fmt.Errorf("failed to migrate record store: %w", err)
	}
	return nil
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Recipes() store.RecipeStore {
	return s.recipes
}

func (s *Store) Users() store.UserStore {
	return s.users
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	default:
		return err
	}
}
