// Package store defines the record store the catalog is built on: one
// collection of recipes and one of users, each supporting create, find by id,
// filtered find, update by id and delete by id. Every operation is atomic for
// a single record; nothing here spans records.
//
// Implementations live in subpackages (gormstore, mongostore).
package store

import (
	"context"
	"errors"

	"github.com/lucianli/cookbook-graphql/internal/model"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned when an id cannot be represented by the backend.
	ErrInvalidID = errors.New("invalid record id")
	// ErrDuplicate is returned when a create violates a unique field.
	ErrDuplicate = errors.New("duplicate record")
)

// Document field names. Updates address fields by these names regardless of
// how the backend lays them out.
const (
	FieldID           = "_id"
	FieldTitle        = "title"
	FieldAuthorID     = "authorId"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
	FieldImageURL     = "imageUrl"
	FieldRating       = "rating"
	FieldDifficulty   = "difficulty"
	FieldCuisine      = "cuisine"
	FieldCookingTime  = "cookingTime"
	FieldDateCreated  = "dateCreated"
	FieldDateModified = "dateModified"

	FieldEmail            = "email"
	FieldUsername         = "username"
	FieldPassword         = "password"
	FieldPublishedRecipes = "publishedRecipes"
	FieldSavedRecipes     = "savedRecipes"
)

// Update describes a modification of a single record.
//
// Set overwrites each named field with the given value. Values are string,
// *string, int, float64, *float64 or []string; reference-set fields take a
// []string of ids. AddToSet adds one id to each named reference set, leaving
// the set untouched when the id is already present.
type Update struct {
	Set      map[string]any
	AddToSet map[string]string
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return len(u.Set) == 0 && len(u.AddToSet) == 0
}

// RecipeFilter selects recipes. Zero-valued fields do not constrain the
// result; a zero filter matches every recipe.
type RecipeFilter struct {
	IDs            []string
	MaxDifficulty  *int
	Cuisine        *string
	MaxCookingTime *int
}

// UserFilter selects users by exact matches on the set fields.
type UserFilter struct {
	Email    *string
	Username *string
	Password *string
}

// RecipeStore is the recipe collection.
type RecipeStore interface {
	Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	FindByID(ctx context.Context, id string) (*model.Recipe, error)
	Find(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error)
	UpdateByID(ctx context.Context, id string, update Update) (*model.Recipe, error)
	DeleteByID(ctx context.Context, id string) (*model.Recipe, error)
}

// UserStore is the user collection.
type UserStore interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Find(ctx context.Context, filter UserFilter) ([]*model.User, error)
	UpdateByID(ctx context.Context, id string, update Update) (*model.User, error)
	DeleteByID(ctx context.Context, id string) (*model.User, error)
}

// Store bundles both collections behind one connection.
type Store interface {
	Recipes() RecipeStore
	Users() UserStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
