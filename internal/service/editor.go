package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

// setter checks a new attribute value and returns what gets stored.
type setter[T any] func(T) (any, error)

// attributes maps each editable field name to its setter. Names missing from
// the map, including ids and reference sets, cannot be edited.
type attributes[T any] map[string]setter[T]

func (a attributes[T]) value(name string, v T) (any, error) {
	set, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	stored, err := set(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %v", ErrInvalidAttribute, name, err)
	}
	return stored, nil
}

func text(required bool) setter[string] {
	return func(v string) (any, error) {
		if required && v == "" {
			return nil, errors.New("must not be empty")
		}
		return v, nil
	}
}

func integer(lo, hi float64) setter[float64] {
	return func(v float64) (any, error) {
		if v != math.Trunc(v) {
			return nil, errors.New("must be a whole number")
		}
		if v < lo || v > hi {
			return nil, fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return int(v), nil
	}
}

func number(lo, hi float64) setter[float64] {
	return func(v float64) (any, error) {
		if math.IsNaN(v) || v < lo || v > hi {
			return nil, fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return v, nil
	}
}

func list(v []string) (any, error) {
	if len(v) == 0 {
		return nil, errors.New("must not be empty")
	}
	return append([]string(nil), v...), nil
}

var (
	recipeStrings = attributes[string]{
		store.FieldTitle:        text(true),
		store.FieldImageURL:     text(false),
		store.FieldCuisine:      text(true),
		store.FieldDateCreated:  text(true),
		store.FieldDateModified: text(true),
	}
	recipeNumbers = attributes[float64]{
		store.FieldDifficulty:  integer(0, 5),
		store.FieldCookingTime: integer(0, math.MaxInt32),
		store.FieldRating:      number(0, 5),
	}
	recipeLists = attributes[[]string]{
		store.FieldIngredients:  list,
		store.FieldInstructions: list,
	}
	userStrings = attributes[string]{
		store.FieldEmail:    text(true),
		store.FieldUsername: text(true),
		store.FieldPassword: text(true),
	}
)

// AttributeEditor overwrites a single named field of a recipe or user. Each
// edit is one atomic single-field update; no other field changes, and
// dateModified is left to the caller.
type AttributeEditor struct {
	recipes store.RecipeStore
	users   store.UserStore
}

func NewAttributeEditor(recipes store.RecipeStore, users store.UserStore) *AttributeEditor {
	return &AttributeEditor{recipes: recipes, users: users}
}

func (e *AttributeEditor) EditRecipeString(ctx context.Context, id, attribute, value string) (*model.Recipe, error) {
	stored, err := recipeStrings.value(attribute, value)
	if err != nil {
		return nil, err
	}
	return e.updateRecipe(ctx, id, attribute, stored)
}

func (e *AttributeEditor) EditRecipeNumber(ctx context.Context, id, attribute string, value float64) (*model.Recipe, error) {
	stored, err := recipeNumbers.value(attribute, value)
	if err != nil {
		return nil, err
	}
	return e.updateRecipe(ctx, id, attribute, stored)
}

func (e *AttributeEditor) EditRecipeList(ctx context.Context, id, attribute string, value []string) (*model.Recipe, error) {
	stored, err := recipeLists.value(attribute, value)
	if err != nil {
		return nil, err
	}
	return e.updateRecipe(ctx, id, attribute, stored)
}

func (e *AttributeEditor) EditUser(ctx context.Context, id, attribute, value string) (*model.User, error) {
	stored, err := userStrings.value(attribute, value)
	if err != nil {
		return nil, err
	}

	user, err := e.users.UpdateByID(ctx, id, store.Update{Set: map[string]any{attribute: stored}})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, store.ErrDuplicate) && attribute == store.FieldEmail:
			return nil, ErrEmailTaken
		case errors.Is(err, store.ErrDuplicate):
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (e *AttributeEditor) updateRecipe(ctx context.Context, id, attribute string, value any) (*model.Recipe, error) {
	recipe, err := e.recipes.UpdateByID(ctx, id, store.Update{Set: map[string]any{attribute: value}})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}
