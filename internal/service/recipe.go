package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

// AllRecipes returns every recipe in store order.
func (s *CatalogService) AllRecipes(ctx context.Context) ([]*model.Recipe, error) {
	return s.findRecipes(ctx, store.RecipeFilter{})
}

// Recipe retrieves a recipe by ID
func (s *CatalogService) Recipe(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// RecipesByDifficulty returns recipes with difficulty at most ceiling.
func (s *CatalogService) RecipesByDifficulty(ctx context.Context, ceiling int) ([]*model.Recipe, error) {
	return s.findRecipes(ctx, store.RecipeFilter{MaxDifficulty: &ceiling})
}

// RecipesByCuisine returns recipes whose cuisine matches exactly.
func (s *CatalogService) RecipesByCuisine(ctx context.Context, cuisine string) ([]*model.Recipe, error) {
	return s.findRecipes(ctx, store.RecipeFilter{Cuisine: &cuisine})
}

// RecipesByCookingTime returns recipes that take at most ceiling minutes.
func (s *CatalogService) RecipesByCookingTime(ctx context.Context, ceiling int) ([]*model.Recipe, error) {
	return s.findRecipes(ctx, store.RecipeFilter{MaxCookingTime: &ceiling})
}

func (s *CatalogService) findRecipes(ctx context.Context, filter store.RecipeFilter) ([]*model.Recipe, error) {
	recipes, err := s.recipes.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// AddRecipe creates a recipe and links it into its author's published set.
// The author is checked first so that a missing author never leaves an
// orphaned recipe behind. If the author disappears between the create and the
// link, the recipe stays orphaned and ErrAuthorNotFound is returned.
func (s *CatalogService) AddRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error) {
	if err := model.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.users.FindByID(ctx, in.AuthorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}

	recipe, err := s.recipes.Create(ctx, in.Recipe())
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	_, err = s.users.UpdateByID(ctx, in.AuthorID, store.Update{
		AddToSet: map[string]string{store.FieldPublishedRecipes: recipe.ID},
	})
	if err != nil {
		s.log.Error(ctx, "recipe created but not linked to author",
			"recipe_id", recipe.ID, "author_id", in.AuthorID, "error", err)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to link recipe to author: %w", err)
	}

	s.log.Info(ctx, "recipe published", "recipe_id", recipe.ID, "author_id", in.AuthorID)
	return recipe, nil
}

// DeleteRecipe removes a recipe and returns it as it was. Reference sets
// pointing at it are not retracted; readers skip dangling ids.
func (s *CatalogService) DeleteRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := s.recipes.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.log.Info(ctx, "recipe deleted", "recipe_id", id)
	return recipe, nil
}

// EditRecipeString overwrites one text field of a recipe.
func (s *CatalogService) EditRecipeString(ctx context.Context, id, attribute, value string) (*model.Recipe, error) {
	return s.editor.EditRecipeString(ctx, id, attribute, value)
}

// EditRecipeNumber overwrites one numeric field of a recipe.
func (s *CatalogService) EditRecipeNumber(ctx context.Context, id, attribute string, value float64) (*model.Recipe, error) {
	return s.editor.EditRecipeNumber(ctx, id, attribute, value)
}

// EditRecipeList overwrites one list field of a recipe.
func (s *CatalogService) EditRecipeList(ctx context.Context, id, attribute string, value []string) (*model.Recipe, error) {
	return s.editor.EditRecipeList(ctx, id, attribute, value)
}
