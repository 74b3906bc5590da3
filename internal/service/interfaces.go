package service

import (
	"context"

	"github.com/lucianli/cookbook-graphql/internal/model"
)

// ICatalogService defines the operations the query endpoint dispatches to
type ICatalogService interface {
	AllRecipes(ctx context.Context) ([]*model.Recipe, error)
	Recipe(ctx context.Context, id string) (*model.Recipe, error)
	UserPublishedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error)
	UserSavedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error)
	RecipesByDifficulty(ctx context.Context, ceiling int) ([]*model.Recipe, error)
	RecipesByCuisine(ctx context.Context, cuisine string) ([]*model.Recipe, error)
	RecipesByCookingTime(ctx context.Context, ceiling int) ([]*model.Recipe, error)
	UserByCredentials(ctx context.Context, username, password string) (*model.User, error)

	AddRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error)
	EditRecipeString(ctx context.Context, id, attribute, value string) (*model.Recipe, error)
	EditRecipeNumber(ctx context.Context, id, attribute string, value float64) (*model.Recipe, error)
	EditRecipeList(ctx context.Context, id, attribute string, value []string) (*model.Recipe, error)
	SaveRecipe(ctx context.Context, userID, recipeID string) (*model.User, error)
	DeleteRecipe(ctx context.Context, id string) (*model.Recipe, error)
	AddUser(ctx context.Context, in model.UserInput) (*model.User, error)
	EditUser(ctx context.Context, id, attribute, value string) (*model.User, error)
	DeleteUser(ctx context.Context, email, username, password string) (*model.User, error)
}
