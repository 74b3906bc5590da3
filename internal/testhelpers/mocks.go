package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/service"
)

// MockCatalogService is a mock implementation of service.ICatalogService
type MockCatalogService struct {
	mock.Mock
}

var _ service.ICatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) recipe(args mock.Arguments) (*model.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockCatalogService) recipes(args mock.Arguments) ([]*model.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

func (m *MockCatalogService) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockCatalogService) AllRecipes(ctx context.Context) ([]*model.Recipe, error) {
	return m.recipes(m.Called(ctx))
}

func (m *MockCatalogService) Recipe(ctx context.Context, id string) (*model.Recipe, error) {
	return m.recipe(m.Called(ctx, id))
}

func (m *MockCatalogService) UserPublishedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error) {
	return m.recipes(m.Called(ctx, userID))
}

func (m *MockCatalogService) UserSavedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error) {
	return m.recipes(m.Called(ctx, userID))
}

func (m *MockCatalogService) RecipesByDifficulty(ctx context.Context, ceiling int) ([]*model.Recipe, error) {
	return m.recipes(m.Called(ctx, ceiling))
}

func (m *MockCatalogService) RecipesByCuisine(ctx context.Context, cuisine string) ([]*model.Recipe, error) {
	return m.recipes(m.Called(ctx, cuisine))
}

func (m *MockCatalogService) RecipesByCookingTime(ctx context.Context, ceiling int) ([]*model.Recipe, error) {
	return m.recipes(m.Called(ctx, ceiling))
}

func (m *MockCatalogService) UserByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	return m.user(m.Called(ctx, username, password))
}

func (m *MockCatalogService) AddRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error) {
	return m.recipe(m.Called(ctx, in))
}

func (m *MockCatalogService) EditRecipeString(ctx context.Context, id, attribute, value string) (*model.Recipe, error) {
	return m.recipe(m.Called(ctx, id, attribute, value))
}

func (m *MockCatalogService) EditRecipeNumber(ctx context.Context, id, attribute string, value float64) (*model.Recipe, error) {
	return m.recipe(m.Called(ctx, id, attribute, value))
}

func (m *MockCatalogService) EditRecipeList(ctx context.Context, id, attribute string, value []string) (*model.Recipe, error) {
	return m.recipe(m.Called(ctx, id, attribute, value))
}

func (m *MockCatalogService) SaveRecipe(ctx context.Context, userID, recipeID string) (*model.User, error) {
	return m.user(m.Called(ctx, userID, recipeID))
}

func (m *MockCatalogService) DeleteRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	return m.recipe(m.Called(ctx, id))
}

func (m *MockCatalogService) AddUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	return m.user(m.Called(ctx, in))
}

func (m *MockCatalogService) EditUser(ctx context.Context, id, attribute, value string) (*model.User, error) {
	return m.user(m.Called(ctx, id, attribute, value))
}

func (m *MockCatalogService) DeleteUser(ctx context.Context, email, username, password string) (*model.User, error) {
	return m.user(m.Called(ctx, email, username, password))
}
