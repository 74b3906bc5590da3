package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
)

func (r *Resolver) AllRecipes(ctx context.Context) (*[]*recipeResolver, error) {
	recipes, err := r.svc.AllRecipes(ctx)
	if err != nil {
		return nil, r.fail(ctx, "allRecipes", err)
	}
	return recipeList(recipes), nil
}

func (r *Resolver) Recipe(ctx context.Context, args struct{ ID graphql.ID }) (*recipeResolver, error) {
	found, err := r.svc.Recipe(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail(ctx, "recipe", err)
	}
	return recipe(found), nil
}

func (r *Resolver) UserPublishedRecipes(ctx context.Context, args struct{ UserID graphql.ID }) (*[]*recipeResolver, error) {
	recipes, err := r.svc.UserPublishedRecipes(ctx, string(args.UserID))
	if err != nil {
		return nil, r.fail(ctx, "userPublishedRecipes", err)
	}
	return recipeList(recipes), nil
}

func (r *Resolver) UserSavedRecipes(ctx context.Context, args struct{ UserID graphql.ID }) (*[]*recipeResolver, error) {
	recipes, err := r.svc.UserSavedRecipes(ctx, string(args.UserID))
	if err != nil {
		return nil, r.fail(ctx, "userSavedRecipes", err)
	}
	return recipeList(recipes), nil
}

func (r *Resolver) RecipesByDifficulty(ctx context.Context, args struct{ DifficultyLevel int32 }) (*[]*recipeResolver, error) {
	recipes, err := r.svc.RecipesByDifficulty(ctx, int(args.DifficultyLevel))
	if err != nil {
		return nil, r.fail(ctx, "recipesByDifficulty", err)
	}
	return recipeList(recipes), nil
}

func (r *Resolver) RecipesByCuisine(ctx context.Context, args struct{ CuisineType string }) (*[]*recipeResolver, error) {
	recipes, err := r.svc.RecipesByCuisine(ctx, args.CuisineType)
	if err != nil {
		return nil, r.fail(ctx, "recipesByCuisine", err)
	}
	return recipeList(recipes), nil
}

func (r *Resolver) RecipesByCookingTime(ctx context.Context, args struct{ CookingTime int32 }) (*[]*recipeResolver, error) {
	recipes, err := r.svc.RecipesByCookingTime(ctx, int(args.CookingTime))
	if err != nil {
		return nil, r.fail(ctx, "recipesByCookingTime", err)
	}
	return recipeList(recipes), nil
}

// User looks a user up by username and password.
func (r *Resolver) User(ctx context.Context, args struct {
	Username string
	Password string
}) (*userResolver, error) {
	found, err := r.svc.UserByCredentials(ctx, args.Username, args.Password)
	if err != nil {
		return nil, r.fail(ctx, "user", err)
	}
	return user(found), nil
}
