package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
)

type editArgs[T any] struct {
	ID             graphql.ID
	AttributeName  string
	AttributeValue T
}

func (r *Resolver) AddRecipe(ctx context.Context, args struct{ RecipeToAdd recipeInput }) (*recipeResolver, error) {
	created, err := r.svc.AddRecipe(ctx, args.RecipeToAdd.model())
	if err != nil {
		return nil, r.fail(ctx, "addRecipe", err)
	}
	return recipe(created), nil
}

func (r *Resolver) EditRecipeStringAttr(ctx context.Context, args editArgs[string]) (*recipeResolver, error) {
	updated, err := r.svc.EditRecipeString(ctx, string(args.ID), args.AttributeName, args.AttributeValue)
	if err != nil {
		return nil, r.fail(ctx, "editRecipeStringAttr", err)
	}
	return recipe(updated), nil
}

func (r *Resolver) EditRecipeNumAttr(ctx context.Context, args editArgs[float64]) (*recipeResolver, error) {
	updated, err := r.svc.EditRecipeNumber(ctx, string(args.ID), args.AttributeName, args.AttributeValue)
	if err != nil {
		return nil, r.fail(ctx, "editRecipeNumAttr", err)
	}
	return recipe(updated), nil
}

func (r *Resolver) EditRecipeListAttr(ctx context.Context, args editArgs[[]string]) (*recipeResolver, error) {
	updated, err := r.svc.EditRecipeList(ctx, string(args.ID), args.AttributeName, args.AttributeValue)
	if err != nil {
		return nil, r.fail(ctx, "editRecipeListAttr", err)
	}
	return recipe(updated), nil
}

func (r *Resolver) SaveRecipe(ctx context.Context, args struct {
	UserID   graphql.ID
	RecipeID graphql.ID
}) (*userResolver, error) {
	updated, err := r.svc.SaveRecipe(ctx, string(args.UserID), string(args.RecipeID))
	if err != nil {
		return nil, r.fail(ctx, "saveRecipe", err)
	}
	return user(updated), nil
}

func (r *Resolver) DeleteRecipe(ctx context.Context, args struct{ ID graphql.ID }) (*recipeResolver, error) {
	deleted, err := r.svc.DeleteRecipe(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail(ctx, "deleteRecipe", err)
	}
	return recipe(deleted), nil
}

func (r *Resolver) AddUser(ctx context.Context, args struct{ UserToAdd userInput }) (*userResolver, error) {
	created, err := r.svc.AddUser(ctx, args.UserToAdd.model())
	if err != nil {
		return nil, r.fail(ctx, "addUser", err)
	}
	return user(created), nil
}

func (r *Resolver) EditUser(ctx context.Context, args editArgs[string]) (*userResolver, error) {
	updated, err := r.svc.EditUser(ctx, string(args.ID), args.AttributeName, args.AttributeValue)
	if err != nil {
		return nil, r.fail(ctx, "editUser", err)
	}
	return user(updated), nil
}

// DeleteUser removes the user matching all three credentials and cascades to
// their recipes.
func (r *Resolver) DeleteUser(ctx context.Context, args struct {
	Email    string
	Username string
	Password string
}) (*userResolver, error) {
	deleted, err := r.svc.DeleteUser(ctx, args.Email, args.Username, args.Password)
	if err != nil {
		return nil, r.fail(ctx, "deleteUser", err)
	}
	return user(deleted), nil
}
