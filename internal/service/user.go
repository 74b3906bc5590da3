package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

// UserByCredentials returns the user whose username and password both match.
// A wrong password and an unknown username are reported the same way.
func (s *CatalogService) UserByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	users, err := s.users.Find(ctx, store.UserFilter{Username: &username, Password: &password})
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

// UserPublishedRecipes resolves the user's published set. Ids whose recipe
// no longer exists are dropped.
func (s *CatalogService) UserPublishedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error) {
	return s.userRecipes(ctx, userID, func(u *model.User) []string { return u.PublishedRecipes })
}

// UserSavedRecipes resolves the user's saved set. Ids whose recipe no longer
// exists are dropped.
func (s *CatalogService) UserSavedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error) {
	return s.userRecipes(ctx, userID, func(u *model.User) []string { return u.SavedRecipes })
}

func (s *CatalogService) userRecipes(ctx context.Context, userID string, refs func(*model.User) []string) ([]*model.Recipe, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ids := refs(user)
	if len(ids) == 0 {
		return []*model.Recipe{}, nil
	}
	return s.findRecipes(ctx, store.RecipeFilter{IDs: ids})
}

// AddUser creates a user with empty reference sets after checking that the
// username and the email are both unused, in that order.
func (s *CatalogService) AddUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	if err := model.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkUnique(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, in.User())
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost a race with a concurrent create
			if cerr := s.checkUnique(ctx, in.Username, in.Email); cerr != nil {
				return nil, cerr
			}
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info(ctx, "user created", "user_id", user.ID)
	return user, nil
}

func (s *CatalogService) checkUnique(ctx context.Context, username, email string) error {
	existing, err := s.users.Find(ctx, store.UserFilter{Username: &username})
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if len(existing) > 0 {
		return ErrUsernameTaken
	}

	existing, err = s.users.Find(ctx, store.UserFilter{Email: &email})
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if len(existing) > 0 {
		return ErrEmailTaken
	}
	return nil
}

// EditUser overwrites one text field of a user.
func (s *CatalogService) EditUser(ctx context.Context, id, attribute, value string) (*model.User, error) {
	return s.editor.EditUser(ctx, id, attribute, value)
}

// SaveRecipe adds recipeID to the user's saved set. Saving twice is a no-op.
// The recipe id is not checked for existence.
func (s *CatalogService) SaveRecipe(ctx context.Context, userID, recipeID string) (*model.User, error) {
	user, err := s.users.UpdateByID(ctx, userID, store.Update{
		AddToSet: map[string]string{store.FieldSavedRecipes: recipeID},
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, store.ErrInvalidID):
			return nil, fmt.Errorf("%w: malformed recipe id %q", ErrInvalidInput, recipeID)
		}
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return user, nil
}

// DeleteUser removes the user matching all three credentials together with
// every recipe in their published set and, under the default policy, every
// recipe in their saved set. Missing recipes are skipped. The returned
// snapshot has both reference sets emptied.
//
// The cascade is a sequence of single-record deletes; a failure part way
// through leaves the recipes deleted so far gone and the user in place.
func (s *CatalogService) DeleteUser(ctx context.Context, email, username, password string) (*model.User, error) {
	users, err := s.users.Find(ctx, store.UserFilter{Email: &email, Username: &username, Password: &password})
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	user := users[0]

	removed, err := s.deleteRecipes(ctx, user.PublishedRecipes)
	if err != nil {
		return nil, err
	}
	if err := s.clearReferences(ctx, user.ID, store.FieldPublishedRecipes); err != nil {
		return nil, err
	}

	if s.policy.CascadeSavedRecipes {
		n, err := s.deleteRecipes(ctx, user.SavedRecipes)
		if err != nil {
			return nil, err
		}
		removed += n
	}
	if err := s.clearReferences(ctx, user.ID, store.FieldSavedRecipes); err != nil {
		return nil, err
	}

	deleted, err := s.users.DeleteByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	s.log.Info(ctx, "user deleted", "user_id", user.ID, "recipes_deleted", removed)
	deleted.PublishedRecipes = []string{}
	deleted.SavedRecipes = []string{}
	return deleted, nil
}

func (s *CatalogService) deleteRecipes(ctx context.Context, ids []string) (int, error) {
	removed := 0
	for _, id := range ids {
		if _, err := s.recipes.DeleteByID(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.log.Warn(ctx, "cascade target already gone", "recipe_id", id)
				continue
			}
			return removed, fmt.Errorf("failed to delete recipe %s: %w", id, err)
		}
		removed++
	}
	return removed, nil
}

func (s *CatalogService) clearReferences(ctx context.Context, userID, field string) error {
	_, err := s.users.UpdateByID(ctx, userID, store.Update{
		Set: map[string]any{field: []string{}},
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to clear %s: %w", field, err)
	}
	return nil
}
