// Package storetest holds the behavior every store.Store implementation must
// share. Backends run it from their own tests.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

func ptr[T any](v T) *T {
	return &v
}

func newUser(name string) *model.User {
	return &model.User{
		Email:            name + "@example.com",
		Username:         name,
		Password:         name + "-pw",
		PublishedRecipes: []string{},
		SavedRecipes:     []string{},
	}
}

func newRecipe(authorID, title, cuisine string, difficulty, cookingTime int) *model.Recipe {
	return &model.Recipe{
		Title:        title,
		AuthorID:     authorID,
		Ingredients:  []string{"salt", "water"},
		Instructions: []string{"boil"},
		Difficulty:   difficulty,
		Cuisine:      cuisine,
		CookingTime:  cookingTime,
		DateCreated:  "2024-01-01",
		DateModified: "2024-01-01",
	}
}

// Run exercises s through the store.Store contract. Each subtest gets a fresh
// store from newStore.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"RecipeCRUD", testRecipeCRUD},
		{"RecipeFilters", testRecipeFilters},
		{"RecipeMissing", testRecipeMissing},
		{"UserCRUD", testUserCRUD},
		{"UserFilters", testUserFilters},
		{"UserUnique", testUserUnique},
		{"AddToSetIdempotent", testAddToSetIdempotent},
		{"AddToSetConcurrent", testAddToSetConcurrent},
		{"ReplaceReferenceSet", testReplaceReferenceSet},
		{"UserMissing", testUserMissing},
		{"Ping", testPing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func testRecipeCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	author, err := s.Users().Create(ctx, newUser("alice"))
	require.NoError(t, err)

	in := newRecipe(author.ID, "Soup", "French", 2, 40)
	in.ImageURL = ptr("https://img/soup.png")
	in.Rating = ptr(4.5)

	created, err := s.Recipes().Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Soup", created.Title)
	assert.Equal(t, author.ID, created.AuthorID)

	found, err := s.Recipes().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
	assert.Equal(t, []string{"salt", "water"}, found.Ingredients)
	require.NotNil(t, found.ImageURL)
	assert.Equal(t, "https://img/soup.png", *found.ImageURL)
	require.NotNil(t, found.Rating)
	assert.Equal(t, 4.5, *found.Rating)

	updated, err := s.Recipes().UpdateByID(ctx, created.ID, store.Update{Set: map[string]any{
		store.FieldTitle:       "Stew",
		store.FieldDifficulty:  4,
		store.FieldIngredients: []string{"beef"},
		store.FieldRating:      3.0,
	}})
	require.NoError(t, err)
	assert.Equal(t, "Stew", updated.Title)
	assert.Equal(t, 4, updated.Difficulty)
	assert.Equal(t, []string{"beef"}, updated.Ingredients)
	assert.Equal(t, 3.0, *updated.Rating)
	assert.Equal(t, "French", updated.Cuisine)
	assert.Equal(t, 40, updated.CookingTime)
	assert.Equal(t, []string{"boil"}, updated.Instructions)

	deleted, err := s.Recipes().DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stew", deleted.Title)

	_, err = s.Recipes().FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testRecipeFilters(t *testing.T, s store.Store) {
	ctx := context.Background()
	author, err := s.Users().Create(ctx, newUser("bob"))
	require.NoError(t, err)

	easy, err := s.Recipes().Create(ctx, newRecipe(author.ID, "Toast", "British", 1, 5))
	require.NoError(t, err)
	mid, err := s.Recipes().Create(ctx, newRecipe(author.ID, "Pasta", "Italian", 3, 20))
	require.NoError(t, err)
	hard, err := s.Recipes().Create(ctx, newRecipe(author.ID, "Lasagne", "Italian", 5, 90))
	require.NoError(t, err)

	titles := func(recipes []*model.Recipe) []string {
		out := make([]string, len(recipes))
		for i, r := range recipes {
			out[i] = r.Title
		}
		return out
	}

	all, err := s.Recipes().Find(ctx, store.RecipeFilter{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Toast", "Pasta", "Lasagne"}, titles(all))

	got, err := s.Recipes().Find(ctx, store.RecipeFilter{MaxDifficulty: ptr(3)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Toast", "Pasta"}, titles(got))

	got, err = s.Recipes().Find(ctx, store.RecipeFilter{Cuisine: ptr("Italian")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Pasta", "Lasagne"}, titles(got))

	got, err = s.Recipes().Find(ctx, store.RecipeFilter{Cuisine: ptr("italian")})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Recipes().Find(ctx, store.RecipeFilter{MaxCookingTime: ptr(20)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Toast", "Pasta"}, titles(got))

	got, err = s.Recipes().Find(ctx, store.RecipeFilter{IDs: []string{easy.ID, hard.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Toast", "Lasagne"}, titles(got))

	_, err = s.Recipes().DeleteByID(ctx, mid.ID)
	require.NoError(t, err)
	got, err = s.Recipes().Find(ctx, store.RecipeFilter{IDs: []string{mid.ID, easy.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Toast"}, titles(got))
}

func testRecipeMissing(t *testing.T, s store.Store) {
	ctx := context.Background()
	author, err := s.Users().Create(ctx, newUser("carol"))
	require.NoError(t, err)
	r, err := s.Recipes().Create(ctx, newRecipe(author.ID, "Gone", "Thai", 1, 1))
	require.NoError(t, err)
	_, err = s.Recipes().DeleteByID(ctx, r.ID)
	require.NoError(t, err)

	_, err = s.Recipes().FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Recipes().UpdateByID(ctx, r.ID, store.Update{Set: map[string]any{store.FieldTitle: "x"}})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Recipes().DeleteByID(ctx, r.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testUserCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.Users().Create(ctx, newUser("dave"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, created.PublishedRecipes)
	assert.Empty(t, created.SavedRecipes)

	found, err := s.Users().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave@example.com", found.Email)
	assert.Equal(t, "dave", found.Username)
	assert.Equal(t, "dave-pw", found.Password)

	updated, err := s.Users().UpdateByID(ctx, created.ID, store.Update{Set: map[string]any{
		store.FieldEmail: "dave@new.example.com",
	}})
	require.NoError(t, err)
	assert.Equal(t, "dave@new.example.com", updated.Email)
	assert.Equal(t, "dave", updated.Username)

	deleted, err := s.Users().DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.Users().FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testUserFilters(t *testing.T, s store.Store) {
	ctx := context.Background()
	_, err := s.Users().Create(ctx, newUser("erin"))
	require.NoError(t, err)
	_, err = s.Users().Create(ctx, newUser("frank"))
	require.NoError(t, err)

	got, err := s.Users().Find(ctx, store.UserFilter{Username: ptr("erin"), Password: ptr("erin-pw")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "erin@example.com", got[0].Email)

	got, err = s.Users().Find(ctx, store.UserFilter{Username: ptr("erin"), Password: ptr("wrong")})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Users().Find(ctx, store.UserFilter{Email: ptr("frank@example.com")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "frank", got[0].Username)

	got, err = s.Users().Find(ctx, store.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func testUserUnique(t *testing.T, s store.Store) {
	ctx := context.Background()
	_, err := s.Users().Create(ctx, newUser("gina"))
	require.NoError(t, err)

	dup := newUser("other")
	dup.Username = "gina"
	_, err = s.Users().Create(ctx, dup)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	dup = newUser("other")
	dup.Email = "gina@example.com"
	_, err = s.Users().Create(ctx, dup)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	other, err := s.Users().Create(ctx, newUser("hank"))
	require.NoError(t, err)
	_, err = s.Users().UpdateByID(ctx, other.ID, store.Update{Set: map[string]any{store.FieldUsername: "gina"}})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func testAddToSetIdempotent(t *testing.T, s store.Store) {
	ctx := context.Background()
	user, err := s.Users().Create(ctx, newUser("ivy"))
	require.NoError(t, err)
	r, err := s.Recipes().Create(ctx, newRecipe(user.ID, "Rice", "Japanese", 1, 15))
	require.NoError(t, err)

	add := store.Update{AddToSet: map[string]string{store.FieldSavedRecipes: r.ID}}
	_, err = s.Users().UpdateByID(ctx, user.ID, add)
	require.NoError(t, err)
	got, err := s.Users().UpdateByID(ctx, user.ID, add)
	require.NoError(t, err)

	assert.Equal(t, []string{r.ID}, got.SavedRecipes)
	assert.Empty(t, got.PublishedRecipes)
}

func testAddToSetConcurrent(t *testing.T, s store.Store) {
	ctx := context.Background()
	user, err := s.Users().Create(ctx, newUser("jack"))
	require.NoError(t, err)

	const n = 8
	ids := make([]string, n)
	for i := range ids {
		r, err := s.Recipes().Create(ctx, newRecipe(user.ID, "Dish", "Greek", 1, 10))
		require.NoError(t, err)
		ids[i] = r.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.Users().UpdateByID(ctx, user.ID, store.Update{
				AddToSet: map[string]string{store.FieldPublishedRecipes: id},
			})
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, got.PublishedRecipes)
}

func testReplaceReferenceSet(t *testing.T, s store.Store) {
	ctx := context.Background()
	user, err := s.Users().Create(ctx, newUser("kate"))
	require.NoError(t, err)
	r, err := s.Recipes().Create(ctx, newRecipe(user.ID, "Pie", "American", 2, 60))
	require.NoError(t, err)

	_, err = s.Users().UpdateByID(ctx, user.ID, store.Update{
		AddToSet: map[string]string{
			store.FieldPublishedRecipes: r.ID,
			store.FieldSavedRecipes:     r.ID,
		},
	})
	require.NoError(t, err)

	got, err := s.Users().UpdateByID(ctx, user.ID, store.Update{
		Set: map[string]any{store.FieldPublishedRecipes: []string{}},
	})
	require.NoError(t, err)
	assert.Empty(t, got.PublishedRecipes)
	assert.Equal(t, []string{r.ID}, got.SavedRecipes)
}

func testUserMissing(t *testing.T, s store.Store) {
	ctx := context.Background()
	user, err := s.Users().Create(ctx, newUser("liam"))
	require.NoError(t, err)
	_, err = s.Users().DeleteByID(ctx, user.ID)
	require.NoError(t, err)

	_, err = s.Users().FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Users().UpdateByID(ctx, user.ID, store.Update{Set: map[string]any{store.FieldEmail: "x@y"}})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Users().DeleteByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Users().Find(ctx, store.UserFilter{Username: ptr("liam")})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testPing(t *testing.T, s store.Store) {
	assert.NoError(t, s.Ping(context.Background()))
}
