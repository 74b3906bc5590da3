package gormstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
	"github.com/lucianli/cookbook-graphql/internal/store/gormstore"
	"github.com/lucianli/cookbook-graphql/internal/store/storetest"
	"github.com/lucianli/cookbook-graphql/internal/testhelpers"
)

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return testhelpers.NewSQLiteStore(t)
	})
}

func TestPostgresStore(t *testing.T) {
	s := testhelpers.NewPostgresStore(t)
	storetest.Run(t, func(t *testing.T) store.Store {
		truncate(t, s)
		return s
	})
}

func truncate(t *testing.T, s *gormstore.Store) {
	t.Helper()
	require.NoError(t, s.DB().Exec("TRUNCATE user_recipe_refs, recipes, users").Error)
}

func TestRecipeUpdateRejectsUnknownField(t *testing.T) {
	s := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	user, err := s.Users().Create(ctx, &model.User{Email: "a@x", Username: "a", Password: "p"})
	require.NoError(t, err)
	r, err := s.Recipes().Create(ctx, &model.Recipe{
		Title: "t", AuthorID: user.ID, Ingredients: []string{"i"}, Instructions: []string{"s"},
		Cuisine: "c", DateCreated: "d", DateModified: "d",
	})
	require.NoError(t, err)

	_, err = s.Recipes().UpdateByID(ctx, r.ID, store.Update{Set: map[string]any{store.FieldID: "other"}})
	assert.Error(t, err)
	_, err = s.Recipes().UpdateByID(ctx, r.ID, store.Update{AddToSet: map[string]string{store.FieldSavedRecipes: "x"}})
	assert.Error(t, err)

	got, err := s.Recipes().FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestUserCreateKeepsReferenceSets(t *testing.T) {
	s := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	created, err := s.Users().Create(ctx, &model.User{
		Email: "a@x", Username: "a", Password: "p",
		PublishedRecipes: []string{"r1", "r2", "r1"},
		SavedRecipes:     []string{"r3"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"r1", "r2"}, created.PublishedRecipes)
	assert.Equal(t, []string{"r3"}, created.SavedRecipes)
}

func TestStringArray(t *testing.T) {
	v, err := gormstore.StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var a gormstore.StringArray
	require.NoError(t, a.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, gormstore.StringArray{"x", "y"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)

	assert.Error(t, a.Scan(42))
}
