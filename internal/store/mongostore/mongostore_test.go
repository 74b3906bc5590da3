package mongostore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
	"github.com/lucianli/cookbook-graphql/internal/store/mongostore"
	"github.com/lucianli/cookbook-graphql/internal/store/storetest"
	"github.com/lucianli/cookbook-graphql/internal/testhelpers"
)

func TestMongoStore(t *testing.T) {
	s := testhelpers.NewMongoStore(t)
	storetest.Run(t, func(t *testing.T) store.Store {
		require.NoError(t, s.Reset(context.Background()))
		return s
	})
}

func TestMalformedIDs(t *testing.T) {
	s := testhelpers.NewMongoStore(t)
	ctx := context.Background()

	_, err := s.Recipes().FindByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Users().DeleteByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, store.ErrNotFound)

	user, err := s.Users().Create(ctx, &model.User{Email: "a@x", Username: "a", Password: "p"})
	require.NoError(t, err)
	_, err = s.Users().UpdateByID(ctx, user.ID, store.Update{
		AddToSet: map[string]string{store.FieldSavedRecipes: "not-an-object-id"},
	})
	assert.ErrorIs(t, err, store.ErrInvalidID)

	_, err = s.Recipes().Create(ctx, &model.Recipe{Title: "t", AuthorID: "nope"})
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

var _ store.Store = (*mongostore.Store)(nil)
