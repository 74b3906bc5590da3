package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecipeInput() RecipeInput {
	difficulty, cookingTime := 0, 0
	return RecipeInput{
		Title:        "Soup",
		AuthorID:     "author-1",
		Ingredients:  []string{"water"},
		Instructions: []string{"boil"},
		Difficulty:   &difficulty,
		Cuisine:      "French",
		CookingTime:  &cookingTime,
		DateCreated:  "2024-01-01",
		DateModified: "2024-01-01",
	}
}

func TestValidateRecipeInput(t *testing.T) {
	assert.NoError(t, Validate(validRecipeInput()))

	in := validRecipeInput()
	in.Title = ""
	in.Difficulty = nil
	in.Instructions = []string{}

	err := Validate(in)
	require.Error(t, err)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"title", "difficulty", "instructions"}, names)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "instructions must not be empty")
}

func TestValidateRecipeRanges(t *testing.T) {
	in := validRecipeInput()
	high, negative, rating := 6, -1, 5.5
	in.Difficulty = &high
	in.CookingTime = &negative
	in.Rating = &rating

	err := Validate(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "difficulty must be at most 5")
	assert.Contains(t, err.Error(), "cookingTime must be at least 0")
	assert.Contains(t, err.Error(), "rating must be at most 5")
}

func TestValidateUserInput(t *testing.T) {
	assert.NoError(t, Validate(UserInput{Email: "a@x", Username: "a", Password: "p"}))

	err := Validate(UserInput{Username: "a"})
	require.Error(t, err)
	assert.EqualError(t, err, "email is required; password is required")
}

func TestRecipeInputConversion(t *testing.T) {
	in := validRecipeInput()
	r := in.Recipe()

	assert.Empty(t, r.ID)
	assert.Equal(t, "Soup", r.Title)
	assert.Equal(t, 0, r.Difficulty)

	// The record does not share list storage with the input
	in.Ingredients[0] = "milk"
	assert.Equal(t, []string{"water"}, r.Ingredients)
}

func TestUserInputConversion(t *testing.T) {
	u := UserInput{Email: "a@x", Username: "a", Password: "p"}.User()
	assert.NotNil(t, u.PublishedRecipes)
	assert.NotNil(t, u.SavedRecipes)
	assert.Empty(t, u.PublishedRecipes)
}
