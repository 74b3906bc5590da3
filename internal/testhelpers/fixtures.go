package testhelpers

import (
	"fmt"

	"github.com/lucianli/cookbook-graphql/internal/model"
)

func ptr[T any](v T) *T {
	return &v
}

// UserInput returns a valid registration for name, with name@example.com as
// email and name+"-pw" as password.
func UserInput(name string) model.UserInput {
	return model.UserInput{
		Email:    fmt.Sprintf("%s@example.com", name),
		Username: name,
		Password: name + "-pw",
	}
}

// RecipeInput returns a valid recipe authored by authorID.
func RecipeInput(authorID, title string) model.RecipeInput {
	return model.RecipeInput{
		Title:        title,
		AuthorID:     authorID,
		Ingredients:  []string{"2 eggs", "1 cup flour"},
		Instructions: []string{"mix", "bake"},
		Difficulty:   ptr(2),
		Cuisine:      "Italian",
		CookingTime:  ptr(30),
		DateCreated:  "2024-01-01",
		DateModified: "2024-01-01",
	}
}
