package model

// User owns two reference sets of recipe ids. Both sets are maintained by the
// catalog service only and never contain duplicates.
type User struct {
	ID               string   `json:"_id"`
	Email            string   `json:"email"`
	Username         string   `json:"username"`
	Password         string   `json:"password"`
	PublishedRecipes []string `json:"publishedRecipes"`
	SavedRecipes     []string `json:"savedRecipes"`
}

// UserInput is the payload accepted when a user is created.
type UserInput struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// User converts the input into a record with empty reference sets.
func (in UserInput) User() *User {
	return &User{
		Email:            in.Email,
		Username:         in.Username,
		Password:         in.Password,
		PublishedRecipes: []string{},
		SavedRecipes:     []string{},
	}
}
