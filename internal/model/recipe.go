package model

// Recipe is a catalog entry authored by exactly one User.
type Recipe struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	AuthorID     string   `json:"authorId"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Difficulty   int      `json:"difficulty"`
	Cuisine      string   `json:"cuisine"`
	CookingTime  int      `json:"cookingTime"`
	DateCreated  string   `json:"dateCreated"`
	DateModified string   `json:"dateModified"`
}

// RecipeInput is the payload accepted when a recipe is created. Numeric
// fields are pointers so that an omitted value can be told apart from zero.
type RecipeInput struct {
	Title        string   `json:"title" validate:"required"`
	AuthorID     string   `json:"authorId" validate:"required"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1"`
	Instructions []string `json:"instructions" validate:"required,min=1"`
	ImageURL     *string  `json:"imageUrl"`
	Rating       *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Difficulty   *int     `json:"difficulty" validate:"required,gte=0,lte=5"`
	Cuisine      string   `json:"cuisine" validate:"required"`
	CookingTime  *int     `json:"cookingTime" validate:"required,gte=0"`
	DateCreated  string   `json:"dateCreated" validate:"required"`
	DateModified string   `json:"dateModified" validate:"required"`
}

// Recipe converts a validated input into a record without an id.
func (in RecipeInput) Recipe() *Recipe {
	r := &Recipe{
		Title:        in.Title,
		AuthorID:     in.AuthorID,
		Ingredients:  append([]string(nil), in.Ingredients...),
		Instructions: append([]string(nil), in.Instructions...),
		ImageURL:     in.ImageURL,
		Rating:       in.Rating,
		Cuisine:      in.Cuisine,
		DateCreated:  in.DateCreated,
		DateModified: in.DateModified,
	}
	if in.Difficulty != nil {
		r.Difficulty = *in.Difficulty
	}
	if in.CookingTime != nil {
		r.CookingTime = *in.CookingTime
	}
	return r
}
