package graph

import (
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/lucianli/cookbook-graphql/internal/model"
)

type recipeResolver struct {
	r *model.Recipe
}

func (r *recipeResolver) ID() *graphql.ID {
	id := graphql.ID(r.r.ID)
	return &id
}

func (r *recipeResolver) Title() string {
	return r.r.Title
}

func (r *recipeResolver) AuthorID() graphql.ID {
	return graphql.ID(r.r.AuthorID)
}

func (r *recipeResolver) Ingredients() []string {
	return r.r.Ingredients
}

func (r *recipeResolver) Instructions() []string {
	return r.r.Instructions
}

func (r *recipeResolver) ImageURL() *string {
	return r.r.ImageURL
}

func (r *recipeResolver) Rating() *float64 {
	return r.r.Rating
}

func (r *recipeResolver) Difficulty() int32 {
	return int32(r.r.Difficulty)
}

func (r *recipeResolver) Cuisine() string {
	return r.r.Cuisine
}

func (r *recipeResolver) CookingTime() int32 {
	return int32(r.r.CookingTime)
}

func (r *recipeResolver) DateCreated() string {
	return r.r.DateCreated
}

func (r *recipeResolver) DateModified() string {
	return r.r.DateModified
}

func recipe(r *model.Recipe) *recipeResolver {
	if r == nil {
		return nil
	}
	return &recipeResolver{r: r}
}

func recipeList(recipes []*model.Recipe) *[]*recipeResolver {
	out := make([]*recipeResolver, len(recipes))
	for i, r := range recipes {
		out[i] = recipe(r)
	}
	return &out
}

type userResolver struct {
	u *model.User
}

func (u *userResolver) ID() *graphql.ID {
	id := graphql.ID(u.u.ID)
	return &id
}

func (u *userResolver) Email() string {
	return u.u.Email
}

func (u *userResolver) Username() string {
	return u.u.Username
}

func (u *userResolver) Password() string {
	return u.u.Password
}

func (u *userResolver) PublishedRecipes() *[]graphql.ID {
	return ids(u.u.PublishedRecipes)
}

func (u *userResolver) SavedRecipes() *[]graphql.ID {
	return ids(u.u.SavedRecipes)
}

func user(u *model.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{u: u}
}

func ids(in []string) *[]graphql.ID {
	out := make([]graphql.ID, len(in))
	for i, id := range in {
		out[i] = graphql.ID(id)
	}
	return &out
}

// recipeInput mirrors the RecipeInput type. _id is accepted and ignored.
type recipeInput struct {
	ID           *graphql.ID
	Title        *string
	AuthorID     *graphql.ID
	Ingredients  *[]string
	Instructions *[]string
	ImageURL     *string
	Rating       *float64
	Difficulty   *int32
	Cuisine      *string
	CookingTime  *int32
	DateCreated  *string
	DateModified *string
}

func (in recipeInput) model() model.RecipeInput {
	out := model.RecipeInput{
		Title:        deref(in.Title),
		Ingredients:  deref(in.Ingredients),
		Instructions: deref(in.Instructions),
		ImageURL:     in.ImageURL,
		Rating:       in.Rating,
		Difficulty:   widen(in.Difficulty),
		Cuisine:      deref(in.Cuisine),
		CookingTime:  widen(in.CookingTime),
		DateCreated:  deref(in.DateCreated),
		DateModified: deref(in.DateModified),
	}
	if in.AuthorID != nil {
		out.AuthorID = string(*in.AuthorID)
	}
	return out
}

// userInput mirrors the UserInput type. _id and the reference sets are
// accepted and ignored; new users always start with empty sets.
type userInput struct {
	ID               *graphql.ID
	Email            *string
	Username         *string
	Password         *string
	PublishedRecipes *[]graphql.ID
	SavedRecipes     *[]graphql.ID
}

func (in userInput) model() model.UserInput {
	return model.UserInput{
		Email:    deref(in.Email),
		Username: deref(in.Username),
		Password: deref(in.Password),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func widen(p *int32) *int {
	if p == nil {
		return nil
	}
	v := int(*p)
	return &v
}
