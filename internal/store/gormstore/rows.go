package gormstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

// StringArray stores an ordered list of strings as a JSON array column.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

type recipeRow struct {
	ID           string      `gorm:"size:64;primaryKey"`
	CreatedAt    time.Time   `gorm:"index"`
	Title        string      `gorm:"not null"`
	AuthorID     string      `gorm:"size:64;not null;index"`
	Ingredients  StringArray `gorm:"type:jsonb;not null"`
	Instructions StringArray `gorm:"type:jsonb;not null"`
	ImageURL     *string
	Rating       *float64
	Difficulty   int    `gorm:"not null;index"`
	Cuisine      string `gorm:"not null;index"`
	CookingTime  int    `gorm:"not null;index"`
	DateCreated  string `gorm:"not null"`
	DateModified string `gorm:"not null"`
}

func (recipeRow) TableName() string {
	return "recipes"
}

func newRecipeRow(r *model.Recipe) recipeRow {
	return recipeRow{
		ID:           r.ID,
		Title:        r.Title,
		AuthorID:     r.AuthorID,
		Ingredients:  StringArray(r.Ingredients),
		Instructions: StringArray(r.Instructions),
		ImageURL:     r.ImageURL,
		Rating:       r.Rating,
		Difficulty:   r.Difficulty,
		Cuisine:      r.Cuisine,
		CookingTime:  r.CookingTime,
		DateCreated:  r.DateCreated,
		DateModified: r.DateModified,
	}
}

func (row recipeRow) model() *model.Recipe {
	return &model.Recipe{
		ID:           row.ID,
		Title:        row.Title,
		AuthorID:     row.AuthorID,
		Ingredients:  []string(row.Ingredients),
		Instructions: []string(row.Instructions),
		ImageURL:     row.ImageURL,
		Rating:       row.Rating,
		Difficulty:   row.Difficulty,
		Cuisine:      row.Cuisine,
		CookingTime:  row.CookingTime,
		DateCreated:  row.DateCreated,
		DateModified: row.DateModified,
	}
}

var recipeColumns = map[string]string{
	store.FieldTitle:        "title",
	store.FieldAuthorID:     "author_id",
	store.FieldIngredients:  "ingredients",
	store.FieldInstructions: "instructions",
	store.FieldImageURL:     "image_url",
	store.FieldRating:       "rating",
	store.FieldDifficulty:   "difficulty",
	store.FieldCuisine:      "cuisine",
	store.FieldCookingTime:  "cooking_time",
	store.FieldDateCreated:  "date_created",
	store.FieldDateModified: "date_modified",
}

type userRow struct {
	ID        string    `gorm:"size:64;primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Username  string    `gorm:"not null;uniqueIndex"`
	Password  string    `gorm:"not null"`
}

func (userRow) TableName() string {
	return "users"
}

var userColumns = map[string]string{
	store.FieldEmail:    "email",
	store.FieldUsername: "username",
	store.FieldPassword: "password",
}

// Reference kinds stored in user_recipe_refs.
const (
	refPublished = "published"
	refSaved     = "saved"
)

var refKinds = map[string]string{
	store.FieldPublishedRecipes: refPublished,
	store.FieldSavedRecipes:     refSaved,
}

// recipeRefRow is one member of a user's reference set. The composite key
// gives the set its no-duplicates guarantee.
type recipeRefRow struct {
	UserID    string    `gorm:"size:64;primaryKey"`
	Kind      string    `gorm:"size:16;primaryKey"`
	RecipeID  string    `gorm:"size:64;primaryKey;index"`
	CreatedAt time.Time
}

func (recipeRefRow) TableName() string {
	return "user_recipe_refs"
}

func userModel(row userRow, refs []recipeRefRow) *model.User {
	u := &model.User{
		ID:               row.ID,
		Email:            row.Email,
		Username:         row.Username,
		Password:         row.Password,
		PublishedRecipes: []string{},
		SavedRecipes:     []string{},
	}
	for _, ref := range refs {
		switch ref.Kind {
		case refPublished:
			u.PublishedRecipes = append(u.PublishedRecipes, ref.RecipeID)
		case refSaved:
			u.SavedRecipes = append(u.SavedRecipes, ref.RecipeID)
		}
	}
	return u
}
