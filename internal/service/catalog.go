package service

import (
	"github.com/lucianli/cookbook-graphql/internal/logging"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

// Policy holds behavior switches of the catalog that are pending product
// decisions.
type Policy struct {
	// CascadeSavedRecipes makes DeleteUser delete the recipes a user saved as
	// well as the ones they published, including recipes authored by others.
	CascadeSavedRecipes bool
}

// DefaultPolicy returns the policy matching the catalog's established
// behavior.
func DefaultPolicy() Policy {
	return Policy{CascadeSavedRecipes: true}
}

// CatalogService keeps recipes and the reference sets users hold on them
// consistent. Every write to publishedRecipes and savedRecipes goes through
// AddRecipe, SaveRecipe or DeleteUser.
//
// No operation spans records atomically: AddRecipe performs two writes and
// DeleteUser one write per referenced recipe plus the user, without rollback.
type CatalogService struct {
	recipes store.RecipeStore
	users   store.UserStore
	editor  *AttributeEditor
	policy  Policy
	log     logging.Logger
}

// Ensure CatalogService implements ICatalogService
var _ ICatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(s store.Store, policy Policy, log logging.Logger) *CatalogService {
	if log == nil {
		log = logging.Discard()
	}
	return &CatalogService{
		recipes: s.Recipes(),
		users:   s.Users(),
		editor:  NewAttributeEditor(s.Recipes(), s.Users()),
		policy:  policy,
		log:     log.With("component", "catalog"),
	}
}
