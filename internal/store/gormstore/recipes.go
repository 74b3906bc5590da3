package gormstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

// RecipeStore is the recipes table.
type RecipeStore struct {
	db *gorm.DB
}

var _ store.RecipeStore = (*RecipeStore)(nil)

// Create inserts a recipe under a freshly generated id.
func (s *RecipeStore) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	row := newRecipeRow(recipe)
	row.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.model(), nil
}

func (s *RecipeStore) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	var row recipeRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return row.model(), nil
}

func (s *RecipeStore) Find(ctx context.Context, filter store.RecipeFilter) ([]*model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&recipeRow{})

	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.MaxDifficulty != nil {
		query = query.Where("difficulty <= ?", *filter.MaxDifficulty)
	}
	if filter.Cuisine != nil {
		query = query.Where("cuisine = ?", *filter.Cuisine)
	}
	if filter.MaxCookingTime != nil {
		query = query.Where("cooking_time <= ?", *filter.MaxCookingTime)
	}

	var rows []recipeRow
	if err := query.Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	recipes := make([]*model.Recipe, len(rows))
	for i := range rows {
		recipes[i] = rows[i].model()
	}
	return recipes, nil
}

// UpdateByID applies update.Set in a single UPDATE statement. Recipes carry
// no reference sets, so AddToSet is rejected.
func (s *RecipeStore) UpdateByID(ctx context.Context, id string, update store.Update) (*model.Recipe, error) {
	if len(update.AddToSet) > 0 {
		return nil, fmt.Errorf("recipes have no reference sets")
	}
	if len(update.Set) == 0 {
		return s.FindByID(ctx, id)
	}

	values := make(map[string]interface{}, len(update.Set))
	for field, value := range update.Set {
		column, ok := recipeColumns[field]
		if !ok {
			return nil, fmt.Errorf("recipe field %q cannot be updated", field)
		}
		if list, ok := value.([]string); ok {
			value = StringArray(list)
		}
		values[column] = value
	}

	result := s.db.WithContext(ctx).Model(&recipeRow{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// DeleteByID removes the recipe and returns it as it was. References held in
// user reference sets are left alone.
func (s *RecipeStore) DeleteByID(ctx context.Context, id string) (*model.Recipe, error) {
	var row recipeRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&recipeRow{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return row.model(), nil
}
