package gormstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

// UserStore is the users table plus the user_recipe_refs table holding
// each user's reference sets.
type UserStore struct {
	db *gorm.DB
}

var _ store.UserStore = (*UserStore)(nil)

// Create inserts a user under a freshly generated id, together with any
// reference-set members the record already carries.
func (s *UserStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	row := userRow{
		ID:       uuid.NewString(),
		Email:    user.Email,
		Username: user.Username,
		Password: user.Password,
	}

	var created *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := addRefs(tx, row.ID, refPublished, user.PublishedRecipes); err != nil {
			return err
		}
		if err := addRefs(tx, row.ID, refSaved, user.SavedRecipes); err != nil {
			return err
		}
		var err error
		created, err = loadUser(tx, row.ID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := loadUser(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *UserStore) Find(ctx context.Context, filter store.UserFilter) ([]*model.User, error) {
	db := s.db.WithContext(ctx)
	query := db.Model(&userRow{})

	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.Username != nil {
		query = query.Where("username = ?", *filter.Username)
	}
	if filter.Password != nil {
		query = query.Where("password = ?", *filter.Password)
	}

	var rows []userRow
	if err := query.Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return []*model.User{}, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	var refs []recipeRefRow
	if err := db.Where("user_id IN ?", ids).Order("created_at, recipe_id").Find(&refs).Error; err != nil {
		return nil, translate(err)
	}
	byUser := make(map[string][]recipeRefRow, len(rows))
	for _, ref := range refs {
		byUser[ref.UserID] = append(byUser[ref.UserID], ref)
	}

	users := make([]*model.User, len(rows))
	for i, row := range rows {
		users[i] = userModel(row, byUser[row.ID])
	}
	return users, nil
}

// UpdateByID applies the update inside one transaction. Set on a reference
// set replaces its members; AddToSet inserts with ON CONFLICT DO NOTHING so
// that concurrent additions commute.
func (s *UserStore) UpdateByID(ctx context.Context, id string, update store.Update) (*model.User, error) {
	var updated *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row userRow
		if err := tx.Select("id").First(&row, "id = ?", id).Error; err != nil {
			return err
		}

		values := make(map[string]interface{})
		for field, value := range update.Set {
			if kind, ok := refKinds[field]; ok {
				ids, ok := value.([]string)
				if !ok {
					return fmt.Errorf("user field %q takes a list of ids, got %T", field, value)
				}
				if err := tx.Where("user_id = ? AND kind = ?", id, kind).Delete(&recipeRefRow{}).Error; err != nil {
					return err
				}
				if err := addRefs(tx, id, kind, ids); err != nil {
					return err
				}
				continue
			}
			column, ok := userColumns[field]
			if !ok {
				return fmt.Errorf("user field %q cannot be updated", field)
			}
			values[column] = value
		}
		if len(values) > 0 {
			if err := tx.Model(&userRow{}).Where("id = ?", id).Updates(values).Error; err != nil {
				return err
			}
		}

		for field, recipeID := range update.AddToSet {
			kind, ok := refKinds[field]
			if !ok {
				return fmt.Errorf("user field %q is not a reference set", field)
			}
			if err := addRefs(tx, id, kind, []string{recipeID}); err != nil {
				return err
			}
		}

		var err error
		updated, err = loadUser(tx, id)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// DeleteByID removes the user and its reference sets, returning the record as
// it was before removal.
func (s *UserStore) DeleteByID(ctx context.Context, id string) (*model.User, error) {
	var deleted *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = loadUser(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&recipeRefRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userRow{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return deleted, nil
}

func loadUser(db *gorm.DB, id string) (*model.User, error) {
	var row userRow
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	var refs []recipeRefRow
	if err := db.Where("user_id = ?", id).Order("created_at, recipe_id").Find(&refs).Error; err != nil {
		return nil, err
	}
	return userModel(row, refs), nil
}

func addRefs(tx *gorm.DB, userID, kind string, recipeIDs []string) error {
	for _, recipeID := range recipeIDs {
		ref := recipeRefRow{UserID: userID, Kind: kind, RecipeID: recipeID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ref).Error; err != nil {
			return err
		}
	}
	return nil
}
