package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lucianli/cookbook-graphql/internal/model"
	"github.com/lucianli/cookbook-graphql/internal/store"
)

type recipeDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	AuthorID     primitive.ObjectID `bson:"authorId"`
	Ingredients  []string           `bson:"ingredients"`
	Instructions []string           `bson:"instructions"`
	ImageURL     *string            `bson:"imageUrl,omitempty"`
	Rating       *float64           `bson:"rating,omitempty"`
	Difficulty   int                `bson:"difficulty"`
	Cuisine      string             `bson:"cuisine"`
	CookingTime  int                `bson:"cookingTime"`
	DateCreated  string             `bson:"dateCreated"`
	DateModified string             `bson:"dateModified"`
}

func (d recipeDoc) model() *model.Recipe {
	return &model.Recipe{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		AuthorID:     d.AuthorID.Hex(),
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		ImageURL:     d.ImageURL,
		Rating:       d.Rating,
		Difficulty:   d.Difficulty,
		Cuisine:      d.Cuisine,
		CookingTime:  d.CookingTime,
		DateCreated:  d.DateCreated,
		DateModified: d.DateModified,
	}
}

// RecipeStore is the recipes collection.
type RecipeStore struct {
	coll *mongo.Collection
}

var _ store.RecipeStore = (*RecipeStore)(nil)

func (s *RecipeStore) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	authorID, err := objectID(recipe.AuthorID)
	if err != nil {
		return nil, err
	}

	doc := recipeDoc{
		ID:           primitive.NewObjectID(),
		Title:        recipe.Title,
		AuthorID:     authorID,
		Ingredients:  nonNil(recipe.Ingredients),
		Instructions: nonNil(recipe.Instructions),
		ImageURL:     recipe.ImageURL,
		Rating:       recipe.Rating,
		Difficulty:   recipe.Difficulty,
		Cuisine:      recipe.Cuisine,
		CookingTime:  recipe.CookingTime,
		DateCreated:  recipe.DateCreated,
		DateModified: recipe.DateModified,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate(err)
	}
	return doc.model(), nil
}

func (s *RecipeStore) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	var doc recipeDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.model(), nil
}

func (s *RecipeStore) Find(ctx context.Context, filter store.RecipeFilter) ([]*model.Recipe, error) {
	query := bson.M{}

	if filter.IDs != nil {
		// Ids that are not ObjectIDs cannot match anything
		oids := make([]primitive.ObjectID, 0, len(filter.IDs))
		for _, id := range filter.IDs {
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				oids = append(oids, oid)
			}
		}
		query["_id"] = bson.M{"$in": oids}
	}
	if filter.MaxDifficulty != nil {
		query["difficulty"] = bson.M{"$lte": *filter.MaxDifficulty}
	}
	if filter.Cuisine != nil {
		query["cuisine"] = *filter.Cuisine
	}
	if filter.MaxCookingTime != nil {
		query["cookingTime"] = bson.M{"$lte": *filter.MaxCookingTime}
	}

	cur, err := s.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	var docs []recipeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}

	recipes := make([]*model.Recipe, len(docs))
	for i := range docs {
		recipes[i] = docs[i].model()
	}
	return recipes, nil
}

func (s *RecipeStore) UpdateByID(ctx context.Context, id string, update store.Update) (*model.Recipe, error) {
	if len(update.AddToSet) > 0 {
		return nil, fmt.Errorf("recipes have no reference sets")
	}
	if len(update.Set) == 0 {
		return s.FindByID(ctx, id)
	}
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for field, value := range update.Set {
		switch field {
		case store.FieldID:
			return nil, fmt.Errorf("recipe field %q cannot be updated", field)
		case store.FieldAuthorID:
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("recipe field %q takes an id, got %T", field, value)
			}
			oid, err := objectID(str)
			if err != nil {
				return nil, err
			}
			value = oid
		}
		set[field] = value
	}

	var doc recipeDoc
	err = s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	return doc.model(), nil
}

func (s *RecipeStore) DeleteByID(ctx context.Context, id string) (*model.Recipe, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	var doc recipeDoc
	if err := s.coll.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.model(), nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
