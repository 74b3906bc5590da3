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

type userDoc struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty"`
	Email            string               `bson:"email"`
	Username         string               `bson:"username"`
	Password         string               `bson:"password"`
	PublishedRecipes []primitive.ObjectID `bson:"publishedRecipes"`
	SavedRecipes     []primitive.ObjectID `bson:"savedRecipes"`
}

func (d userDoc) model() *model.User {
	return &model.User{
		ID:               d.ID.Hex(),
		Email:            d.Email,
		Username:         d.Username,
		Password:         d.Password,
		PublishedRecipes: hexIDs(d.PublishedRecipes),
		SavedRecipes:     hexIDs(d.SavedRecipes),
	}
}

// UserStore is the users collection.
type UserStore struct {
	coll *mongo.Collection
}

var _ store.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	published, err := objectIDs(dedup(user.PublishedRecipes))
	if err != nil {
		return nil, err
	}
	saved, err := objectIDs(dedup(user.SavedRecipes))
	if err != nil {
		return nil, err
	}

	doc := userDoc{
		ID:               primitive.NewObjectID(),
		Email:            user.Email,
		Username:         user.Username,
		Password:         user.Password,
		PublishedRecipes: published,
		SavedRecipes:     saved,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate(err)
	}
	return doc.model(), nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	var doc userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.model(), nil
}

func (s *UserStore) Find(ctx context.Context, filter store.UserFilter) ([]*model.User, error) {
	query := bson.M{}
	if filter.Email != nil {
		query["email"] = *filter.Email
	}
	if filter.Username != nil {
		query["username"] = *filter.Username
	}
	if filter.Password != nil {
		query["password"] = *filter.Password
	}

	cur, err := s.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}

	users := make([]*model.User, len(docs))
	for i := range docs {
		users[i] = docs[i].model()
	}
	return users, nil
}

// UpdateByID applies $set and $addToSet in one findOneAndUpdate, so the
// change is atomic for the document and concurrent additions commute.
func (s *UserStore) UpdateByID(ctx context.Context, id string, update store.Update) (*model.User, error) {
	if update.IsEmpty() {
		return s.FindByID(ctx, id)
	}
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for field, value := range update.Set {
		switch field {
		case store.FieldEmail, store.FieldUsername, store.FieldPassword:
			set[field] = value
		case store.FieldPublishedRecipes, store.FieldSavedRecipes:
			ids, ok := value.([]string)
			if !ok {
				return nil, fmt.Errorf("user field %q takes a list of ids, got %T", field, value)
			}
			oids, err := objectIDs(dedup(ids))
			if err != nil {
				return nil, err
			}
			set[field] = oids
		default:
			return nil, fmt.Errorf("user field %q cannot be updated", field)
		}
	}

	addToSet := bson.M{}
	for field, recipeID := range update.AddToSet {
		if field != store.FieldPublishedRecipes && field != store.FieldSavedRecipes {
			return nil, fmt.Errorf("user field %q is not a reference set", field)
		}
		oid, err := objectID(recipeID)
		if err != nil {
			return nil, err
		}
		addToSet[field] = oid
	}

	change := bson.M{}
	if len(set) > 0 {
		change["$set"] = set
	}
	if len(addToSet) > 0 {
		change["$addToSet"] = addToSet
	}

	var doc userDoc
	err = s.coll.FindOneAndUpdate(ctx, filter, change,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	return doc.model(), nil
}

func (s *UserStore) DeleteByID(ctx context.Context, id string) (*model.User, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	var doc userDoc
	if err := s.coll.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.model(), nil
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
