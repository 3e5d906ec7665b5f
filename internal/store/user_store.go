package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ismail-dev-code/meal-giver-server/internal/models"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// UserStore is the Mongo-backed user collection.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

func (s *UserStore) Upsert(ctx context.Context, user models.User) (models.User, bool, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{"last_log_in": now},
		"$setOnInsert": bson.M{
			"email":      user.Email,
			"name":       user.Name,
			"photo":      user.Photo,
			"role":       models.RoleUser,
			"created_at": now,
		},
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"email": user.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return models.User{}, false, err
	}

	var saved models.User
	if err := s.col.FindOne(ctx, bson.M{"email": user.Email}).Decode(&saved); err != nil {
		return models.User{}, false, err
	}
	return saved, res.UpsertedCount > 0, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, services.ErrNotFound
	}
	return user, err
}

func (s *UserStore) SetRole(ctx context.Context, email, role string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Delete(ctx context.Context, email string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}
