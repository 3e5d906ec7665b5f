package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ismail-dev-code/meal-giver-server/internal/models"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// FavoriteStore is the Mongo-backed favorites collection.
type FavoriteStore struct {
	col *mongo.Collection
}

func NewFavoriteStore(db *mongo.Database) *FavoriteStore {
	return &FavoriteStore{col: db.Collection("favorites")}
}

func (s *FavoriteStore) Insert(ctx context.Context, f *models.Favorite) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, f)
	return err
}

func (s *FavoriteStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Favorite, error) {
	var f models.Favorite
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Favorite{}, services.ErrNotFound
	}
	return f, err
}

func (s *FavoriteStore) Exists(ctx context.Context, email string, donationID primitive.ObjectID) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"email": email, "donation_id": donationID})
	return count > 0, err
}

func (s *FavoriteStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *FavoriteStore) ByEmail(ctx context.Context, email string) ([]models.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "favorited_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// ReviewStore is the Mongo-backed reviews collection.
type ReviewStore struct {
	col *mongo.Collection
}

func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{col: db.Collection("reviews")}
}

func (s *ReviewStore) Insert(ctx context.Context, r *models.Review) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, r)
	return err
}

func (s *ReviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var r models.Review
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Review{}, services.ErrNotFound
	}
	return r, err
}

func (s *ReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *ReviewStore) ByDonation(ctx context.Context, donationID primitive.ObjectID) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"donation_id": donationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
