package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ismail-dev-code/meal-giver-server/internal/models"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// RequestStore is the Mongo-backed request collection. Status transitions go
// through conditional updates so a stale caller observes zero matched
// documents instead of clobbering a concurrent transition.
type RequestStore struct {
	col *mongo.Collection
}

func NewRequestStore(db *mongo.Database) *RequestStore {
	return &RequestStore{col: db.Collection("requests")}
}

func (s *RequestStore) Insert(ctx context.Context, r *models.Request) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, r)
	return err
}

func (s *RequestStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Request, error) {
	var r models.Request
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Request{}, services.ErrNotFound
	}
	return r, err
}

func (s *RequestStore) HasActive(ctx context.Context, donationID primitive.ObjectID, charityEmail string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{
		"donation_id":   donationID,
		"charity_email": charityEmail,
		"status":        bson.M{"$ne": models.RequestRejected},
	})
	return count > 0, err
}

func (s *RequestStore) CompareAndSetStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *RequestStore) RejectSiblings(ctx context.Context, donationID, exceptID primitive.ObjectID) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"donation_id": donationID, "_id": bson.M{"$ne": exceptID}},
		bson.M{"$set": bson.M{"status": models.RequestRejected}},
	)
	return err
}

func (s *RequestStore) ConfirmPickup(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.RequestAccepted},
		bson.M{"$set": bson.M{"status": models.RequestPickedUp, "pickup_date": at}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *RequestStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *RequestStore) ByRestaurant(ctx context.Context, restaurantEmail string) ([]models.Request, error) {
	return s.find(ctx, bson.M{"restaurant_email": restaurantEmail})
}

func (s *RequestStore) ByCharity(ctx context.Context, charityEmail string) ([]models.Request, error) {
	return s.find(ctx, bson.M{"charity_email": charityEmail})
}

func (s *RequestStore) ByCharityAndStatus(ctx context.Context, charityEmail string, statuses []string) ([]models.Request, error) {
	return s.find(ctx, bson.M{"charity_email": charityEmail, "status": bson.M{"$in": statuses}})
}

func (s *RequestStore) find(ctx context.Context, filter bson.M) ([]models.Request, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.Request
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
