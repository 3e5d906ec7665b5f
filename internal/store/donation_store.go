package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ismail-dev-code/meal-giver-server/internal/models"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// DonationStore is the Mongo-backed donation collection.
type DonationStore struct {
	col *mongo.Collection
}

func NewDonationStore(db *mongo.Database) *DonationStore {
	return &DonationStore{col: db.Collection("donations")}
}

func (s *DonationStore) Insert(ctx context.Context, d *models.Donation) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, d)
	return err
}

func (s *DonationStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	var d models.Donation
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Donation{}, services.ErrNotFound
	}
	return d, err
}

func (s *DonationStore) UpdateFields(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) error {
	fields := bson.M{"updated_at": time.Now()}
	for k, v := range set {
		fields[k] = v
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *DonationStore) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return s.UpdateFields(ctx, id, map[string]interface{}{"status": status})
}

func (s *DonationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *DonationStore) List(ctx context.Context, approvedOnly bool) ([]models.Donation, error) {
	filter := bson.M{}
	if approvedOnly {
		filter["approved"] = true
	}
	return s.find(ctx, filter, nil)
}

func (s *DonationStore) Featured(ctx context.Context, limit int64) ([]models.Donation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, bson.M{"featured": true, "approved": true}, opts)
}

func (s *DonationStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Donation, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.col.Find(ctx, filter, opts)
	} else {
		cursor, err = s.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var donations []models.Donation
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}
