package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ismail-dev-code/meal-giver-server/internal/models"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
)

// RoleRequestStore is the Mongo-backed role application collection.
type RoleRequestStore struct {
	col *mongo.Collection
}

func NewRoleRequestStore(db *mongo.Database) *RoleRequestStore {
	return &RoleRequestStore{col: db.Collection("role_requests")}
}

func (s *RoleRequestStore) Insert(ctx context.Context, rr *models.RoleRequest) error {
	if rr.ID.IsZero() {
		rr.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, rr)
	return err
}

func (s *RoleRequestStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.RoleRequest, error) {
	var rr models.RoleRequest
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.RoleRequest{}, services.ErrNotFound
	}
	return rr, err
}

func (s *RoleRequestStore) HasActive(ctx context.Context, email string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{
		"email":  email,
		"status": bson.M{"$in": []string{models.RoleRequestPending, models.RoleRequestApproved}},
	})
	return count > 0, err
}

func (s *RoleRequestStore) CompareAndSetStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *RoleRequestStore) List(ctx context.Context, statusFilter string) ([]models.RoleRequest, error) {
	filter := bson.M{}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}
	return s.find(ctx, filter)
}

func (s *RoleRequestStore) ByEmail(ctx context.Context, email string) ([]models.RoleRequest, error) {
	return s.find(ctx, bson.M{"email": email})
}

func (s *RoleRequestStore) find(ctx context.Context, filter bson.M) ([]models.RoleRequest, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.RoleRequest
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
