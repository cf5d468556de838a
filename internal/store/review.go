package store

import (
	"context"
	"errors"
	"time"

	"github.com/deliverease/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const reviewsCollection = "Reviews"

// ReviewRepository handles persistence for reviews.
type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(database *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: database.Collection(reviewsCollection)}
}

func (r *ReviewRepository) ListForRestaurant(ctx context.Context, restaurantID string) ([]types.Review, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return nil, err
	}
	var reviews []types.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) Get(ctx context.Context, id string) (types.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return types.Review{}, ErrNotFound
	}
	var review types.Review
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Review{}, ErrNotFound
		}
		return types.Review{}, err
	}
	return review, nil
}

func (r *ReviewRepository) Insert(ctx context.Context, review types.Review) (types.Review, error) {
	review.ID = primitive.NilObjectID
	review.CreatedAt = time.Now()

	result, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return types.Review{}, err
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
