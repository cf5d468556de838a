package store

import (
	"context"
	"errors"

	"github.com/deliverease/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const restaurantsCollection = "Restaurants"

// RestaurantRepository handles persistence for restaurants and their
// embedded meal catalogs.
type RestaurantRepository struct {
	coll *mongo.Collection
}

func NewRestaurantRepository(database *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{coll: database.Collection(restaurantsCollection)}
}

func (r *RestaurantRepository) List(ctx context.Context) ([]types.Restaurant, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var restaurants []types.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *RestaurantRepository) Get(ctx context.Context, id string) (types.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return types.Restaurant{}, ErrNotFound
	}
	var restaurant types.Restaurant
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&restaurant); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Restaurant{}, ErrNotFound
		}
		return types.Restaurant{}, err
	}
	return restaurant, nil
}

func (r *RestaurantRepository) Insert(ctx context.Context, restaurant types.Restaurant) (types.Restaurant, error) {
	restaurant.ID = primitive.NilObjectID
	if restaurant.Meals == nil {
		restaurant.Meals = []types.Meal{}
	}
	for i := range restaurant.Meals {
		if restaurant.Meals[i].ID.IsZero() {
			restaurant.Meals[i].ID = primitive.NewObjectID()
		}
	}

	result, err := r.coll.InsertOne(ctx, restaurant)
	if err != nil {
		return types.Restaurant{}, err
	}
	restaurant.ID = result.InsertedID.(primitive.ObjectID)
	return restaurant, nil
}

// Replace overwrites name, address, cuisine and rating. The meal catalog is
// managed through AddMeal/RemoveMeal and is left untouched.
func (r *RestaurantRepository) Replace(ctx context.Context, id string, restaurant types.Restaurant) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":    restaurant.Name,
		"address": restaurant.Address,
		"cuisine": restaurant.Cuisine,
		"rating":  restaurant.Rating,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
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

// AddMeal appends a meal to the restaurant's catalog, assigning its id.
func (r *RestaurantRepository) AddMeal(ctx context.Context, restaurantID string, meal types.Meal) (types.Meal, error) {
	oid, err := primitive.ObjectIDFromHex(restaurantID)
	if err != nil {
		return types.Meal{}, ErrNotFound
	}
	meal.ID = primitive.NewObjectID()

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"meals": meal}})
	if err != nil {
		return types.Meal{}, err
	}
	if result.MatchedCount == 0 {
		return types.Meal{}, ErrNotFound
	}
	return meal, nil
}

// RemoveMeal deletes a meal from the restaurant's catalog.
func (r *RestaurantRepository) RemoveMeal(ctx context.Context, restaurantID, mealID string) error {
	oid, err := primitive.ObjectIDFromHex(restaurantID)
	if err != nil {
		return ErrNotFound
	}
	mealOID, err := primitive.ObjectIDFromHex(mealID)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$pull": bson.M{"meals": bson.M{"_id": mealOID}}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRating sets the restaurant's average review rating.
func (r *RestaurantRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"rating": rating}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
