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

const ordersCollection = "Orders"

// OrderRepository handles persistence for orders.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(database *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: database.Collection(ordersCollection)}
}

func (r *OrderRepository) List(ctx context.Context) ([]types.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var orders []types.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID string) ([]types.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var orders []types.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (types.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return types.Order{}, ErrNotFound
	}
	var order types.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Order{}, ErrNotFound
		}
		return types.Order{}, err
	}
	return order, nil
}

// Insert stores a new order and returns the assigned identifier.
func (r *OrderRepository) Insert(ctx context.Context, order types.Order) (string, error) {
	order.ID = primitive.NilObjectID

	result, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return "", err
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ReplaceFields overwrites the derived fields of an existing order in a
// single document write. Identifier and user/restaurant references are
// untouched.
func (r *OrderRepository) ReplaceFields(ctx context.Context, id string, meals []types.Meal, quantity int, totalPrice float64, orderTime time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"meals":       meals,
		"quantity":    quantity,
		"total_price": totalPrice,
		"order_time":  orderTime,
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

// Delete removes an order by identifier. Deleting an unknown id is a no-op.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
