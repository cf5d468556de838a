package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is the central aggregate of the system. It references its user and
// restaurant by identifier and carries denormalized meal snapshots.
//
// Quantity and TotalPrice are derived fields: after every create or update,
// Quantity == len(Meals) and TotalPrice == the sum of the snapshot prices.
// They are recomputed together with the meal list and never written
// independently.
type Order struct {
	// ID is the unique identifier of the order, assigned by the store.
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// RestaurantID identifies the restaurant the order was placed with.
	RestaurantID string `json:"restaurant_id" bson:"restaurant_id"`

	// UserID identifies the user who placed the order.
	UserID string `json:"user_id" bson:"user_id"`

	// Meals holds value copies of the ordered meals as they existed in the
	// restaurant's catalog at order time. Later menu price changes must not
	// retroactively alter historical orders.
	Meals []Meal `json:"meals" bson:"meals"`

	// Quantity is the number of meal line items on the order.
	Quantity int `json:"quantity" bson:"quantity"`

	// TotalPrice is the sum of the snapshot prices of Meals.
	TotalPrice float64 `json:"total_price" bson:"total_price"`

	// OrderTime is the instant the order was created or last updated.
	OrderTime time.Time `json:"order_time" bson:"order_time"`
}
