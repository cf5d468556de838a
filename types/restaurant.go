package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Restaurant represents a restaurant and its current meal catalog.
type Restaurant struct {
	// ID is the unique identifier of the restaurant, assigned by the store.
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Name is the restaurant's display name.
	Name string `json:"name" bson:"name"`

	// Address is the restaurant's street address.
	Address string `json:"address" bson:"address"`

	// Cuisine is a free-form label for the kind of food served.
	Cuisine string `json:"cuisine" bson:"cuisine"`

	// Rating is the average of all review ratings for this restaurant.
	// Recomputed whenever a review is written or removed.
	Rating float64 `json:"rating" bson:"rating"`

	// Meals is the restaurant's current catalog. Meals are embedded in the
	// restaurant document; they exist nowhere else.
	Meals []Meal `json:"meals" bson:"meals"`
}

// Meal is a single catalog entry belonging to exactly one restaurant.
//
// Orders copy meals by value at order time (see Order.Meals), so later
// catalog edits never alter meals already recorded on an order.
type Meal struct {
	// ID is the unique identifier of the meal within its restaurant.
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Name is the meal's display name.
	Name string `json:"name" bson:"name"`

	// Description is an optional free-form description.
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// Price is the meal's price. Non-negative.
	Price float64 `json:"price" bson:"price"`
}
