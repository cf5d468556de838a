package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user's rating of a restaurant.
type Review struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RestaurantID string             `json:"restaurant_id" bson:"restaurant_id"`
	UserID       string             `json:"user_id" bson:"user_id"`

	// Rating is an integer score from 1 to 5.
	Rating int `json:"rating" bson:"rating"`

	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
