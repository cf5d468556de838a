package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user, assigned by the store.
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Name is the user's display or full name.
	Name string `json:"name" bson:"name"`

	// Username is the login name chosen by the user.
	Username string `json:"username" bson:"username"`

	// Email is the user's email address. Unique across all users.
	Email string `json:"email" bson:"email"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" bson:"password_hash"`

	// Role indicates the user's authorization level within the system
	// (e.g., "admin", "customer").
	Role string `json:"role" bson:"role"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
