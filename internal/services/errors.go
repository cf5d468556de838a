package services

import "errors"

// Typed failure reasons surfaced to the boundary layer. Every engine
// operation fails with exactly one of these (or store.ErrNotFound for an
// unresolved order id); there is no generic catch-all.
var (
	// ErrDuplicateEmail is returned by Register when a user with the same
	// email already exists.
	ErrDuplicateEmail = errors.New("email is already taken")

	// ErrInvalidCredentials is returned by Login when no user matches the
	// submitted email and password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrReferenceNotFound is returned when a referenced meal, restaurant or
	// user identifier does not resolve against its collection.
	ErrReferenceNotFound = errors.New("referenced id not found")
)
