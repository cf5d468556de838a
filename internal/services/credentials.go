package services

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher abstracts how passwords are stored and verified, so the
// comparison scheme can be swapped without touching the rest of the engine.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare reports whether password matches the stored representation.
	Compare(stored, password string) bool
}

// BcryptHasher stores salted bcrypt hashes. This is the default.
type BcryptHasher struct {
	// Cost is the bcrypt cost parameter. Zero means bcrypt.DefaultCost.
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// PlainHasher stores and compares passwords verbatim. It exists only for
// data written by deployments that predate hashing; do not use it for new
// installations.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

const signingKeySize = 64

// GenerateSigningKey returns a random symmetric signing key. A key generated
// at startup is never persisted, so restarting the process invalidates all
// previously issued tokens.
func GenerateSigningKey() []byte {
	key := make([]byte, signingKeySize)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return key
}
