package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deliverease/apiserver/internal/store"
	"github.com/deliverease/apiserver/types"
	"github.com/golang-jwt/jwt/v5"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Insert(ctx context.Context, user types.User) (types.User, error)
	Replace(ctx context.Context, id string, user types.User) error
	Delete(ctx context.Context, id string) error
}

// UserService owns user identity records and issues session tokens. The
// signing key is fixed for the lifetime of the process and is safe for
// concurrent reads.
type UserService struct {
	repo     UserRepository
	hasher   PasswordHasher
	secret   []byte
	tokenTTL time.Duration
}

func NewUserService(repo UserRepository, hasher PasswordHasher, secret []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Register creates a new user account. The supplied password is hashed; the
// store assigns the identifier. Fails with ErrDuplicateEmail, writing
// nothing, when the email is already registered.
func (s *UserService) Register(ctx context.Context, user types.User, password string) (types.User, error) {
	_, err := s.repo.GetByEmail(ctx, user.Email)
	if err == nil {
		return types.User{}, ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return types.User{}, err
	}
	user.PasswordHash = hashed

	return s.repo.Insert(ctx, user)
}

// Login authenticates the email/password pair and mints a signed session
// token whose subject is the user's identifier. Fails with
// ErrInvalidCredentials when either part does not match.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user.ID.Hex())
}

// IssueToken mints an HS256 token with the given subject, expiring
// tokenTTL from now.
func (s *UserService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken checks signature and expiration and returns the subject.
func (s *UserService) VerifyToken(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("missing subject")
	}
	return claims.Subject, nil
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Update replaces the user record wholesale. When password is empty the
// stored hash is kept, otherwise the new password is hashed and stored.
func (s *UserService) Update(ctx context.Context, id string, user types.User, password string) (types.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	if password == "" {
		user.PasswordHash = existing.PasswordHash
	} else {
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = hashed
	}
	user.ID = existing.ID
	user.CreatedAt = existing.CreatedAt

	if err := s.repo.Replace(ctx, id, user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// Delete removes the user record. Nothing references users elsewhere, so no
// cascade is attempted.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
