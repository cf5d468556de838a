package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/deliverease/apiserver/internal/store"
	"github.com/deliverease/apiserver/types"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	ListForRestaurant(ctx context.Context, restaurantID string) ([]types.Review, error)
	Get(ctx context.Context, id string) (types.Review, error)
	Insert(ctx context.Context, review types.Review) (types.Review, error)
	Delete(ctx context.Context, id string) error
}

// RestaurantDirectory resolves restaurants and receives recomputed ratings.
type RestaurantDirectory interface {
	Get(ctx context.Context, id string) (types.Restaurant, error)
	UpdateRating(ctx context.Context, id string, rating float64) error
}

// ReviewService encapsulates review use-cases. Writing or removing a review
// recomputes the restaurant's average rating.
type ReviewService struct {
	repo        ReviewRepository
	restaurants RestaurantDirectory
}

func NewReviewService(repo ReviewRepository, restaurants RestaurantDirectory) *ReviewService {
	return &ReviewService{repo: repo, restaurants: restaurants}
}

func (s *ReviewService) ListForRestaurant(ctx context.Context, restaurantID string) ([]types.Review, error) {
	return s.repo.ListForRestaurant(ctx, restaurantID)
}

func (s *ReviewService) Get(ctx context.Context, id string) (types.Review, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the restaurant reference, stores the review and refreshes
// the restaurant's average rating. Fails with ErrReferenceNotFound, writing
// nothing, when the restaurant does not exist.
func (s *ReviewService) Create(ctx context.Context, review types.Review) (types.Review, error) {
	if _, err := s.restaurants.Get(ctx, review.RestaurantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Review{}, fmt.Errorf("%w: restaurant %s", ErrReferenceNotFound, review.RestaurantID)
		}
		return types.Review{}, err
	}

	created, err := s.repo.Insert(ctx, review)
	if err != nil {
		return types.Review{}, err
	}

	if err := s.refreshRating(ctx, review.RestaurantID); err != nil {
		return types.Review{}, err
	}
	return created, nil
}

// Delete removes the review and refreshes the restaurant's average rating.
// The rating refresh is skipped when the restaurant is already gone.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	review, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.refreshRating(ctx, review.RestaurantID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

func (s *ReviewService) refreshRating(ctx context.Context, restaurantID string) error {
	reviews, err := s.repo.ListForRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}

	rating := 0.0
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
		}
		rating = float64(total) / float64(len(reviews))
	}
	return s.restaurants.UpdateRating(ctx, restaurantID, rating)
}
