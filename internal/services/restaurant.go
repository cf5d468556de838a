package services

import (
	"context"
	"errors"

	"github.com/deliverease/apiserver/internal/store"
	"github.com/deliverease/apiserver/types"
)

// RestaurantRepository defines persistence operations for restaurants.
type RestaurantRepository interface {
	List(ctx context.Context) ([]types.Restaurant, error)
	Get(ctx context.Context, id string) (types.Restaurant, error)
	Insert(ctx context.Context, restaurant types.Restaurant) (types.Restaurant, error)
	Replace(ctx context.Context, id string, restaurant types.Restaurant) error
	Delete(ctx context.Context, id string) error
	AddMeal(ctx context.Context, restaurantID string, meal types.Meal) (types.Meal, error)
	RemoveMeal(ctx context.Context, restaurantID, mealID string) error
	UpdateRating(ctx context.Context, id string, rating float64) error
}

// RestaurantService encapsulates restaurant and catalog use-cases. It also
// serves as the menu resolver for the order engine.
type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) List(ctx context.Context) ([]types.Restaurant, error) {
	return s.repo.List(ctx)
}

func (s *RestaurantService) Get(ctx context.Context, id string) (types.Restaurant, error) {
	return s.repo.Get(ctx, id)
}

func (s *RestaurantService) Create(ctx context.Context, restaurant types.Restaurant) (types.Restaurant, error) {
	return s.repo.Insert(ctx, restaurant)
}

func (s *RestaurantService) Update(ctx context.Context, id string, restaurant types.Restaurant) error {
	return s.repo.Replace(ctx, id, restaurant)
}

func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Meals returns the restaurant's current catalog. An unknown restaurant
// yields an empty catalog rather than an error, so callers see "no meals
// resolve" identically whether the restaurant is missing or simply empty.
func (s *RestaurantService) Meals(ctx context.Context, restaurantID string) ([]types.Meal, error) {
	restaurant, err := s.repo.Get(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return restaurant.Meals, nil
}

// GetMeal looks a single meal up in the restaurant's catalog.
func (s *RestaurantService) GetMeal(ctx context.Context, restaurantID, mealID string) (types.Meal, error) {
	meals, err := s.Meals(ctx, restaurantID)
	if err != nil {
		return types.Meal{}, err
	}
	if meal, ok := findMeal(meals, mealID); ok {
		return meal, nil
	}
	return types.Meal{}, store.ErrNotFound
}

func (s *RestaurantService) AddMeal(ctx context.Context, restaurantID string, meal types.Meal) (types.Meal, error) {
	return s.repo.AddMeal(ctx, restaurantID, meal)
}

func (s *RestaurantService) RemoveMeal(ctx context.Context, restaurantID, mealID string) error {
	return s.repo.RemoveMeal(ctx, restaurantID, mealID)
}

// UpdateRating sets the restaurant's average review rating.
func (s *RestaurantService) UpdateRating(ctx context.Context, id string, rating float64) error {
	return s.repo.UpdateRating(ctx, id, rating)
}
