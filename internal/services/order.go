package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deliverease/apiserver/internal/store"
	"github.com/deliverease/apiserver/types"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	List(ctx context.Context) ([]types.Order, error)
	ListForUser(ctx context.Context, userID string) ([]types.Order, error)
	Get(ctx context.Context, id string) (types.Order, error)
	Insert(ctx context.Context, order types.Order) (string, error)
	ReplaceFields(ctx context.Context, id string, meals []types.Meal, quantity int, totalPrice float64, orderTime time.Time) error
	Delete(ctx context.Context, id string) error
}

// MenuResolver provides read access to restaurants and their current meal
// catalogs. The engine never writes through it.
type MenuResolver interface {
	Get(ctx context.Context, id string) (types.Restaurant, error)
	// Meals returns the restaurant's current catalog. An unknown restaurant
	// yields an empty catalog, not an error.
	Meals(ctx context.Context, restaurantID string) ([]types.Meal, error)
}

// UserDirectory resolves purchaser identifiers.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (types.User, error)
}

// OrderService builds and maintains order aggregates. The store enforces no
// referential integrity across collections, so the engine validates every
// referenced identifier before it writes anything. The multi-step check is
// not transactional: concurrent updates to the same order are
// last-writer-wins.
type OrderService struct {
	repo        OrderRepository
	restaurants MenuResolver
	users       UserDirectory
}

func NewOrderService(repo OrderRepository, restaurants MenuResolver, users UserDirectory) *OrderService {
	return &OrderService{
		repo:        repo,
		restaurants: restaurants,
		users:       users,
	}
}

func (s *OrderService) List(ctx context.Context) ([]types.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]types.Order, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *OrderService) GetByID(ctx context.Context, id string) (types.Order, error) {
	return s.repo.Get(ctx, id)
}

// Create validates every referenced identifier and persists a new order in a
// single document write. All meal ids must resolve against the restaurant's
// current catalog and the user id must resolve in the directory; any miss
// fails the whole operation with ErrReferenceNotFound before anything is
// written. Meals are copied into the order by value so later catalog changes
// cannot alter it. Returns the assigned order id.
func (s *OrderService) Create(ctx context.Context, restaurantID, userID string, mealIDs []string) (string, error) {
	catalog, err := s.restaurants.Meals(ctx, restaurantID)
	if err != nil {
		return "", err
	}

	meals := make([]types.Meal, 0, len(mealIDs))
	totalPrice := 0.0
	for _, mealID := range mealIDs {
		meal, ok := findMeal(catalog, mealID)
		if !ok {
			return "", fmt.Errorf("%w: meal %s", ErrReferenceNotFound, mealID)
		}
		meals = append(meals, meal)
		totalPrice += meal.Price
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%w: user %s", ErrReferenceNotFound, userID)
		}
		return "", err
	}

	order := types.Order{
		RestaurantID: restaurantID,
		UserID:       userID,
		Meals:        meals,
		Quantity:     len(meals),
		TotalPrice:   totalPrice,
		OrderTime:    time.Now(),
	}
	return s.repo.Insert(ctx, order)
}

// Update replaces the order's meal list and recomputes quantity, total price
// and order time against the current catalog of the order's own restaurant.
// Meal ids that no longer resolve are silently dropped, unlike Create.
// Fails with store.ErrNotFound when the order is unknown and with
// ErrReferenceNotFound when its restaurant no longer exists.
func (s *OrderService) Update(ctx context.Context, id string, mealIDs []string) error {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	restaurant, err := s.restaurants.Get(ctx, order.RestaurantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: restaurant %s", ErrReferenceNotFound, order.RestaurantID)
		}
		return err
	}

	meals := make([]types.Meal, 0, len(mealIDs))
	totalPrice := 0.0
	for _, mealID := range mealIDs {
		meal, ok := findMeal(restaurant.Meals, mealID)
		if !ok {
			continue
		}
		meals = append(meals, meal)
		totalPrice += meal.Price
	}

	return s.repo.ReplaceFields(ctx, id, meals, len(meals), totalPrice, time.Now())
}

// Delete removes the order unconditionally. Unknown ids are a no-op.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func findMeal(catalog []types.Meal, mealID string) (types.Meal, bool) {
	for _, meal := range catalog {
		if meal.ID.Hex() == mealID {
			return meal, true
		}
	}
	return types.Meal{}, false
}
