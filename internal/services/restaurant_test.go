package services

import (
	"context"
	"testing"

	"github.com/deliverease/apiserver/internal/store"
	"github.com/deliverease/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRestaurantRepo struct {
	restaurants map[string]types.Restaurant
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{restaurants: make(map[string]types.Restaurant)}
}

func (f *fakeRestaurantRepo) List(ctx context.Context) ([]types.Restaurant, error) {
	restaurants := make([]types.Restaurant, 0, len(f.restaurants))
	for _, restaurant := range f.restaurants {
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}

func (f *fakeRestaurantRepo) Get(ctx context.Context, id string) (types.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return types.Restaurant{}, store.ErrNotFound
	}
	return restaurant, nil
}

func (f *fakeRestaurantRepo) Insert(ctx context.Context, restaurant types.Restaurant) (types.Restaurant, error) {
	restaurant.ID = primitive.NewObjectID()
	f.restaurants[restaurant.ID.Hex()] = restaurant
	return restaurant, nil
}

func (f *fakeRestaurantRepo) Replace(ctx context.Context, id string, restaurant types.Restaurant) error {
	existing, ok := f.restaurants[id]
	if !ok {
		return store.ErrNotFound
	}
	existing.Name = restaurant.Name
	existing.Address = restaurant.Address
	existing.Cuisine = restaurant.Cuisine
	existing.Rating = restaurant.Rating
	f.restaurants[id] = existing
	return nil
}

func (f *fakeRestaurantRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.restaurants[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.restaurants, id)
	return nil
}

func (f *fakeRestaurantRepo) AddMeal(ctx context.Context, restaurantID string, meal types.Meal) (types.Meal, error) {
	restaurant, ok := f.restaurants[restaurantID]
	if !ok {
		return types.Meal{}, store.ErrNotFound
	}
	meal.ID = primitive.NewObjectID()
	restaurant.Meals = append(restaurant.Meals, meal)
	f.restaurants[restaurantID] = restaurant
	return meal, nil
}

func (f *fakeRestaurantRepo) RemoveMeal(ctx context.Context, restaurantID, mealID string) error {
	restaurant, ok := f.restaurants[restaurantID]
	if !ok {
		return store.ErrNotFound
	}
	for i, meal := range restaurant.Meals {
		if meal.ID.Hex() == mealID {
			restaurant.Meals = append(restaurant.Meals[:i], restaurant.Meals[i+1:]...)
			f.restaurants[restaurantID] = restaurant
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeRestaurantRepo) UpdateRating(ctx context.Context, id string, rating float64) error {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return store.ErrNotFound
	}
	restaurant.Rating = rating
	f.restaurants[id] = restaurant
	return nil
}

func TestMealsUnknownRestaurantYieldsEmptyCatalog(t *testing.T) {
	svc := NewRestaurantService(newFakeRestaurantRepo())

	meals, err := svc.Meals(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestMealLookup(t *testing.T) {
	repo := newFakeRestaurantRepo()
	svc := NewRestaurantService(repo)

	restaurant, err := svc.Create(context.Background(), types.Restaurant{Name: "R1"})
	require.NoError(t, err)

	meal, err := svc.AddMeal(context.Background(), restaurant.ID.Hex(), types.Meal{Name: "margherita", Price: 5.0})
	require.NoError(t, err)
	require.False(t, meal.ID.IsZero())

	got, err := svc.GetMeal(context.Background(), restaurant.ID.Hex(), meal.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, meal, got)

	_, err = svc.GetMeal(context.Background(), restaurant.ID.Hex(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemoveMealShrinksCatalog(t *testing.T) {
	repo := newFakeRestaurantRepo()
	svc := NewRestaurantService(repo)

	restaurant, err := svc.Create(context.Background(), types.Restaurant{Name: "R1"})
	require.NoError(t, err)
	meal, err := svc.AddMeal(context.Background(), restaurant.ID.Hex(), types.Meal{Name: "margherita", Price: 5.0})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMeal(context.Background(), restaurant.ID.Hex(), meal.ID.Hex()))

	meals, err := svc.Meals(context.Background(), restaurant.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, meals)
}
