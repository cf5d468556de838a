package services

import (
	"context"
	"testing"
	"time"

	"github.com/deliverease/apiserver/internal/store"
	"github.com/deliverease/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeOrderRepo struct {
	orders  map[string]types.Order
	inserts int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]types.Order)}
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]types.Order, error) {
	orders := make([]types.Order, 0, len(f.orders))
	for _, order := range f.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (f *fakeOrderRepo) ListForUser(ctx context.Context, userID string) ([]types.Order, error) {
	var orders []types.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) Get(ctx context.Context, id string) (types.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return types.Order{}, store.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) Insert(ctx context.Context, order types.Order) (string, error) {
	order.ID = primitive.NewObjectID()
	f.orders[order.ID.Hex()] = order
	f.inserts++
	return order.ID.Hex(), nil
}

func (f *fakeOrderRepo) ReplaceFields(ctx context.Context, id string, meals []types.Meal, quantity int, totalPrice float64, orderTime time.Time) error {
	order, ok := f.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	order.Meals = meals
	order.Quantity = quantity
	order.TotalPrice = totalPrice
	order.OrderTime = orderTime
	f.orders[id] = order
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	delete(f.orders, id)
	return nil
}

type fakeMenus struct {
	restaurants map[string]types.Restaurant
}

func (f *fakeMenus) Get(ctx context.Context, id string) (types.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return types.Restaurant{}, store.ErrNotFound
	}
	return restaurant, nil
}

func (f *fakeMenus) Meals(ctx context.Context, restaurantID string) ([]types.Meal, error) {
	restaurant, ok := f.restaurants[restaurantID]
	if !ok {
		return nil, nil
	}
	return restaurant.Meals, nil
}

type fakeDirectory struct {
	users map[string]types.User
}

func (f *fakeDirectory) GetByID(ctx context.Context, id string) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func newMeal(name string, price float64) types.Meal {
	return types.Meal{ID: primitive.NewObjectID(), Name: name, Price: price}
}

// orderFixture seeds one restaurant with margherita (5.0) and pad thai (7.5)
// and one user, mirroring the smallest interesting catalog.
func orderFixture(t *testing.T) (*OrderService, *fakeOrderRepo, *fakeMenus, string, string, types.Meal, types.Meal) {
	t.Helper()

	m1 := newMeal("margherita", 5.0)
	m2 := newMeal("pad thai", 7.5)
	restaurant := types.Restaurant{
		ID:    primitive.NewObjectID(),
		Name:  "R1",
		Meals: []types.Meal{m1, m2},
	}
	user := types.User{ID: primitive.NewObjectID(), Email: "u1@example.com"}

	repo := newFakeOrderRepo()
	menus := &fakeMenus{restaurants: map[string]types.Restaurant{restaurant.ID.Hex(): restaurant}}
	directory := &fakeDirectory{users: map[string]types.User{user.ID.Hex(): user}}

	svc := NewOrderService(repo, menus, directory)
	return svc, repo, menus, restaurant.ID.Hex(), user.ID.Hex(), m1, m2
}

func TestCreateOrderComputesAggregates(t *testing.T) {
	svc, repo, _, restaurantID, userID, m1, m2 := orderFixture(t)

	before := time.Now()
	id, err := svc.Create(context.Background(), restaurantID, userID, []string{m1.ID.Hex(), m2.ID.Hex()})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, restaurantID, order.RestaurantID)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, 2, order.Quantity)
	assert.InDelta(t, 12.5, order.TotalPrice, 1e-9)
	assert.Len(t, order.Meals, order.Quantity)
	assert.False(t, order.OrderTime.Before(before))
}

func TestCreateOrderUnknownMealFailsWholeOrder(t *testing.T) {
	svc, repo, _, restaurantID, userID, m1, m2 := orderFixture(t)

	_, err := svc.Create(context.Background(), restaurantID, userID,
		[]string{m1.ID.Hex(), m2.ID.Hex(), primitive.NewObjectID().Hex()})
	require.ErrorIs(t, err, ErrReferenceNotFound)

	// All-or-nothing: nothing was written.
	assert.Zero(t, repo.inserts)
	assert.Empty(t, repo.orders)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	svc, repo, _, restaurantID, _, m1, _ := orderFixture(t)

	_, err := svc.Create(context.Background(), restaurantID, primitive.NewObjectID().Hex(), []string{m1.ID.Hex()})
	require.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Zero(t, repo.inserts)
}

func TestCreateOrderUnknownRestaurantActsAsEmptyCatalog(t *testing.T) {
	svc, repo, _, _, userID, m1, _ := orderFixture(t)

	// Unknown restaurant yields an empty catalog, so any requested meal id
	// fails to resolve.
	_, err := svc.Create(context.Background(), primitive.NewObjectID().Hex(), userID, []string{m1.ID.Hex()})
	require.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Zero(t, repo.inserts)
}

func TestCreateOrderEmptyMealList(t *testing.T) {
	svc, repo, _, restaurantID, userID, _, _ := orderFixture(t)

	id, err := svc.Create(context.Background(), restaurantID, userID, nil)
	require.NoError(t, err)

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Zero(t, order.Quantity)
	assert.Zero(t, order.TotalPrice)
	assert.Empty(t, order.Meals)
}

func TestCreateOrderSnapshotsMealPrices(t *testing.T) {
	svc, repo, menus, restaurantID, userID, m1, m2 := orderFixture(t)

	id, err := svc.Create(context.Background(), restaurantID, userID, []string{m1.ID.Hex(), m2.ID.Hex()})
	require.NoError(t, err)

	// Reprice the catalog after the fact; the recorded order must not move.
	restaurant := menus.restaurants[restaurantID]
	restaurant.Meals[0].Price = 100.0
	menus.restaurants[restaurantID] = restaurant

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, order.TotalPrice, 1e-9)
	assert.InDelta(t, 5.0, order.Meals[0].Price, 1e-9)
}

func TestUpdateOrderRecomputesAggregates(t *testing.T) {
	svc, repo, _, restaurantID, userID, m1, m2 := orderFixture(t)

	id, err := svc.Create(context.Background(), restaurantID, userID, []string{m1.ID.Hex(), m2.ID.Hex()})
	require.NoError(t, err)
	created, err := repo.Get(context.Background(), id)
	require.NoError(t, err)

	require.NoError(t, svc.Update(context.Background(), id, []string{m2.ID.Hex()}))

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, order.Quantity)
	assert.InDelta(t, 7.5, order.TotalPrice, 1e-9)
	assert.False(t, order.OrderTime.Before(created.OrderTime))

	// Identifier and references never change on update.
	assert.Equal(t, created.ID, order.ID)
	assert.Equal(t, created.RestaurantID, order.RestaurantID)
	assert.Equal(t, created.UserID, order.UserID)
}

// Update drops meal ids that no longer resolve instead of failing, unlike
// Create. The asymmetry is deliberate and pinned here.
func TestUpdateOrderDropsUnresolvedMeals(t *testing.T) {
	svc, repo, _, restaurantID, userID, m1, m2 := orderFixture(t)

	id, err := svc.Create(context.Background(), restaurantID, userID, []string{m1.ID.Hex()})
	require.NoError(t, err)

	err = svc.Update(context.Background(), id, []string{m1.ID.Hex(), m2.ID.Hex(), primitive.NewObjectID().Hex()})
	require.NoError(t, err)

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, order.Quantity)
	assert.InDelta(t, 12.5, order.TotalPrice, 1e-9)
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc, _, _, _, _, m1, _ := orderFixture(t)

	err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), []string{m1.ID.Hex()})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateOrderRestaurantGone(t *testing.T) {
	svc, _, menus, restaurantID, userID, m1, _ := orderFixture(t)

	id, err := svc.Create(context.Background(), restaurantID, userID, []string{m1.ID.Hex()})
	require.NoError(t, err)

	delete(menus.restaurants, restaurantID)

	err = svc.Update(context.Background(), id, []string{m1.ID.Hex()})
	require.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestDeleteOrderIdempotent(t *testing.T) {
	svc, repo, _, restaurantID, userID, m1, _ := orderFixture(t)

	id, err := svc.Create(context.Background(), restaurantID, userID, []string{m1.ID.Hex()})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))
	_, err = repo.Get(context.Background(), id)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting an id that no longer exists is a no-op, not an error.
	require.NoError(t, svc.Delete(context.Background(), id))
}

func TestListOrdersForUser(t *testing.T) {
	svc, _, _, restaurantID, userID, m1, _ := orderFixture(t)

	_, err := svc.Create(context.Background(), restaurantID, userID, []string{m1.ID.Hex()})
	require.NoError(t, err)

	orders, err := svc.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = svc.ListForUser(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
