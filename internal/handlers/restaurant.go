package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/deliverease/apiserver/internal/services"
	"github.com/deliverease/apiserver/internal/store"
	"github.com/deliverease/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// RestaurantHandler provides HTTP handlers for restaurants and catalogs.
type RestaurantHandler struct {
	restaurantService *services.RestaurantService
}

func NewRestaurantHandler(restaurantService *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// RestaurantRouter registers restaurant routes on the given router.
// Reads are public; writes require authentication.
func RestaurantRouter(r chi.Router, restaurantService *services.RestaurantService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewRestaurantHandler(restaurantService)

	r.Get("/", handler.ListRestaurants)
	r.With(authMiddleware).Post("/", handler.CreateRestaurant)
	r.Route("/{restaurantID}", func(r chi.Router) {
		r.Get("/", handler.GetRestaurant)
		r.With(authMiddleware).Put("/", handler.UpdateRestaurant)
		r.With(authMiddleware).Delete("/", handler.DeleteRestaurant)
		r.Route("/meals", func(r chi.Router) {
			r.Get("/", handler.ListMeals)
			r.With(authMiddleware).Post("/", handler.AddMeal)
			r.Get("/{mealID}", handler.GetMeal)
			r.With(authMiddleware).Delete("/{mealID}", handler.RemoveMeal)
		})
	})
}

func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurantService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list restaurants")
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")

	restaurant, err := h.restaurantService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "restaurant not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch restaurant")
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *RestaurantHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	req, err := parseRestaurantPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.restaurantService.Create(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create restaurant")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RestaurantHandler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")

	req, err := parseRestaurantPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.restaurantService.Update(r.Context(), id, req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "restaurant not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update restaurant")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RestaurantHandler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")

	if err := h.restaurantService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "restaurant not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete restaurant")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RestaurantHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")

	meals, err := h.restaurantService.Meals(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list meals")
		return
	}
	if meals == nil {
		meals = []types.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (h *RestaurantHandler) GetMeal(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantID")
	mealID := chi.URLParam(r, "mealID")

	meal, err := h.restaurantService.GetMeal(r.Context(), restaurantID, mealID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "meal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch meal")
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (h *RestaurantHandler) AddMeal(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantID")

	var req MealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}

	meal, err := h.restaurantService.AddMeal(r.Context(), restaurantID, types.Meal{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "restaurant not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add meal")
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

func (h *RestaurantHandler) RemoveMeal(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantID")
	mealID := chi.URLParam(r, "mealID")

	if err := h.restaurantService.RemoveMeal(r.Context(), restaurantID, mealID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "meal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove meal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MealRequest is the payload for adding a catalog meal.
type MealRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func parseRestaurantPayload(r *http.Request) (types.Restaurant, error) {
	var req struct {
		Name    string  `json:"name"`
		Address string  `json:"address"`
		Cuisine string  `json:"cuisine"`
		Rating  float64 `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return types.Restaurant{}, errors.New("invalid request")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return types.Restaurant{}, errors.New("name is required")
	}

	return types.Restaurant{
		Name:    req.Name,
		Address: strings.TrimSpace(req.Address),
		Cuisine: strings.TrimSpace(req.Cuisine),
		Rating:  req.Rating,
	}, nil
}
