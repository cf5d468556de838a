package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/deliverease/apiserver/internal/services"
	"github.com/deliverease/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
)

// OrderHandler provides HTTP handlers for orders.
type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderRouter registers order routes on the given router. All order routes
// require authentication.
func OrderRouter(r chi.Router, orderService *services.OrderService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewOrderHandler(orderService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListOrders)
	r.Post("/", handler.CreateOrder)
	r.Route("/{orderID}", func(r chi.Router) {
		r.Get("/", handler.GetOrder)
		r.Put("/", handler.UpdateOrder)
		r.Delete("/", handler.DeleteOrder)
	})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))

	var err error
	var orders any
	if userID != "" {
		orders, err = h.orderService.ListForUser(r.Context(), userID)
	} else {
		orders, err = h.orderService.List(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.RestaurantID = strings.TrimSpace(req.RestaurantID)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.RestaurantID == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	orderID, err := h.orderService.Create(r.Context(), req.RestaurantID, req.UserID, req.MealIDs)
	if err != nil {
		if errors.Is(err, services.ErrReferenceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, CreateOrderResponse{ID: orderID})
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.orderService.Update(r.Context(), id, req.MealIDs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		if errors.Is(err, services.ErrReferenceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type CreateOrderRequest struct {
	RestaurantID string   `json:"restaurant_id"`
	UserID       string   `json:"user_id"`
	MealIDs      []string `json:"meal_ids"`
}

type CreateOrderResponse struct {
	ID string `json:"id"`
}

type UpdateOrderRequest struct {
	MealIDs []string `json:"meal_ids"`
}
