package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

type OrderReader interface {
	ListForUser(ctx context.Context, userID string) ([]*domain.Order, error)
	GetForUser(ctx context.Context, orderID, userID string) (*domain.Order, error)
}

type OrdersHandler struct {
	orders OrderReader
	logger *zap.Logger
}

func NewOrdersHandler(orders OrderReader, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{orders: orders, logger: logger}
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "You must be logged in to view orders")
		return
	}

	orders, err := h.orders.ListForUser(r.Context(), user.ID)
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "You must be logged in to view orders")
		return
	}

	order, err := h.orders.GetForUser(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
