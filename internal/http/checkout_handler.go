package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/service"
)

type Checkouter interface {
	Checkout(ctx context.Context, userID string, req *service.CheckoutRequest) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkout Checkouter
	logger   *zap.Logger
}

func NewCheckoutHandler(checkout Checkouter, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

type CheckoutResponseDTO struct {
	Order OrderSummaryDTO `json:"order"`
}

type OrderSummaryDTO struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Checkout places an order from the caller's cart. Guests must log in first.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "You must be logged in to checkout")
		return
	}

	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order, err := h.checkout.Checkout(r.Context(), user.ID, &req)
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{
		Order: OrderSummaryDTO{
			ID:        order.ID,
			Number:    order.Number,
			Total:     order.Total,
			Status:    string(order.Status),
			CreatedAt: order.CreatedAt,
		},
	})
}
