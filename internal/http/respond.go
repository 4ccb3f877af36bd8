package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/repository"
	"github.com/ShababulAlam/quantum-ecommerce/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// serviceError translates a service error into a status code and the single
// human-readable reason the client sees. Unknown errors become a generic 500;
// the specifics only go to the log.
func serviceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	type mapping struct {
		status  int
		message string
	}

	known := []struct {
		err error
		m   mapping
	}{
		{service.ErrNoIdentity, mapping{http.StatusUnauthorized, "No user or session identified"}},
		{service.ErrProductNotFound, mapping{http.StatusNotFound, "Product not found"}},
		{service.ErrVariantNotFound, mapping{http.StatusNotFound, "Variant not found"}},
		{service.ErrProductUnavailable, mapping{http.StatusBadRequest, "Product is not available"}},
		{service.ErrInsufficientInventory, mapping{http.StatusBadRequest, "Not enough inventory available"}},
		{service.ErrItemNotFound, mapping{http.StatusNotFound, "Cart item not found or access denied"}},
		{service.ErrInvalidQuantity, mapping{http.StatusBadRequest, "Quantity must be at least 1"}},
		{service.ErrEmptyCart, mapping{http.StatusBadRequest, "Cart is empty"}},
		{service.ErrMissingCheckoutInput, mapping{http.StatusBadRequest, "Shipping address and payment method are required"}},
		{service.ErrMissingAddressFields, mapping{http.StatusBadRequest, "Street, city, postal code and country are required"}},
		{service.ErrMissingCardDetails, mapping{http.StatusBadRequest, "Card number, expiry and cvc are required"}},
		{service.ErrInvalidAddress, mapping{http.StatusBadRequest, "Invalid address"}},
		{service.ErrPaymentFailed, mapping{http.StatusBadRequest, "Payment could not be processed"}},
		{service.ErrOrderNotFound, mapping{http.StatusNotFound, "Order not found"}},
		{service.ErrPromoNotFound, mapping{http.StatusNotFound, "Invalid promotion code"}},
		{service.ErrPromoInactive, mapping{http.StatusBadRequest, "This promotion code is not active"}},
		{service.ErrPromoNotStarted, mapping{http.StatusBadRequest, "This promotion code is not valid yet"}},
		{service.ErrPromoExpired, mapping{http.StatusBadRequest, "This promotion code has expired"}},
		{service.ErrPromoUsageLimit, mapping{http.StatusBadRequest, "This promotion code has reached its usage limit"}},
		{service.ErrPromoBelowMinimum, mapping{http.StatusBadRequest, "Cart total does not meet the minimum amount for this code"}},
		{repository.ErrDuplicateSlug, mapping{http.StatusConflict, "A product with this slug already exists"}},
		{repository.ErrDuplicateCode, mapping{http.StatusConflict, "A promotion code with this code already exists"}},
	}

	for _, k := range known {
		if errors.Is(err, k.err) {
			respondError(w, k.m.status, k.m.message)
			return
		}
	}

	logger.Error("internal error", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
