package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/service"
)

type stubCheckouter struct {
	order     *domain.Order
	err       error
	gotUserID string
	gotReq    *service.CheckoutRequest
}

func (s *stubCheckouter) Checkout(_ context.Context, userID string, req *service.CheckoutRequest) (*domain.Order, error) {
	s.gotUserID = userID
	s.gotReq = req
	return s.order, s.err
}

func postCheckout(t *testing.T, stub *stubCheckouter, asUserID, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewCheckoutHandler(stub, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	if asUserID != "" {
		req = asUser(req, asUserID)
	}
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)
	return rec
}

const checkoutBody = `{
	"shippingAddress": {"street":"1 Main St","city":"Springfield","postalCode":"62701","country":"US"},
	"paymentMethod": "card",
	"card": {"number":"4242424242424242","expiry":"12/30","cvc":"123"}
}`

func TestCheckoutHandler(t *testing.T) {
	stub := &stubCheckouter{
		order: &domain.Order{
			ID:        "order-1",
			Number:    "ORD-1001",
			Status:    domain.OrderStatusPending,
			Total:     decimal.NewFromInt(120),
			CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		},
	}

	rec := postCheckout(t, stub, "user-1", checkoutBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", stub.gotUserID)
	require.NotNil(t, stub.gotReq)
	assert.Equal(t, "card", stub.gotReq.PaymentMethod)

	var resp CheckoutResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ORD-1001", resp.Order.Number)
	assert.Equal(t, "PENDING", resp.Order.Status)
	assert.True(t, resp.Order.Total.Equal(decimal.NewFromInt(120)))
}

func TestCheckoutHandlerRequiresLogin(t *testing.T) {
	rec := postCheckout(t, &stubCheckouter{}, "", checkoutBody)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You must be logged in to checkout", resp.Error)
}

func TestCheckoutHandlerServiceErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"empty cart", service.ErrEmptyCart, http.StatusBadRequest, "Cart is empty"},
		{"inventory", service.ErrInsufficientInventory, http.StatusBadRequest, "Not enough inventory available"},
		{"payment", service.ErrPaymentFailed, http.StatusBadRequest, "Payment could not be processed"},
		{"promo expired", service.ErrPromoExpired, http.StatusBadRequest, "This promotion code has expired"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postCheckout(t, &stubCheckouter{err: tc.err}, "user-1", checkoutBody)

			assert.Equal(t, tc.status, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp.Error)
		})
	}
}

func TestCheckoutHandlerBadJSON(t *testing.T) {
	rec := postCheckout(t, &stubCheckouter{}, "user-1", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
