package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

func TestOrderGetForUser(t *testing.T) {
	orders := &mockOrderRepo{}
	ctx := context.Background()
	require.NoError(t, orders.PlaceOrder(ctx, &domain.Order{UserID: "user-1"}, "cart-1"))

	svc := NewOrderService(orders)

	order, err := svc.GetForUser(ctx, "order-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", order.Number)

	// Someone else's order reads as not found, never as forbidden.
	_, err = svc.GetForUser(ctx, "order-1", "user-2")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.GetForUser(ctx, "missing", "user-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderListForUser(t *testing.T) {
	orders := &mockOrderRepo{}
	ctx := context.Background()
	require.NoError(t, orders.PlaceOrder(ctx, &domain.Order{UserID: "user-1"}, "cart-1"))
	require.NoError(t, orders.PlaceOrder(ctx, &domain.Order{UserID: "user-2"}, "cart-2"))

	svc := NewOrderService(orders)

	mine, err := svc.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "user-1", mine[0].UserID)
}
