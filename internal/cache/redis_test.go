package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client), mr
}

func sampleView() *domain.CartView {
	return &domain.CartView{
		ID:         "cart-1",
		TotalItems: 3,
		Subtotal:   decimal.NewFromFloat(42.50),
		Items: []domain.CartViewItem{
			{
				ID:       "item-1",
				Quantity: 3,
				Product: domain.CartViewProduct{
					ID:    "p1",
					Name:  "Hoodie",
					Slug:  "hoodie",
					Price: decimal.NewFromFloat(14.1666),
				},
				Subtotal: decimal.NewFromFloat(42.50),
			},
		},
	}
}

func TestRedisCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), domain.UserOwned("u1"))
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	owner := domain.UserOwned("u1")

	require.NoError(t, c.Set(ctx, owner, sampleView()))

	got, err := c.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "cart-1", got.ID)
	assert.Equal(t, 3, got.TotalItems)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromFloat(42.50)))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Hoodie", got.Items[0].Product.Name)
}

func TestRedisCacheKeysAreScopedToOwner(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, domain.UserOwned("u1"), sampleView()))

	// A session owner with the same raw string must not collide.
	_, err := c.Get(ctx, domain.SessionOwned("u1"))
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	owner := domain.SessionOwned("sess-1")

	require.NoError(t, c.Set(ctx, owner, sampleView()))
	require.NoError(t, c.Delete(ctx, owner))

	_, err := c.Get(ctx, owner)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	owner := domain.UserOwned("u1")

	require.NoError(t, c.Set(ctx, owner, sampleView()))
	mr.FastForward(c.baseTTL * 2)

	_, err := c.Get(ctx, owner)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
