package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

var promoNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newPromoFixture(t *testing.T) (*PromoService, *mockPromoRepo) {
	t.Helper()
	promos := newMockPromoRepo()
	svc := NewPromoService(promos)
	svc.now = func() time.Time { return promoNow }
	return svc, promos
}

func activePromo() *domain.PromoCode {
	return &domain.PromoCode{
		ID:             "promo-1",
		Code:           "SAVE10",
		DiscountType:   domain.DiscountPercentage,
		DiscountAmount: decimal.NewFromInt(10),
		StartDate:      promoNow.Add(-24 * time.Hour),
		IsActive:       true,
	}
}

func TestValidatePromoNotFound(t *testing.T) {
	svc, _ := newPromoFixture(t)

	_, err := svc.Validate(context.Background(), "NOPE", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestValidatePromoCaseInsensitive(t *testing.T) {
	svc, promos := newPromoFixture(t)
	require.NoError(t, promos.CreatePromo(context.Background(), activePromo()))

	result, err := svc.Validate(context.Background(), "save10", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", result.Promo.Code)
}

func TestValidatePromoInactive(t *testing.T) {
	svc, promos := newPromoFixture(t)
	p := activePromo()
	p.IsActive = false
	require.NoError(t, promos.CreatePromo(context.Background(), p))

	_, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoInactive)
}

func TestValidatePromoNotStarted(t *testing.T) {
	svc, promos := newPromoFixture(t)
	p := activePromo()
	p.StartDate = promoNow.Add(time.Hour)
	require.NoError(t, promos.CreatePromo(context.Background(), p))

	_, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoNotStarted)
}

func TestValidatePromoExpired(t *testing.T) {
	svc, promos := newPromoFixture(t)
	p := activePromo()
	end := promoNow.Add(-time.Hour)
	p.EndDate = &end
	require.NoError(t, promos.CreatePromo(context.Background(), p))

	_, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoExpired)
}

func TestValidatePromoUsageLimitReached(t *testing.T) {
	svc, promos := newPromoFixture(t)
	p := activePromo()
	limit := 5
	p.UsageLimit = &limit
	p.UsageCount = 5
	require.NoError(t, promos.CreatePromo(context.Background(), p))

	_, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoUsageLimit)
}

func TestValidatePromoBelowMinimum(t *testing.T) {
	svc, promos := newPromoFixture(t)
	p := activePromo()
	min := decimal.NewFromInt(50)
	p.MinimumAmount = &min
	require.NoError(t, promos.CreatePromo(context.Background(), p))

	_, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromFloat(49.99))
	assert.ErrorIs(t, err, ErrPromoBelowMinimum)
}

func TestValidatePromoLadderOrder(t *testing.T) {
	// A promo that is both expired and over its usage cap fails on the
	// expiry check first.
	svc, promos := newPromoFixture(t)
	p := activePromo()
	end := promoNow.Add(-time.Hour)
	p.EndDate = &end
	limit := 1
	p.UsageLimit = &limit
	p.UsageCount = 1
	require.NoError(t, promos.CreatePromo(context.Background(), p))

	_, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoExpired)
}

func TestValidatePromoPercentageDiscount(t *testing.T) {
	svc, promos := newPromoFixture(t)
	require.NoError(t, promos.CreatePromo(context.Background(), activePromo()))

	result, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, result.DiscountAmount.Equal(decimal.NewFromInt(20)), "got %s", result.DiscountAmount)
}

func TestValidatePromoFixedDiscountClamped(t *testing.T) {
	svc, promos := newPromoFixture(t)
	p := activePromo()
	p.DiscountType = domain.DiscountFixedAmount
	p.DiscountAmount = decimal.NewFromInt(10)
	require.NoError(t, promos.CreatePromo(context.Background(), p))

	// $10 off a $5 cart takes the cart to zero, never negative.
	result, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, result.DiscountAmount.Equal(decimal.NewFromInt(5)), "got %s", result.DiscountAmount)
}

func TestValidatePromoAtBoundaryTimes(t *testing.T) {
	svc, promos := newPromoFixture(t)
	p := activePromo()
	p.StartDate = promoNow // starts exactly now
	end := promoNow.Add(time.Minute)
	p.EndDate = &end
	require.NoError(t, promos.CreatePromo(context.Background(), p))

	_, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(100))
	assert.NoError(t, err)
}
