package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/repository"
)

type PromoService struct {
	promos repository.PromoRepository
	now    func() time.Time
}

func NewPromoService(promos repository.PromoRepository) *PromoService {
	return &PromoService{promos: promos, now: time.Now}
}

type PromoResult struct {
	Promo          *domain.PromoCode
	DiscountAmount decimal.Decimal
}

// Validate runs the rejection ladder in a fixed order and reports only the
// first failure: not found, inactive, not started, expired, usage limit
// reached, below minimum. It never mutates the usage count; only a committed
// checkout does that.
func (s *PromoService) Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*PromoResult, error) {
	promo, err := s.promos.FindPromoByCode(ctx, code)
	if errors.Is(err, repository.ErrPromoNotFound) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, err
	}

	if !promo.IsActive {
		return nil, ErrPromoInactive
	}

	now := s.now()
	if promo.StartDate.After(now) {
		return nil, ErrPromoNotStarted
	}
	if promo.EndDate != nil && promo.EndDate.Before(now) {
		return nil, ErrPromoExpired
	}
	if promo.UsageLimit != nil && promo.UsageCount >= *promo.UsageLimit {
		return nil, ErrPromoUsageLimit
	}
	if promo.MinimumAmount != nil && cartTotal.LessThan(*promo.MinimumAmount) {
		return nil, ErrPromoBelowMinimum
	}

	return &PromoResult{
		Promo:          promo,
		DiscountAmount: promo.Discount(cartTotal),
	}, nil
}
