package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

// PromoCode is stored with the code upper-cased; lookups normalize the same way.
type PromoCode struct {
	ID             string
	Code           string
	Description    string
	DiscountType   DiscountType
	DiscountAmount decimal.Decimal
	MinimumAmount  *decimal.Decimal
	StartDate      time.Time
	EndDate        *time.Time
	UsageLimit     *int
	UsageCount     int
	IsActive       bool
}

// Discount computes the amount this code takes off the given cart total.
// A fixed discount is clamped to the total so it can never go negative.
func (p PromoCode) Discount(cartTotal decimal.Decimal) decimal.Decimal {
	if p.DiscountType == DiscountPercentage {
		return cartTotal.Mul(p.DiscountAmount).Div(decimal.NewFromInt(100))
	}
	if p.DiscountAmount.GreaterThan(cartTotal) {
		return cartTotal
	}
	return p.DiscountAmount
}
