package service

import "errors"

var (
	ErrNoIdentity            = errors.New("no user or session identified")
	ErrProductNotFound       = errors.New("product not found")
	ErrVariantNotFound       = errors.New("variant not found")
	ErrProductUnavailable    = errors.New("product is not available")
	ErrInsufficientInventory = errors.New("not enough inventory available")
	ErrItemNotFound          = errors.New("cart item not found or access denied")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrMissingCheckoutInput  = errors.New("shipping address and payment method are required")
	ErrMissingAddressFields  = errors.New("street, city, postal code and country are required")
	ErrMissingCardDetails    = errors.New("card number, expiry and cvc are required")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrPaymentFailed         = errors.New("payment failed")
	ErrOrderNotFound         = errors.New("order not found")

	// Promo rejections, in the order the validator checks them.
	ErrPromoNotFound     = errors.New("invalid promotion code")
	ErrPromoInactive     = errors.New("promotion code is not active")
	ErrPromoNotStarted   = errors.New("promotion code is not valid yet")
	ErrPromoExpired      = errors.New("promotion code has expired")
	ErrPromoUsageLimit   = errors.New("promotion code has reached its usage limit")
	ErrPromoBelowMinimum = errors.New("cart total does not meet the minimum amount for this code")
)
