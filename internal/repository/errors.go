package repository

import "errors"

var (
	ErrCartNotFound          = errors.New("cart not found")
	ErrItemNotFound          = errors.New("cart item not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrVariantNotFound       = errors.New("variant not found")
	ErrPromoNotFound         = errors.New("promo code not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrAddressNotFound       = errors.New("address not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateSlug         = errors.New("product slug already exists")
	ErrDuplicateCode         = errors.New("promo code already exists")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrPromoUsageExceeded    = errors.New("promo code usage limit exceeded")
)
