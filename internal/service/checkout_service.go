package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/cache"
	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/events"
	"github.com/ShababulAlam/quantum-ecommerce/internal/payment"
	"github.com/ShababulAlam/quantum-ecommerce/internal/repository"
)

type CheckoutService struct {
	carts     repository.CartRepository
	orders    repository.OrderRepository
	addresses repository.AddressRepository
	promos    *PromoService
	gateway   payment.Gateway
	publisher events.Publisher // optional; nil means events are off
	cache     cache.CartCache
	logger    *zap.Logger

	// Flat-rate shipping and a single tax rate, matching the storefront's
	// simplified pricing model.
	shippingRate decimal.Decimal
	taxRate      decimal.Decimal
}

func NewCheckoutService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	addresses repository.AddressRepository,
	promos *PromoService,
	gateway payment.Gateway,
	publisher events.Publisher,
	cartCache cache.CartCache,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:        carts,
		orders:       orders,
		addresses:    addresses,
		promos:       promos,
		gateway:      gateway,
		publisher:    publisher,
		cache:        cartCache,
		logger:       logger,
		shippingRate: decimal.NewFromFloat(10.0),
		taxRate:      decimal.NewFromFloat(0.1),
	}
}

type AddressInput struct {
	ID         string `json:"id,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"isDefault"`
}

type CardInput struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

type CheckoutRequest struct {
	ShippingAddress *AddressInput `json:"shippingAddress"`
	PaymentMethod   string        `json:"paymentMethod"`
	Card            *CardInput    `json:"card,omitempty"`
	PromoCode       string        `json:"promoCode,omitempty"`
}

// Checkout turns the user's cart into an order. All validation happens before
// any write; the write itself (order, inventory, promo usage, cart removal)
// is one repository transaction, so a failure anywhere leaves nothing behind.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, req *CheckoutRequest) (*domain.Order, error) {
	if err := validateCheckoutInput(req); err != nil {
		return nil, err
	}

	owner := domain.UserOwned(userID)
	cart, err := s.carts.FindCartByIdentity(ctx, owner)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.CartLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Pre-check against the stock we just loaded; the transaction re-checks
	// with a conditional decrement to close the race with other checkouts.
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Product.Inventory < line.Item.Quantity {
			return nil, ErrInsufficientInventory
		}
		subtotal = subtotal.Add(line.Subtotal())
	}

	shipping := s.shippingRate
	tax := subtotal.Mul(s.taxRate)

	discount := decimal.Zero
	var promoID string
	if req.PromoCode != "" {
		result, err := s.promos.Validate(ctx, req.PromoCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = result.DiscountAmount
		promoID = result.Promo.ID
	}

	// Each component is rounded to 2 decimal places on its own before the
	// total is summed; the stored total must equal the stored parts exactly.
	subtotal = subtotal.Round(2)
	shipping = shipping.Round(2)
	tax = tax.Round(2)
	discount = discount.Round(2)
	total := subtotal.Add(shipping).Add(tax).Sub(discount)

	addressID, err := s.resolveAddress(ctx, userID, req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	paymentID, err := s.gateway.Charge(ctx, total, req.PaymentMethod)
	if err != nil {
		s.logger.Error("payment charge failed", zap.Error(err))
		return nil, ErrPaymentFailed
	}

	order := &domain.Order{
		UserID:        userID,
		AddressID:     addressID,
		Status:        domain.OrderStatusPending,
		Subtotal:      subtotal,
		Shipping:      shipping,
		Tax:           tax,
		Discount:      discount,
		Total:         total,
		PromoCodeID:   promoID,
		PaymentMethod: req.PaymentMethod,
		PaymentID:     paymentID,
		Items:         snapshotItems(lines),
	}

	if err := s.orders.PlaceOrder(ctx, order, cart.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientInventory):
			return nil, ErrInsufficientInventory
		case errors.Is(err, repository.ErrPromoUsageExceeded):
			return nil, ErrPromoUsageLimit
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.publishOrderCreated(order)
	s.invalidateCart(owner)

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("number", order.Number),
		zap.String("user_id", userID),
		zap.String("total", order.Total.String()))
	return order, nil
}

func validateCheckoutInput(req *CheckoutRequest) error {
	if req == nil || req.ShippingAddress == nil || req.PaymentMethod == "" {
		return ErrMissingCheckoutInput
	}
	addr := req.ShippingAddress
	if addr.ID == "" {
		if addr.Street == "" || addr.City == "" || addr.PostalCode == "" || addr.Country == "" {
			return ErrMissingAddressFields
		}
	}
	if req.PaymentMethod == "card" {
		if req.Card == nil || req.Card.Number == "" || req.Card.Expiry == "" || req.Card.CVC == "" {
			return ErrMissingCardDetails
		}
	}
	return nil
}

func (s *CheckoutService) resolveAddress(ctx context.Context, userID string, input *AddressInput) (string, error) {
	if input.ID != "" {
		addr, err := s.addresses.FindAddressForUser(ctx, input.ID, userID)
		if errors.Is(err, repository.ErrAddressNotFound) {
			return "", ErrInvalidAddress
		}
		if err != nil {
			return "", err
		}
		return addr.ID, nil
	}

	addr := &domain.Address{
		UserID:     userID,
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		IsDefault:  input.IsDefault,
	}
	if err := s.addresses.CreateAddress(ctx, addr); err != nil {
		return "", err
	}
	return addr.ID, nil
}

// snapshotItems copies name/sku/price into the order so later product edits
// never change what the customer bought.
func snapshotItems(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.Product.ID,
			VariantID: line.Item.VariantID,
			Name:      line.Product.Name,
			SKU:       line.Product.SKU,
			Price:     line.Product.Price,
			Quantity:  line.Item.Quantity,
		})
	}
	return items
}

// publishOrderCreated is best effort: the order is already committed, so a
// broker hiccup only costs the event, never the order.
func (s *CheckoutService) publishOrderCreated(order *domain.Order) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	event := events.OrderCreated{
		OrderID:   order.ID,
		Number:    order.Number,
		UserID:    order.UserID,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

func (s *CheckoutService) invalidateCart(owner domain.Identity) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, owner); err != nil {
		s.logger.Warn("cart cache invalidate failed", zap.Error(err))
	}
}
