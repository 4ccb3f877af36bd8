package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ShababulAlam/quantum-ecommerce/internal/cache"
	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/repository"
)

// A single line never grows past this.
const maxLineQuantity = 99

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	sfg      singleflight.Group // prevents cache stampede on hot carts
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, cartCache cache.CartCache, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		cache:    cartCache,
		logger:   logger,
	}
}

// GetOrCreateCart returns the cart owned by the given identity, creating it
// lazily on first use.
func (s *CartService) GetOrCreateCart(ctx context.Context, owner domain.Identity) (*domain.Cart, error) {
	if owner.IsZero() {
		return nil, ErrNoIdentity
	}

	cart, err := s.carts.FindCartByIdentity(ctx, owner)
	if errors.Is(err, repository.ErrCartNotFound) {
		return s.carts.CreateCart(ctx, owner)
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// MergeGuestCart folds a guest session cart into the user's cart on login.
// An absent or empty guest cart is a no-op, so repeated calls are safe.
// Lines matching on (product, variant) have their quantities summed; the rest
// move over as-is; the emptied guest cart is deleted.
func (s *CartService) MergeGuestCart(ctx context.Context, userID, sessionToken string) (*domain.Cart, error) {
	guestOwner := domain.SessionOwned(sessionToken)
	userOwner := domain.UserOwned(userID)

	guest, err := s.carts.FindCartByIdentity(ctx, guestOwner)
	if errors.Is(err, repository.ErrCartNotFound) {
		return s.GetOrCreateCart(ctx, userOwner)
	}
	if err != nil {
		return nil, err
	}

	guestLines, err := s.carts.CartLines(ctx, guest.ID)
	if err != nil {
		return nil, err
	}
	if len(guestLines) == 0 {
		return s.GetOrCreateCart(ctx, userOwner)
	}

	userCart, err := s.carts.FindCartByIdentity(ctx, userOwner)
	if errors.Is(err, repository.ErrCartNotFound) {
		// No user cart yet: the guest cart simply changes hands.
		if err := s.carts.AdoptCart(ctx, guest.ID, userID); err != nil {
			return nil, err
		}
		s.invalidate(guestOwner)
		s.invalidate(userOwner)
		guest.Owner = userOwner
		return guest, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range guestLines {
		existing, err := s.carts.FindItem(ctx, userCart.ID, line.Item.ProductID, line.Item.VariantID)
		if errors.Is(err, repository.ErrItemNotFound) {
			if err := s.carts.ReassignItem(ctx, line.Item.ID, userCart.ID); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := s.carts.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+line.Item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.carts.DeleteCart(ctx, guest.ID); err != nil {
		return nil, err
	}

	s.invalidate(guestOwner)
	s.invalidate(userOwner)
	return userCart, nil
}

// CartView returns the cart read model, recomputed from current product
// prices. Results are cached; any cart mutation invalidates the cache.
func (s *CartService) CartView(ctx context.Context, owner domain.Identity) (*domain.CartView, error) {
	if owner.IsZero() {
		return nil, ErrNoIdentity
	}

	v, err, _ := s.sfg.Do(owner.Key(), func() (interface{}, error) {
		view, err := s.cache.Get(ctx, owner)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cart cache get failed", zap.Error(err))
		}

		cart, err := s.GetOrCreateCart(ctx, owner)
		if err != nil {
			return nil, err
		}

		lines, err := s.carts.CartLines(ctx, cart.ID)
		if err != nil {
			return nil, err
		}

		view2 := domain.NewCartView(cart.ID, lines)

		go func() {
			if err := s.cache.Set(context.Background(), owner, &view2); err != nil {
				s.logger.Warn("cart cache set failed", zap.Error(err))
			}
		}()

		return &view2, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CartView), nil
}

// AddItem adds a product line, or bumps the quantity of an existing line for
// the same (product, variant).
func (s *CartService) AddItem(ctx context.Context, owner domain.Identity, productID, variantID string, quantity int) (*domain.CartItem, error) {
	if owner.IsZero() {
		return nil, ErrNoIdentity
	}
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > maxLineQuantity {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.FindProductByID(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !product.IsVisible {
		return nil, ErrProductUnavailable
	}
	if product.Inventory < quantity {
		return nil, ErrInsufficientInventory
	}

	if variantID != "" {
		variant, err := s.products.FindVariant(ctx, productID, variantID)
		if errors.Is(err, repository.ErrVariantNotFound) {
			return nil, ErrVariantNotFound
		}
		if err != nil {
			return nil, err
		}
		if variant.Inventory < quantity {
			return nil, ErrInsufficientInventory
		}
	}

	cart, err := s.GetOrCreateCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	existing, err := s.carts.FindItem(ctx, cart.ID, productID, variantID)
	if err != nil && !errors.Is(err, repository.ErrItemNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += quantity
		if existing.Quantity > maxLineQuantity {
			return nil, ErrInvalidQuantity
		}
		if err := s.carts.UpdateItemQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, err
		}
		s.invalidate(owner)
		return existing, nil
	}

	item := &domain.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	if err := s.carts.AddItem(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(owner)
	return item, nil
}

// UpdateItemQuantity sets a line's quantity. The item must belong to the
// caller's cart; anything else reads as not found.
func (s *CartService) UpdateItemQuantity(ctx context.Context, owner domain.Identity, itemID string, quantity int) error {
	if owner.IsZero() {
		return ErrNoIdentity
	}
	if quantity < 1 || quantity > maxLineQuantity {
		return ErrInvalidQuantity
	}

	item, itemOwner, err := s.carts.FindItemByID(ctx, itemID)
	if errors.Is(err, repository.ErrItemNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}
	if itemOwner != owner {
		return ErrItemNotFound
	}

	product, err := s.products.FindProductByID(ctx, item.ProductID)
	if err != nil {
		return err
	}
	if product.Inventory < quantity {
		return ErrInsufficientInventory
	}

	if err := s.carts.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return err
	}
	s.invalidate(owner)
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, owner domain.Identity, itemID string) error {
	if owner.IsZero() {
		return ErrNoIdentity
	}

	_, itemOwner, err := s.carts.FindItemByID(ctx, itemID)
	if errors.Is(err, repository.ErrItemNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}
	if itemOwner != owner {
		return ErrItemNotFound
	}

	if err := s.carts.RemoveItem(ctx, itemID); err != nil {
		return err
	}
	s.invalidate(owner)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, owner domain.Identity) error {
	if owner.IsZero() {
		return ErrNoIdentity
	}

	cart, err := s.carts.FindCartByIdentity(ctx, owner)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil // nothing to clear
	}
	if err != nil {
		return err
	}

	if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
		return err
	}
	s.invalidate(owner)
	return nil
}

func (s *CartService) invalidate(owner domain.Identity) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, owner); err != nil {
		s.logger.Warn("cart cache invalidate failed", zap.Error(err))
	}
}
