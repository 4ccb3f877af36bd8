package repository

import (
	"context"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

// The narrow views of *Repository that each service depends on.

type CartRepository interface {
	FindCartByIdentity(ctx context.Context, owner domain.Identity) (*domain.Cart, error)
	CreateCart(ctx context.Context, owner domain.Identity) (*domain.Cart, error)
	DeleteCart(ctx context.Context, cartID string) error
	AdoptCart(ctx context.Context, cartID, userID string) error
	CartLines(ctx context.Context, cartID string) ([]domain.CartLine, error)
	FindItem(ctx context.Context, cartID, productID, variantID string) (*domain.CartItem, error)
	FindItemByID(ctx context.Context, itemID string) (*domain.CartItem, domain.Identity, error)
	AddItem(ctx context.Context, item *domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	ReassignItem(ctx context.Context, itemID, cartID string) error
	RemoveItem(ctx context.Context, itemID string) error
	ClearItems(ctx context.Context, cartID string) error
}

type ProductRepository interface {
	FindProductByID(ctx context.Context, id string) (*domain.Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	FindVariant(ctx context.Context, productID, variantID string) (*domain.ProductVariant, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	CreateVariant(ctx context.Context, v *domain.ProductVariant) error
}

type PromoRepository interface {
	FindPromoByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	CreatePromo(ctx context.Context, p *domain.PromoCode) error
}

type OrderRepository interface {
	// PlaceOrder commits the whole checkout in one transaction: order number
	// allocation, order + snapshot items, guarded inventory decrements, promo
	// usage increment, and cart removal.
	PlaceOrder(ctx context.Context, order *domain.Order, cartID string) error
	FindOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}

type AddressRepository interface {
	FindAddressForUser(ctx context.Context, addressID, userID string) (*domain.Address, error)
	CreateAddress(ctx context.Context, a *domain.Address) error
}

type UserRepository interface {
	FindUserByToken(ctx context.Context, token string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User, token string) error
}

type ImageRefLister interface {
	ListImageURLs(ctx context.Context) ([]string, error)
}
