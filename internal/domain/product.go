package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Inventory   int             `json:"inventory"`
	IsVisible   bool            `json:"isVisible"`
	IsFeatured  bool            `json:"isFeatured"`
	ImageURL    string          `json:"image"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ProductVariant struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Inventory int    `json:"inventory"`
}

// ProductFilter narrows ListProducts. Zero values mean "no constraint".
type ProductFilter struct {
	Search       string
	FeaturedOnly bool
	SortBy       string // created_at, price, name
	SortDesc     bool
	Page         int
	PerPage      int
}
