package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        string
	Owner     Identity
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is a single pending purchase line. VariantID is empty when the
// product was added without a variant.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	VariantID string
	Quantity  int
	AddedAt   time.Time
}

// CartLine joins an item with its current product row. Subtotals are computed
// from this, never stored.
type CartLine struct {
	Item    CartItem
	Product Product
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Item.Quantity)))
}

// CartView is the read model returned to clients. It is recomputed from the
// current product prices on every read.
type CartView struct {
	ID         string          `json:"id"`
	Items      []CartViewItem  `json:"items"`
	TotalItems int             `json:"totalItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CartViewItem struct {
	ID        string          `json:"id"`
	Quantity  int             `json:"quantity"`
	Product   CartViewProduct `json:"product"`
	VariantID string          `json:"variantId,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartViewProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Slug  string          `json:"slug"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// NewCartView builds the read model from joined lines.
func NewCartView(cartID string, lines []CartLine) CartView {
	view := CartView{
		ID:       cartID,
		Items:    make([]CartViewItem, 0, len(lines)),
		Subtotal: decimal.Zero,
	}
	for _, line := range lines {
		subtotal := line.Subtotal()
		view.Items = append(view.Items, CartViewItem{
			ID:       line.Item.ID,
			Quantity: line.Item.Quantity,
			Product: CartViewProduct{
				ID:    line.Product.ID,
				Name:  line.Product.Name,
				Slug:  line.Product.Slug,
				Price: line.Product.Price,
				Image: line.Product.ImageURL,
			},
			VariantID: line.Item.VariantID,
			Subtotal:  subtotal,
		})
		view.TotalItems += line.Item.Quantity
		view.Subtotal = view.Subtotal.Add(subtotal)
	}
	return view
}
