package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

// CartService is the slice of the cart manager this handler needs.
type CartService interface {
	MergeGuestCart(ctx context.Context, userID, sessionToken string) (*domain.Cart, error)
	CartView(ctx context.Context, owner domain.Identity) (*domain.CartView, error)
	AddItem(ctx context.Context, owner domain.Identity, productID, variantID string, quantity int) (*domain.CartItem, error)
	UpdateItemQuantity(ctx context.Context, owner domain.Identity, itemID string, quantity int) error
	RemoveItem(ctx context.Context, owner domain.Identity, itemID string) error
	ClearCart(ctx context.Context, owner domain.Identity) error
}

type CartHandler struct {
	carts  CartService
	logger *zap.Logger
}

func NewCartHandler(carts CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

type AddItemRequestDTO struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the caller's cart view. When the caller is logged in and
// still carries a guest session cookie, the guest cart is merged in first.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFrom(ctx)
	session := sessionFrom(ctx)

	if user != nil && session != "" {
		if _, err := h.carts.MergeGuestCart(ctx, user.ID, session); err != nil {
			serviceError(w, h.logger, err)
			return
		}
	}

	view, err := h.carts.CartView(ctx, identityFrom(ctx))
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// AddItem adds a line to the cart. Anonymous first-time callers get a session
// cookie issued here.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	owner := identityFrom(ctx)
	if owner.IsZero() {
		token := uuid.NewString()
		setSessionCookie(w, token)
		owner = domain.SessionOwned(token)
	}

	item, err := h.carts.AddItem(ctx, owner, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Item added to cart",
		"item":    itemDTO(item),
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.carts.UpdateItemQuantity(ctx, identityFrom(ctx), itemID, req.Quantity); err != nil {
		serviceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Cart item updated successfully",
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "id")

	if err := h.carts.RemoveItem(ctx, identityFrom(ctx), itemID); err != nil {
		serviceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Cart item removed successfully",
	})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.carts.ClearCart(ctx, identityFrom(ctx)); err != nil {
		serviceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Cart cleared successfully",
	})
}

type cartItemDTO struct {
	ID        string `json:"id"`
	CartID    string `json:"cartId"`
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

func itemDTO(item *domain.CartItem) cartItemDTO {
	return cartItemDTO{
		ID:        item.ID,
		CartID:    item.CartID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
	}
}
