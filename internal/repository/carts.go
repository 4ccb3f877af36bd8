package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

func (r *Repository) FindCartByIdentity(ctx context.Context, owner domain.Identity) (*domain.Cart, error) {
	var query string
	var arg string
	if userID, ok := owner.UserID(); ok {
		query = `SELECT id, user_id, session_token, created_at, updated_at FROM carts WHERE user_id = $1`
		arg = userID
	} else if token, ok := owner.SessionToken(); ok {
		query = `SELECT id, user_id, session_token, created_at, updated_at FROM carts WHERE session_token = $1`
		arg = token
	} else {
		return nil, ErrCartNotFound
	}

	return r.scanCart(r.db.QueryRowContext(ctx, query, arg))
}

func (r *Repository) CreateCart(ctx context.Context, owner domain.Identity) (*domain.Cart, error) {
	id := uuid.NewString()
	var userID, token sql.NullString
	if u, ok := owner.UserID(); ok {
		userID = sql.NullString{String: u, Valid: true}
	}
	if t, ok := owner.SessionToken(); ok {
		token = sql.NullString{String: t, Valid: true}
	}

	query := `INSERT INTO carts (id, user_id, session_token) VALUES ($1, $2, $3)
	          RETURNING id, user_id, session_token, created_at, updated_at`
	return r.scanCart(r.db.QueryRowContext(ctx, query, id, userID, token))
}

func (r *Repository) DeleteCart(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// AdoptCart rebinds a session cart to a user, dropping the session token.
func (r *Repository) AdoptCart(ctx context.Context, cartID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE carts SET user_id = $1, session_token = NULL, updated_at = NOW() WHERE id = $2`,
		userID, cartID)
	if err != nil {
		return fmt.Errorf("adopt cart: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *Repository) CartLines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	query := `SELECT i.id, i.cart_id, i.product_id, i.variant_id, i.quantity, i.added_at,
	                 p.id, p.name, p.slug, p.sku, p.price, p.inventory, p.is_visible, p.image_url
	          FROM cart_items i
	          JOIN products p ON p.id = i.product_id
	          WHERE i.cart_id = $1
	          ORDER BY i.added_at`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		var variantID sql.NullString
		if err := rows.Scan(
			&line.Item.ID,
			&line.Item.CartID,
			&line.Item.ProductID,
			&variantID,
			&line.Item.Quantity,
			&line.Item.AddedAt,
			&line.Product.ID,
			&line.Product.Name,
			&line.Product.Slug,
			&line.Product.SKU,
			&line.Product.Price,
			&line.Product.Inventory,
			&line.Product.IsVisible,
			&line.Product.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		line.Item.VariantID = variantID.String
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return lines, nil
}

func (r *Repository) FindItem(ctx context.Context, cartID, productID, variantID string) (*domain.CartItem, error) {
	query := `SELECT id, cart_id, product_id, variant_id, quantity, added_at
	          FROM cart_items
	          WHERE cart_id = $1 AND product_id = $2 AND variant_id IS NOT DISTINCT FROM $3`

	return scanItem(r.db.QueryRowContext(ctx, query, cartID, productID, nullable(variantID)))
}

// FindItemByID also returns the owning cart's identity for access checks.
func (r *Repository) FindItemByID(ctx context.Context, itemID string) (*domain.CartItem, domain.Identity, error) {
	query := `SELECT i.id, i.cart_id, i.product_id, i.variant_id, i.quantity, i.added_at,
	                 c.user_id, c.session_token
	          FROM cart_items i
	          JOIN carts c ON c.id = i.cart_id
	          WHERE i.id = $1`

	var item domain.CartItem
	var variantID, userID, token sql.NullString
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&variantID,
		&item.Quantity,
		&item.AddedAt,
		&userID,
		&token,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Identity{}, ErrItemNotFound
	}
	if err != nil {
		return nil, domain.Identity{}, fmt.Errorf("query cart item: %w", err)
	}

	item.VariantID = variantID.String
	var owner domain.Identity
	if userID.Valid {
		owner = domain.UserOwned(userID.String)
	} else {
		owner = domain.SessionOwned(token.String)
	}
	return &item, owner, nil
}

func (r *Repository) AddItem(ctx context.Context, item *domain.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	query := `INSERT INTO cart_items (id, cart_id, product_id, variant_id, quantity)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.CartID, item.ProductID, nullable(item.VariantID), item.Quantity)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID)
	if err != nil {
		return fmt.Errorf("update cart item quantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repository) ReassignItem(ctx context.Context, itemID, cartID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET cart_id = $1 WHERE id = $2`, cartID, itemID)
	if err != nil {
		return fmt.Errorf("reassign cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repository) RemoveItem(ctx context.Context, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repository) ClearItems(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	return nil
}

func (r *Repository) scanCart(row *sql.Row) (*domain.Cart, error) {
	var cart domain.Cart
	var userID, token sql.NullString
	err := row.Scan(&cart.ID, &userID, &token, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan cart: %w", err)
	}
	if userID.Valid {
		cart.Owner = domain.UserOwned(userID.String)
	} else {
		cart.Owner = domain.SessionOwned(token.String)
	}
	return &cart, nil
}

func scanItem(row *sql.Row) (*domain.CartItem, error) {
	var item domain.CartItem
	var variantID sql.NullString
	err := row.Scan(&item.ID, &item.CartID, &item.ProductID, &variantID, &item.Quantity, &item.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan cart item: %w", err)
	}
	item.VariantID = variantID.String
	return &item, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
