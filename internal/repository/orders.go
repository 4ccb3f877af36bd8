package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

// PlaceOrder runs the whole checkout commit in a single transaction so a crash
// can never leave an order without its inventory decrement or a cleared cart
// without its order. The inventory decrement is conditional: if any line would
// drive stock negative the transaction aborts with ErrInsufficientInventory.
func (r *Repository) PlaceOrder(ctx context.Context, order *domain.Order, cartID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkout tx: %w", err)
	}
	defer tx.Rollback()

	// Order numbers come from a sequence, not read-increment-write, so two
	// concurrent checkouts can never allocate the same number.
	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT nextval('order_numbers')`).Scan(&seq); err != nil {
		return fmt.Errorf("allocate order number: %w", err)
	}
	order.Number = fmt.Sprintf("ORD-%d", seq)

	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	query := `INSERT INTO orders (id, number, user_id, address_id, status, subtotal, shipping,
	                              tax, discount, total, promo_code_id, payment_method, payment_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING created_at, updated_at`
	err = tx.QueryRowContext(ctx, query,
		order.ID, order.Number, order.UserID, order.AddressID, order.Status,
		order.Subtotal, order.Shipping, order.Tax, order.Discount, order.Total,
		nullable(order.PromoCodeID), order.PaymentMethod, order.PaymentID,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.OrderID = order.ID

		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, variant_id, name, sku, price, quantity)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.OrderID, item.ProductID, nullable(item.VariantID),
			item.Name, item.SKU, item.Price, item.Quantity)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE products SET inventory = inventory - $1, updated_at = NOW()
			 WHERE id = $2 AND inventory >= $1`,
			item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("decrement inventory: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrInsufficientInventory
		}

		if item.VariantID != "" {
			res, err := tx.ExecContext(ctx,
				`UPDATE product_variants SET inventory = inventory - $1
				 WHERE id = $2 AND inventory >= $1`,
				item.Quantity, item.VariantID)
			if err != nil {
				return fmt.Errorf("decrement variant inventory: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrInsufficientInventory
			}
		}
	}

	if order.PromoCodeID != "" {
		res, err := tx.ExecContext(ctx,
			`UPDATE promo_codes SET usage_count = usage_count + 1
			 WHERE id = $1 AND (usage_limit IS NULL OR usage_count < usage_limit)`,
			order.PromoCodeID)
		if err != nil {
			return fmt.Errorf("increment promo usage: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrPromoUsageExceeded
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkout tx: %w", err)
	}
	return nil
}

const orderColumns = `id, number, user_id, address_id, status, subtotal, shipping, tax, discount, total,
	promo_code_id, payment_method, payment_id, created_at, updated_at`

func (r *Repository) FindOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.orderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, order := range orders {
		items, err := r.orderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	return orders, nil
}

func (r *Repository) orderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, variant_id, name, sku, price, quantity
		 FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var variantID sql.NullString
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &variantID,
			&item.Name, &item.SKU, &item.Price, &item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.VariantID = variantID.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row *sql.Row) (*domain.Order, error) {
	order, err := scanOrderRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func scanOrderRow(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var promoID sql.NullString
	err := row.Scan(
		&order.ID, &order.Number, &order.UserID, &order.AddressID, &order.Status,
		&order.Subtotal, &order.Shipping, &order.Tax, &order.Discount, &order.Total,
		&promoID, &order.PaymentMethod, &order.PaymentID,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	order.PromoCodeID = promoID.String
	return &order, nil
}
