package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

const productColumns = `id, name, slug, sku, description, price, inventory, is_visible, is_featured, image_url, created_at, updated_at`

func (r *Repository) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repository) FindProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, slug))
}

func (r *Repository) FindVariant(ctx context.Context, productID, variantID string) (*domain.ProductVariant, error) {
	query := `SELECT id, product_id, name, inventory FROM product_variants
	          WHERE id = $1 AND product_id = $2`

	var v domain.ProductVariant
	err := r.db.QueryRowContext(ctx, query, variantID, productID).
		Scan(&v.ID, &v.ProductID, &v.Name, &v.Inventory)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query variant: %w", err)
	}
	return &v, nil
}

// ListProducts returns visible products matching the filter plus the total
// count for pagination.
func (r *Repository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	where := `WHERE is_visible`
	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	if filter.FeaturedOnly {
		where += ` AND is_featured`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	orderBy := "created_at"
	switch filter.SortBy {
	case "price", "name", "created_at":
		orderBy = filter.SortBy
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, perPage, (page-1)*perPage)

	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, dir, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.SKU, &p.Description, &p.Price,
			&p.Inventory, &p.IsVisible, &p.IsFeatured, &p.ImageURL,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}
	return products, total, nil
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `INSERT INTO products (id, name, slug, sku, description, price, inventory, is_visible, is_featured, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Slug, p.SKU, p.Description, p.Price,
		p.Inventory, p.IsVisible, p.IsFeatured, p.ImageURL)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *Repository) CreateVariant(ctx context.Context, v *domain.ProductVariant) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO product_variants (id, product_id, name, inventory) VALUES ($1, $2, $3, $4)`,
		v.ID, v.ProductID, v.Name, v.Inventory)
	if err != nil {
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// ListImageURLs returns every image referenced by the catalog, for the media
// janitor's in-use set.
func (r *Repository) ListImageURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT image_url FROM products WHERE image_url <> ''`)
	if err != nil {
		return nil, fmt.Errorf("query image urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan image url: %w", err)
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return urls, nil
}

func scanProduct(row *sql.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.SKU, &p.Description, &p.Price,
		&p.Inventory, &p.IsVisible, &p.IsFeatured, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
