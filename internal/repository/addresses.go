package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

func (r *Repository) FindAddressForUser(ctx context.Context, addressID, userID string) (*domain.Address, error) {
	query := `SELECT id, user_id, street, city, state, postal_code, country, is_default
	          FROM addresses WHERE id = $1 AND user_id = $2`

	var a domain.Address
	err := r.db.QueryRowContext(ctx, query, addressID, userID).Scan(
		&a.ID, &a.UserID, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country, &a.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query address: %w", err)
	}
	return &a, nil
}

func (r *Repository) CreateAddress(ctx context.Context, a *domain.Address) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `INSERT INTO addresses (id, user_id, street, city, state, postal_code, country, is_default)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Street, a.City, a.State, a.PostalCode, a.Country, a.IsDefault)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}
