package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

// FindUserByToken resolves an API token to its user. Tokens are opaque,
// server-issued strings; issuing them is the seed tool's (or an external auth
// service's) job.
func (r *Repository) FindUserByToken(ctx context.Context, token string) (*domain.User, error) {
	query := `SELECT id, email, name, is_admin FROM users WHERE api_token = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, token).Scan(&u.ID, &u.Email, &u.Name, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by token: %w", err)
	}
	return &u, nil
}

func (r *Repository) CreateUser(ctx context.Context, u *domain.User, token string) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	query := `INSERT INTO users (id, email, name, is_admin, api_token) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.IsAdmin, nullable(token))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
