package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

// FindPromoByCode looks up a code case-insensitively; codes are stored upper.
func (r *Repository) FindPromoByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `SELECT id, code, description, discount_type, discount_amount, minimum_amount,
	                 start_date, end_date, usage_limit, usage_count, is_active
	          FROM promo_codes WHERE code = $1`

	var p domain.PromoCode
	var minimum decimal.NullDecimal
	var endDate sql.NullTime
	var usageLimit sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, strings.ToUpper(code)).Scan(
		&p.ID, &p.Code, &p.Description, &p.DiscountType, &p.DiscountAmount,
		&minimum, &p.StartDate, &endDate, &usageLimit, &p.UsageCount, &p.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query promo code: %w", err)
	}

	if minimum.Valid {
		p.MinimumAmount = &minimum.Decimal
	}
	if endDate.Valid {
		t := endDate.Time
		p.EndDate = &t
	}
	if usageLimit.Valid {
		n := int(usageLimit.Int64)
		p.UsageLimit = &n
	}
	return &p, nil
}

func (r *Repository) CreatePromo(ctx context.Context, p *domain.PromoCode) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Code = strings.ToUpper(p.Code)

	var minimum decimal.NullDecimal
	if p.MinimumAmount != nil {
		minimum = decimal.NullDecimal{Decimal: *p.MinimumAmount, Valid: true}
	}
	var endDate sql.NullTime
	if p.EndDate != nil {
		endDate = sql.NullTime{Time: *p.EndDate, Valid: true}
	}
	var usageLimit sql.NullInt64
	if p.UsageLimit != nil {
		usageLimit = sql.NullInt64{Int64: int64(*p.UsageLimit), Valid: true}
	}

	query := `INSERT INTO promo_codes (id, code, description, discount_type, discount_amount,
	                                   minimum_amount, start_date, end_date, usage_limit, usage_count, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Code, p.Description, p.DiscountType, p.DiscountAmount,
		minimum, p.StartDate, endDate, usageLimit, p.UsageCount, p.IsActive)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateCode
		}
		return fmt.Errorf("insert promo code: %w", err)
	}
	return nil
}
