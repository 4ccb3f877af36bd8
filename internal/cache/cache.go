package cache

import (
	"context"
	"errors"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, owner domain.Identity) (*domain.CartView, error)
	Set(ctx context.Context, owner domain.Identity, view *domain.CartView) error
	Delete(ctx context.Context, owner domain.Identity) error
}

var ErrCacheMiss = errors.New("cache miss")
