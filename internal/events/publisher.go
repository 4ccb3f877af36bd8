package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreated is emitted after a checkout commits.
type OrderCreated struct {
	OrderID   string          `json:"order_id"`
	Number    string          `json:"number"`
	UserID    string          `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
}
