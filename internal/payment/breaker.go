package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// BreakerGateway shields checkout from a misbehaving payment backend: after
// repeated failures the breaker opens and charges fail fast instead of
// stacking up timeouts.
type BreakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreakerGateway(next Gateway) *BreakerGateway {
	settings := gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerGateway{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (g *BreakerGateway) Charge(ctx context.Context, amount decimal.Decimal, method string) (string, error) {
	return g.cb.Execute(func() (string, error) {
		return g.next.Charge(ctx, amount, method)
	})
}
