package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway charges the customer and returns a payment reference. The real
// integration is out of scope; SimulatedGateway stands in for it.
type Gateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, method string) (string, error)
}

type SimulatedGateway struct{}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{}
}

func (g *SimulatedGateway) Charge(_ context.Context, _ decimal.Decimal, _ string) (string, error) {
	ref := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("PAY-%s", ref), nil
}
