package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/groceteria/groceteria-backend/pkg/logger"
)

// Intent describes a payment to be processed by a gateway.
type Intent struct {
	OrderID uint
	UserID  uint
	Amount  float64
}

// Result is the gateway's verdict on an intent.
type Result struct {
	Succeeded bool
	Reference string
}

// Processor processes a payment intent and reports success or failure.
// PaymentService only talks to this interface, so wiring in a real gateway
// later does not touch any call site.
type Processor interface {
	Process(ctx context.Context, intent Intent) (Result, error)
}

// SimulatedGateway is the placeholder processor: it waits a fixed delay to
// mimic a provider round trip and reports a configured outcome.
type SimulatedGateway struct {
	Delay      time.Duration
	AlwaysFail bool
}

func NewSimulatedGateway(delay time.Duration, alwaysFail bool) *SimulatedGateway {
	return &SimulatedGateway{Delay: delay, AlwaysFail: alwaysFail}
}

func (g *SimulatedGateway) Process(ctx context.Context, intent Intent) (Result, error) {
	logger.Info("Processing payment through simulated gateway", map[string]interface{}{
		"order_id": intent.OrderID,
		"user_id":  intent.UserID,
		"amount":   intent.Amount,
		"delay":    g.Delay.String(),
	})

	select {
	case <-time.After(g.Delay):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	if g.AlwaysFail {
		logger.Warn("Simulated gateway reporting failure", map[string]interface{}{
			"order_id": intent.OrderID,
		})
		return Result{Succeeded: false}, nil
	}

	return Result{
		Succeeded: true,
		Reference: uuid.NewString(),
	}, nil
}
