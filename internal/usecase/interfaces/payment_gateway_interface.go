package interfaces

import (
	"context"
	"time"
)

// OrderRequest asks the gateway to open a checkout order for Amount.
type OrderRequest struct {
	Amount   int64
	Currency string
	// Receipt is our payment id, echoed back by the gateway for reconciliation.
	Receipt     string
	Description string
	Metadata    map[string]string
	// ExpiresAt closes the checkout. Zero leaves it open.
	ExpiresAt time.Time
}

// GatewayOrder is the order the client pays against.
type GatewayOrder struct {
	OrderID     string
	CheckoutURL string
}

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
type IPaymentGateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (GatewayOrder, error)
}
