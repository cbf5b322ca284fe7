package service

import (
	"context"
)

// GatewayOrder is the payment-intent reference returned by the gateway.
type GatewayOrder struct {
	OrderRef string  `json:"order_ref"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

// PaymentGateway is the settlement collaborator. The core only creates
// orders and verifies webhook signatures; the gateway owns everything else.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, orderRef string, amount float64, notes map[string]string) (*GatewayOrder, error)

	// VerifySignature checks the webhook signature over orderRef and
	// paymentRef. A mismatch must be treated as an upstream failure and
	// block the paid-state transition.
	VerifySignature(orderRef, paymentRef, signature string) error
}
