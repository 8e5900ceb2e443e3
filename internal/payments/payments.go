// Package payments creates upgrade orders and verifies that they were paid.
package payments

import (
	"context"
	"errors"
)

var (
	ErrPaymentNotVerified = errors.New("payment not verified")
	ErrBuyerRequired      = errors.New("order needs a signed-in buyer")
)

// Order is returned to the client to start checkout.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway is a payment provider. email identifies the buyer; a payment only
// verifies for the buyer it was created for.
type Gateway interface {
	CreateOrder(ctx context.Context, email string) (Order, error)
	VerifyPayment(ctx context.Context, paymentID, email string) error
}

// TestGateway answers with a fixed order and accepts every payment.
type TestGateway struct {
	Amount   int64
	Currency string
}

func NewTestGateway(amount int64, currency string) *TestGateway {
	if amount <= 0 {
		amount = 19900
	}
	if currency == "" {
		currency = "INR"
	}
	return &TestGateway{Amount: amount, Currency: currency}
}

func (g *TestGateway) CreateOrder(ctx context.Context, email string) (Order, error) {
	return Order{ID: "order_test_12345", Amount: g.Amount, Currency: g.Currency}, nil
}

func (g *TestGateway) VerifyPayment(ctx context.Context, paymentID, email string) error {
	return nil
}
