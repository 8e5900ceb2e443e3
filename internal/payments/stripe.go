package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// buyerKey is the PaymentIntent metadata key holding the buyer's email.
const buyerKey = "email"

type paymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway backs orders with Stripe PaymentIntents.
type StripeGateway struct {
	intents  paymentIntents
	amount   int64
	currency string
}

func NewStripeGateway(secretKey string, amount int64, currency string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{
		intents:  sc.PaymentIntents,
		amount:   amount,
		currency: strings.ToLower(currency),
	}
}

func (g *StripeGateway) CreateOrder(ctx context.Context, email string) (Order, error) {
	if email == "" {
		return Order{}, ErrBuyerRequired
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(g.amount),
		Currency: stripe.String(g.currency),
	}
	params.Context = ctx
	params.AddMetadata(buyerKey, email)

	pi, err := g.intents.New(params)
	if err != nil {
		logger.Logger.Errorf("stripe payment intent failed: %v", err)
		return Order{}, fmt.Errorf("create payment intent: %w", err)
	}
	return Order{ID: pi.ID, Amount: pi.Amount, Currency: strings.ToUpper(string(pi.Currency))}, nil
}

// VerifyPayment accepts only a succeeded PaymentIntent that was created for
// this buyer at the configured price. Reuse of an ID is the caller's concern.
func (g *StripeGateway) VerifyPayment(ctx context.Context, paymentID, email string) error {
	if paymentID == "" || email == "" {
		return ErrPaymentNotVerified
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.intents.Get(paymentID, params)
	if err != nil {
		logger.Logger.Warnf("stripe payment lookup failed id=%s err=%v", paymentID, err)
		return fmt.Errorf("%w: %v", ErrPaymentNotVerified, err)
	}

	switch {
	case pi.Status != stripe.PaymentIntentStatusSucceeded:
		return fmt.Errorf("%w: status %s", ErrPaymentNotVerified, pi.Status)
	case pi.Metadata[buyerKey] != email:
		logger.Logger.Warnf("stripe payment buyer mismatch id=%s email=%s", paymentID, email)
		return fmt.Errorf("%w: created for another buyer", ErrPaymentNotVerified)
	case pi.Amount != g.amount || !strings.EqualFold(string(pi.Currency), g.currency):
		return fmt.Errorf("%w: paid %d %s, want %d %s",
			ErrPaymentNotVerified, pi.Amount, pi.Currency, g.amount, g.currency)
	}
	return nil
}
