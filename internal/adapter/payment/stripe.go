// Package payment implements the checkout-provider boundary on Stripe
// Checkout hosted sessions.
package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	domain "loanmarket-api/internal/domain/payment"
)

type StripeProvider struct{ sc *client.API }

var _ domain.Provider = (*StripeProvider)(nil)

func NewStripeProvider(secretKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeProvider{sc: sc}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, in domain.CheckoutInput) (*domain.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(in.CustomerEmail),
		SuccessURL:    stripe.String(in.SuccessURL),
		CancelURL:     stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(in.Currency),
				UnitAmount: stripe.Int64(in.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(in.ProductName),
				},
			},
		}},
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := p.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripe(s), nil
}

func (p *StripeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := p.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return fromStripe(s), nil
}

func fromStripe(s *stripe.CheckoutSession) *domain.Session {
	out := &domain.Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		CustomerEmail: s.CustomerEmail,
		TransactionID: s.ID,
		AmountCents:   s.AmountTotal,
		Metadata:      s.Metadata,
	}
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	if s.PaymentIntent != nil && s.PaymentIntent.ID != "" {
		out.TransactionID = s.PaymentIntent.ID
	}
	return out
}
