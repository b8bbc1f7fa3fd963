package paymentmock

import (
	"context"

	"loanmarket-api/internal/domain/payment"
)

var _ payment.Provider = (*Provider)(nil)

// Provider is a function-backed mock for the payment boundary. The zero
// value knows no sessions.
type Provider struct {
	CreateCheckoutSessionFn func(ctx context.Context, in payment.CheckoutInput) (*payment.Session, error)
	GetCheckoutSessionFn    func(ctx context.Context, sessionID string) (*payment.Session, error)
}

func (m *Provider) CreateCheckoutSession(ctx context.Context, in payment.CheckoutInput) (*payment.Session, error) {
	if m.CreateCheckoutSessionFn != nil {
		return m.CreateCheckoutSessionFn(ctx, in)
	}
	return nil, payment.ErrSessionNotFound
}

func (m *Provider) GetCheckoutSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	if m.GetCheckoutSessionFn != nil {
		return m.GetCheckoutSessionFn(ctx, sessionID)
	}
	return nil, payment.ErrSessionNotFound
}

// Hosted is a canned provider holding a single session keyed by id. Create
// returns it; Get resolves only that id.
func Hosted(sess *payment.Session) *Provider {
	return &Provider{
		CreateCheckoutSessionFn: func(_ context.Context, in payment.CheckoutInput) (*payment.Session, error) {
			out := *sess
			out.CustomerEmail = in.CustomerEmail
			out.AmountCents = in.AmountCents
			out.Metadata = in.Metadata
			return &out, nil
		},
		GetCheckoutSessionFn: func(_ context.Context, sessionID string) (*payment.Session, error) {
			if sessionID != sess.ID {
				return nil, payment.ErrSessionNotFound
			}
			out := *sess
			return &out, nil
		},
	}
}
