// Package payment defines the boundary to the external payment processor.
package payment

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("checkout session not found")

// Session payment_status values as the processor reports them.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// Metadata keys attached to checkout sessions so confirmation can resolve
// the application they pay for.
const (
	MetaApplicationID  = "application_id"
	MetaLoanID         = "loan_id"
	MetaApplicantEmail = "applicant_email"
)

type CheckoutInput struct {
	AmountCents   int64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	CustomerEmail string
	// TransactionID is the processor-side payment identifier (payment
	// intent); falls back to the session id when the processor omits it.
	TransactionID string
	AmountCents   int64
	Metadata      map[string]string
}

// Provider creates hosted checkout sessions and reports their status by id.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*Session, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error)
}
