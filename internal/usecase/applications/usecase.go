package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	appDomain "loanmarket-api/internal/domain/application"
	"loanmarket-api/internal/domain/payment"
	"loanmarket-api/internal/domain/uow"
	"loanmarket-api/pkg/id"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CheckoutConfig is the fee charged per application and where the
// processor redirects the payer afterwards.
type CheckoutConfig struct {
	FeeCents   int64
	Currency   string
	SuccessURL string
	CancelURL  string
}

type Usecase struct {
	apps     appDomain.Repository
	uow      uow.UnitOfWork
	provider payment.Provider
	checkout CheckoutConfig
}

// NewUsecase: decisions and cancellation run through the UoW so the status
// guard sees a locked row.
func NewUsecase(apps appDomain.Repository, tx uow.UnitOfWork, provider payment.Provider, checkout CheckoutConfig) *Usecase {
	return &Usecase{apps: apps, uow: tx, provider: provider, checkout: checkout}
}

// Submit files a new application in pending/unpaid state.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*appDomain.Application, error) {
	a := &appDomain.Application{
		ApplicationID:  id.NewID32(),
		ProductID:      in.ProductID,
		ProductTitle:   in.ProductTitle,
		ApplicantEmail: in.ApplicantEmail,
		Fields:         in.Fields,
		Status:         appDomain.StatusPending,
		FeeStatus:      appDomain.FeeUnpaid,
	}
	if err := u.apps.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create loan application: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"application_id": a.ApplicationID,
		"product_id":     a.ProductID,
		"applicant":      a.ApplicantEmail,
	}).Info("loan application submitted")
	return a, nil
}

// MyApplications lists everything the applicant has filed, newest first.
func (u *Usecase) MyApplications(ctx context.Context, applicantEmail string) ([]appDomain.Application, error) {
	apps, err := u.apps.ListByApplicant(ctx, applicantEmail)
	if err != nil {
		return nil, fmt.Errorf("list applications by applicant: %w", err)
	}
	return apps, nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan application: %w", err)
	}
	return a, nil
}

// List is the manager/admin review queue.
func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	f := appDomain.ListFilter{
		Status: appDomain.Status(in.Status),
		Page:   in.Page,
		Limit:  in.Limit,
	}
	f.Normalize()
	apps, total, err := u.apps.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list loan applications: %w", err)
	}
	return &ListResult{Applications: apps, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

// Cancel withdraws the requester's own pending application by soft-deleting
// it. A decided application is left untouched.
func (u *Usecase) Cancel(ctx context.Context, applicationID, requesterEmail string) error {
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if a.ApplicantEmail != requesterEmail {
			return appDomain.ErrNotOwner
		}
		if !a.CanCancel() {
			return appDomain.ErrNotPending
		}
		return r.Applications.Delete(ctx, a, requesterEmail)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appDomain.ErrNotFound
	}
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"application_id": applicationID,
		"applicant":      requesterEmail,
	}).Info("loan application canceled")
	return nil
}

// Decide moves a pending application to approved or rejected, recording who
// decided and when. Terminal applications reject the second decision
// instead of overwriting it.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*appDomain.Application, error) {
	if in.To != appDomain.StatusApproved && in.To != appDomain.StatusRejected {
		return nil, appDomain.ErrInvalidTransition
	}
	var out *appDomain.Application
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.Application) error {
		if err := a.Transition(in.To, in.HandledBy, in.Reason, time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"application_id": in.ApplicationID,
		"status":         in.To,
		"handled_by":     in.HandledBy,
	}).Info("loan application decided")
	return out, nil
}

// CreateCheckout opens a hosted payment session for the fee on the
// applicant's latest application for the product and returns the redirect
// URL. The application row is not touched until confirmation.
func (u *Usecase) CreateCheckout(ctx context.Context, in CheckoutInput) (string, error) {
	a, err := u.apps.LatestByProductAndApplicant(ctx, in.ProductID, in.ApplicantEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", appDomain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve application for checkout: %w", err)
	}

	name := a.ProductTitle
	if name == "" {
		name = "Loan application fee"
	}
	sess, err := u.provider.CreateCheckoutSession(ctx, payment.CheckoutInput{
		AmountCents:   u.checkout.FeeCents,
		Currency:      u.checkout.Currency,
		ProductName:   name,
		CustomerEmail: in.ApplicantEmail,
		SuccessURL:    u.checkout.SuccessURL,
		CancelURL:     u.checkout.CancelURL,
		Metadata: map[string]string{
			payment.MetaApplicationID:  a.ApplicationID,
			payment.MetaLoanID:         a.ProductID,
			payment.MetaApplicantEmail: a.ApplicantEmail,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"application_id": a.ApplicationID,
		"session_id":     sess.ID,
	}).Info("checkout session created")
	return sess.URL, nil
}

// VerifyPayment confirms a checkout session with the processor and, when it
// reports paid, stamps the fee fields on the application the session's
// metadata points at. Re-confirming a paid session rewrites the same
// fields, so confirmation is idempotent. An unpaid session mutates nothing.
func (u *Usecase) VerifyPayment(ctx context.Context, sessionID string) (*appDomain.Application, error) {
	sess, err := u.provider.GetCheckoutSession(ctx, sessionID)
	if errors.Is(err, payment.ErrSessionNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	if sess.PaymentStatus != payment.StatusPaid {
		return nil, appDomain.ErrSessionUnpaid
	}

	applicationID := sess.Metadata[payment.MetaApplicationID]
	if applicationID == "" {
		// not a session we issued
		return nil, appDomain.ErrNotFound
	}
	payer := sess.CustomerEmail
	if payer == "" {
		payer = sess.Metadata[payment.MetaApplicantEmail]
	}

	var out *appDomain.Application
	err = u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		a.MarkPaid(payer, sess.TransactionID, time.Now().UTC())
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"application_id": applicationID,
		"transaction_id": sess.TransactionID,
	}).Info("application fee paid")
	return out, nil
}
