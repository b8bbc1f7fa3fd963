package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "loanmarket-api/internal/domain/application"
	"loanmarket-api/internal/domain/payment"
	"loanmarket-api/internal/domain/uow"
	"loanmarket-api/internal/testutil/appmock"
	"loanmarket-api/internal/testutil/paymentmock"
	"loanmarket-api/internal/testutil/uowmock"
	"loanmarket-api/pkg/id"

	"gorm.io/gorm"
)

// -------- helpers --------

var testCheckout = CheckoutConfig{
	FeeCents:   1000,
	Currency:   "usd",
	SuccessURL: "https://client.test/payment-success",
	CancelURL:  "https://client.test/payment-cancelled",
}

// rowUoW hands fn the repos plus a row looked up in rows, mirroring the
// locked read the real unit of work performs.
func rowUoW(apps *appmock.Repo, rows map[string]*domain.Application) *uowmock.UoW {
	return uowmock.PassThrough(uow.Repos{Applications: apps}, func(applicationID string) (*domain.Application, error) {
		a, ok := rows[applicationID]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return a, nil
	})
}

// -------- tests --------

func TestSubmit_DefaultsToPendingUnpaid(t *testing.T) {
	var created *domain.Application
	apps := &appmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			created = a
			return nil
		},
	}
	u := NewUsecase(apps, uowmock.New(), &paymentmock.Provider{}, testCheckout)

	got, err := u.Submit(context.Background(), SubmitInput{
		ProductID:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		ProductTitle:   "Home Improvement Loan",
		ApplicantEmail: "a@x.com",
		Fields:         map[string]string{"income": "52000"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created == nil || created != got {
		t.Fatalf("Create not called with returned application")
	}
	if got.Status != domain.StatusPending || got.FeeStatus != domain.FeeUnpaid {
		t.Fatalf("defaults wrong: status=%s fee=%s", got.Status, got.FeeStatus)
	}
	if !id.Valid(got.ApplicationID) {
		t.Fatalf("application id not 32-hex: %q", got.ApplicationID)
	}
	if got.Fields["income"] != "52000" {
		t.Fatalf("fields not stored: %+v", got.Fields)
	}
}

func TestSubmit_DuplicatesAllowed(t *testing.T) {
	var count int
	apps := &appmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			count++
			return nil
		},
	}
	u := NewUsecase(apps, uowmock.New(), &paymentmock.Provider{}, testCheckout)

	in := SubmitInput{ProductID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", ApplicantEmail: "a@x.com"}
	first, err := u.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	second, err := u.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if count != 2 {
		t.Fatalf("Create calls = %d, want 2", count)
	}
	if first.ApplicationID == second.ApplicationID {
		t.Fatalf("duplicate submissions must get distinct ids")
	}
}

func TestCancel_PendingOwner(t *testing.T) {
	appID := "cccccccccccccccccccccccccccccccc"
	row := &domain.Application{ApplicationID: appID, ApplicantEmail: "a@x.com", Status: domain.StatusPending}

	var deleted bool
	apps := &appmock.Repo{
		DeleteFn: func(ctx context.Context, a *domain.Application, deletedBy string) error {
			if a.ApplicationID != appID || deletedBy != "a@x.com" {
				t.Fatalf("Delete(%s, %s)", a.ApplicationID, deletedBy)
			}
			deleted = true
			return nil
		},
	}
	u := NewUsecase(apps, rowUoW(apps, map[string]*domain.Application{appID: row}), &paymentmock.Provider{}, testCheckout)

	if err := u.Cancel(context.Background(), appID, "a@x.com"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !deleted {
		t.Fatalf("pending cancel must delete the row")
	}
}

func TestCancel_Guards(t *testing.T) {
	appID := "cccccccccccccccccccccccccccccccc"

	tests := []struct {
		name      string
		row       *domain.Application
		requester string
		wantErr   error
	}{
		{
			name:      "not the owner",
			row:       &domain.Application{ApplicationID: appID, ApplicantEmail: "a@x.com", Status: domain.StatusPending},
			requester: "b@x.com",
			wantErr:   domain.ErrNotOwner,
		},
		{
			name:      "already approved",
			row:       &domain.Application{ApplicationID: appID, ApplicantEmail: "a@x.com", Status: domain.StatusApproved},
			requester: "a@x.com",
			wantErr:   domain.ErrNotPending,
		},
		{
			name:      "already rejected",
			row:       &domain.Application{ApplicationID: appID, ApplicantEmail: "a@x.com", Status: domain.StatusRejected},
			requester: "a@x.com",
			wantErr:   domain.ErrNotPending,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			apps := &appmock.Repo{
				DeleteFn: func(ctx context.Context, a *domain.Application, deletedBy string) error {
					t.Fatalf("Delete must not run")
					return nil
				},
			}
			u := NewUsecase(apps, rowUoW(apps, map[string]*domain.Application{appID: tc.row}), &paymentmock.Provider{}, testCheckout)

			err := u.Cancel(context.Background(), appID, tc.requester)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCancel_NotFound(t *testing.T) {
	apps := &appmock.Repo{}
	u := NewUsecase(apps, rowUoW(apps, nil), &paymentmock.Provider{}, testCheckout)

	err := u.Cancel(context.Background(), "cccccccccccccccccccccccccccccccc", "a@x.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDecide_ApproveRecordsHandler(t *testing.T) {
	appID := "cccccccccccccccccccccccccccccccc"
	row := &domain.Application{ApplicationID: appID, ApplicantEmail: "a@x.com", Status: domain.StatusPending}

	var saved *domain.Application
	apps := &appmock.Repo{
		SaveFn: func(ctx context.Context, a *domain.Application) error {
			saved = a
			return nil
		},
	}
	u := NewUsecase(apps, rowUoW(apps, map[string]*domain.Application{appID: row}), &paymentmock.Provider{}, testCheckout)

	got, err := u.Decide(context.Background(), DecideInput{
		ApplicationID: appID,
		To:            domain.StatusApproved,
		HandledBy:     "manager@bank.test",
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if saved == nil {
		t.Fatalf("Save not called")
	}
	if got.Status != domain.StatusApproved || got.HandledBy != "manager@bank.test" {
		t.Fatalf("decision not recorded: %+v", got)
	}
	if got.ApprovedAt == nil {
		t.Fatalf("approved_at not set")
	}
}

func TestDecide_RejectStoresReason(t *testing.T) {
	appID := "cccccccccccccccccccccccccccccccc"
	row := &domain.Application{ApplicationID: appID, Status: domain.StatusPending}
	apps := &appmock.Repo{SaveFn: func(ctx context.Context, a *domain.Application) error { return nil }}
	u := NewUsecase(apps, rowUoW(apps, map[string]*domain.Application{appID: row}), &paymentmock.Provider{}, testCheckout)

	got, err := u.Decide(context.Background(), DecideInput{
		ApplicationID: appID,
		To:            domain.StatusRejected,
		HandledBy:     "admin@bank.test",
		Reason:        "income below threshold",
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Status != domain.StatusRejected || got.RejectionReason != "income below threshold" {
		t.Fatalf("rejection not recorded: %+v", got)
	}
	if got.RejectedAt == nil {
		t.Fatalf("rejected_at not set")
	}
}

func TestDecide_SecondDecisionRejected(t *testing.T) {
	appID := "cccccccccccccccccccccccccccccccc"
	row := &domain.Application{ApplicationID: appID, Status: domain.StatusApproved, HandledBy: "first@bank.test"}
	apps := &appmock.Repo{
		SaveFn: func(ctx context.Context, a *domain.Application) error {
			t.Fatalf("Save must not run on a decided application")
			return nil
		},
	}
	u := NewUsecase(apps, rowUoW(apps, map[string]*domain.Application{appID: row}), &paymentmock.Provider{}, testCheckout)

	_, err := u.Decide(context.Background(), DecideInput{
		ApplicationID: appID,
		To:            domain.StatusRejected,
		HandledBy:     "second@bank.test",
		Reason:        "changed my mind",
	})
	if !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("err = %v, want ErrAlreadyDecided", err)
	}
	if row.HandledBy != "first@bank.test" {
		t.Fatalf("decision metadata overwritten: %+v", row)
	}
}

func TestDecide_OnlyTerminalTargets(t *testing.T) {
	apps := &appmock.Repo{}
	u := NewUsecase(apps, uowmock.New(), &paymentmock.Provider{}, testCheckout)

	for _, to := range []domain.Status{domain.StatusPending, domain.StatusCanceled, domain.Status("weird")} {
		_, err := u.Decide(context.Background(), DecideInput{ApplicationID: "cccccccccccccccccccccccccccccccc", To: to})
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("Decide(to=%s) err = %v, want ErrInvalidTransition", to, err)
		}
	}
}

func TestCreateCheckout_LatestApplicationWins(t *testing.T) {
	latest := &domain.Application{
		ApplicationID:  "dddddddddddddddddddddddddddddddd",
		ProductID:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		ProductTitle:   "Car Loan",
		ApplicantEmail: "a@x.com",
	}
	apps := &appmock.Repo{
		LatestByProductAndApplicantFn: func(ctx context.Context, productID, email string) (*domain.Application, error) {
			if productID != latest.ProductID || email != "a@x.com" {
				t.Fatalf("Latest(%s, %s)", productID, email)
			}
			return latest, nil
		},
	}
	var gotIn payment.CheckoutInput
	provider := &paymentmock.Provider{
		CreateCheckoutSessionFn: func(ctx context.Context, in payment.CheckoutInput) (*payment.Session, error) {
			gotIn = in
			return &payment.Session{ID: "cs_test_1", URL: "https://pay.test/cs_test_1"}, nil
		},
	}
	u := NewUsecase(apps, uowmock.New(), provider, testCheckout)

	url, err := u.CreateCheckout(context.Background(), CheckoutInput{
		ProductID:      latest.ProductID,
		ApplicantEmail: "a@x.com",
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if url != "https://pay.test/cs_test_1" {
		t.Fatalf("url = %q", url)
	}
	if gotIn.AmountCents != 1000 || gotIn.Currency != "usd" || gotIn.ProductName != "Car Loan" {
		t.Fatalf("checkout input wrong: %+v", gotIn)
	}
	if gotIn.Metadata[payment.MetaApplicationID] != latest.ApplicationID {
		t.Fatalf("session metadata must carry the application id: %+v", gotIn.Metadata)
	}
}

func TestCreateCheckout_NoApplication(t *testing.T) {
	apps := &appmock.Repo{
		LatestByProductAndApplicantFn: func(ctx context.Context, productID, email string) (*domain.Application, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	u := NewUsecase(apps, uowmock.New(), &paymentmock.Provider{}, testCheckout)

	_, err := u.CreateCheckout(context.Background(), CheckoutInput{
		ProductID:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		ApplicantEmail: "a@x.com",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestVerifyPayment_PaidStampsFee(t *testing.T) {
	appID := "dddddddddddddddddddddddddddddddd"
	row := &domain.Application{ApplicationID: appID, ApplicantEmail: "a@x.com", Status: domain.StatusPending, FeeStatus: domain.FeeUnpaid}

	var saved *domain.Application
	apps := &appmock.Repo{
		SaveFn: func(ctx context.Context, a *domain.Application) error {
			saved = a
			return nil
		},
	}
	provider := &paymentmock.Provider{
		GetCheckoutSessionFn: func(ctx context.Context, sessionID string) (*payment.Session, error) {
			return &payment.Session{
				ID:            sessionID,
				PaymentStatus: payment.StatusPaid,
				CustomerEmail: "a@x.com",
				TransactionID: "pi_777",
				Metadata:      map[string]string{payment.MetaApplicationID: appID},
			}, nil
		},
	}
	u := NewUsecase(apps, rowUoW(apps, map[string]*domain.Application{appID: row}), provider, testCheckout)

	got, err := u.VerifyPayment(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if saved == nil {
		t.Fatalf("Save not called")
	}
	if got.FeeStatus != domain.FeePaid || got.PayerEmail != "a@x.com" || got.TransactionID != "pi_777" {
		t.Fatalf("payment fields wrong: %+v", got)
	}
	if got.PaidAt == nil {
		t.Fatalf("paid_at not set")
	}
	if got.Status != domain.StatusPending {
		t.Fatalf("fee payment must not touch status, got %s", got.Status)
	}
}

func TestVerifyPayment_UnpaidMutatesNothing(t *testing.T) {
	apps := &appmock.Repo{
		SaveFn: func(ctx context.Context, a *domain.Application) error {
			t.Fatalf("Save must not run for an unpaid session")
			return nil
		},
	}
	provider := &paymentmock.Provider{
		GetCheckoutSessionFn: func(ctx context.Context, sessionID string) (*payment.Session, error) {
			return &payment.Session{ID: sessionID, PaymentStatus: payment.StatusUnpaid}, nil
		},
	}
	u := NewUsecase(apps, uowmock.New(), provider, testCheckout)

	_, err := u.VerifyPayment(context.Background(), "cs_test_1")
	if !errors.Is(err, domain.ErrSessionUnpaid) {
		t.Fatalf("err = %v, want ErrSessionUnpaid", err)
	}
}

func TestVerifyPayment_SessionUnknown(t *testing.T) {
	u := NewUsecase(&appmock.Repo{}, uowmock.New(), &paymentmock.Provider{}, testCheckout)

	_, err := u.VerifyPayment(context.Background(), "cs_missing")
	if !errors.Is(err, payment.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestVerifyPayment_ForeignSessionRejected(t *testing.T) {
	provider := &paymentmock.Provider{
		GetCheckoutSessionFn: func(ctx context.Context, sessionID string) (*payment.Session, error) {
			// paid, but no application id attached
			return &payment.Session{ID: sessionID, PaymentStatus: payment.StatusPaid}, nil
		},
	}
	u := NewUsecase(&appmock.Repo{}, uowmock.New(), provider, testCheckout)

	_, err := u.VerifyPayment(context.Background(), "cs_foreign")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestVerifyPayment_Idempotent(t *testing.T) {
	appID := "dddddddddddddddddddddddddddddddd"
	paidAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	row := &domain.Application{
		ApplicationID: appID,
		Status:        domain.StatusPending,
		FeeStatus:     domain.FeePaid,
		PayerEmail:    "a@x.com",
		TransactionID: "pi_777",
		PaidAt:        &paidAt,
	}
	apps := &appmock.Repo{SaveFn: func(ctx context.Context, a *domain.Application) error { return nil }}
	provider := &paymentmock.Provider{
		GetCheckoutSessionFn: func(ctx context.Context, sessionID string) (*payment.Session, error) {
			return &payment.Session{
				ID:            sessionID,
				PaymentStatus: payment.StatusPaid,
				CustomerEmail: "a@x.com",
				TransactionID: "pi_777",
				Metadata:      map[string]string{payment.MetaApplicationID: appID},
			}, nil
		},
	}
	u := NewUsecase(apps, rowUoW(apps, map[string]*domain.Application{appID: row}), provider, testCheckout)

	got, err := u.VerifyPayment(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("re-verify: %v", err)
	}
	if got.FeeStatus != domain.FeePaid || got.PayerEmail != "a@x.com" || got.TransactionID != "pi_777" {
		t.Fatalf("re-verify changed payment fields: %+v", got)
	}
}

func TestList_PagingEchoed(t *testing.T) {
	apps := &appmock.Repo{
		ListFn: func(ctx context.Context, f domain.ListFilter) ([]domain.Application, int64, error) {
			if f.Status != domain.StatusPending {
				t.Fatalf("status filter = %q", f.Status)
			}
			if f.Page != 1 || f.Limit != 20 {
				t.Fatalf("normalized paging = %d/%d", f.Page, f.Limit)
			}
			return []domain.Application{{ApplicationID: "cccccccccccccccccccccccccccccccc"}}, 41, nil
		},
	}
	u := NewUsecase(apps, uowmock.New(), &paymentmock.Provider{}, testCheckout)

	res, err := u.List(context.Background(), ListInput{Status: "pending", Page: 0, Limit: -3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 41 || res.Page != 1 || res.Limit != 20 || len(res.Applications) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
