package appmock

import (
	"context"
	"errors"
	"testing"

	domain "loanmarket-api/internal/domain/application"
)

func TestRepo_GetByApplicationIDForUpdate(t *testing.T) {
	ctx := context.Background()
	want := &domain.Application{ApplicationID: "ap-1"}

	m := &Repo{
		GetByApplicationIDForUpdateFn: func(gotCtx context.Context, applicationID string) (*domain.Application, error) {
			if applicationID != "ap-1" {
				t.Fatalf("id mismatch: got %s", applicationID)
			}
			return want, nil
		},
	}
	got, err := m.GetByApplicationIDForUpdate(ctx, "ap-1")
	if err != nil {
		t.Fatalf("GetByApplicationIDForUpdate: unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("GetByApplicationIDForUpdate: want %+v, got %+v", want, got)
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	if got, err := m.GetByApplicationIDForUpdate(ctx, "ap-1"); err != context.Canceled || got != nil {
		t.Fatalf("default: want (nil, context.Canceled), got (%+v, %v)", got, err)
	}
}

func TestRepo_LatestByProductAndApplicant(t *testing.T) {
	ctx := context.Background()
	want := &domain.Application{ApplicationID: "ap-2"}

	m := &Repo{
		LatestByProductAndApplicantFn: func(gotCtx context.Context, productID, applicantEmail string) (*domain.Application, error) {
			if productID != "p-1" || applicantEmail != "b@x.com" {
				t.Fatalf("args mismatch: %s %s", productID, applicantEmail)
			}
			return want, nil
		},
	}
	got, err := m.LatestByProductAndApplicant(ctx, "p-1", "b@x.com")
	if err != nil {
		t.Fatalf("LatestByProductAndApplicant: unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("LatestByProductAndApplicant: want %+v, got %+v", want, got)
	}

	m = &Repo{}
	if _, err := m.LatestByProductAndApplicant(ctx, "p-1", "b@x.com"); err != context.Canceled {
		t.Fatalf("default: want context.Canceled, got %v", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	ctx := context.Background()
	a := &domain.Application{ApplicationID: "ap-3"}

	wantErr := errors.New("delete-fail")
	m := &Repo{
		DeleteFn: func(gotCtx context.Context, got *domain.Application, deletedBy string) error {
			if got != a || deletedBy != "b@x.com" {
				t.Fatalf("Delete args mismatch: %+v %s", got, deletedBy)
			}
			return wantErr
		},
	}
	if err := m.Delete(ctx, a, "b@x.com"); !errors.Is(err, wantErr) {
		t.Fatalf("Delete: want %v, got %v", wantErr, err)
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Delete(ctx, a, "b@x.com"); err != nil {
		t.Fatalf("Delete default: want nil, got %v", err)
	}
}

func TestRepo_List(t *testing.T) {
	ctx := context.Background()

	m := &Repo{
		ListFn: func(gotCtx context.Context, f domain.ListFilter) ([]domain.Application, int64, error) {
			if f.Status != domain.StatusPending || f.Limit != 5 {
				t.Fatalf("List filter not forwarded: %+v", f)
			}
			return []domain.Application{{ApplicationID: "ap-4"}}, 1, nil
		},
	}
	apps, total, err := m.List(ctx, domain.ListFilter{Status: domain.StatusPending, Limit: 5})
	if err != nil {
		t.Fatalf("List: unexpected err: %v", err)
	}
	if total != 1 || len(apps) != 1 {
		t.Fatalf("List: total=%d len=%d", total, len(apps))
	}

	m = &Repo{}
	if _, _, err := m.List(ctx, domain.ListFilter{}); err != context.Canceled {
		t.Fatalf("List default: want context.Canceled, got %v", err)
	}
}
