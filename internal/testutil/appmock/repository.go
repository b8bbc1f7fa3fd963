package appmock

import (
	"context"

	domain "loanmarket-api/internal/domain/application"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the fields a test needs; unfilled getters fail loudly.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	LatestByProductAndApplicantFn func(ctx context.Context, productID, applicantEmail string) (*domain.Application, error)
	SaveFn                        func(ctx context.Context, a *domain.Application) error
	DeleteFn                      func(ctx context.Context, a *domain.Application, deletedBy string) error
	ListByApplicantFn             func(ctx context.Context, applicantEmail string) ([]domain.Application, error)
	ListFn                        func(ctx context.Context, f domain.ListFilter) ([]domain.Application, int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) LatestByProductAndApplicant(ctx context.Context, productID, applicantEmail string) (*domain.Application, error) {
	if m.LatestByProductAndApplicantFn != nil {
		return m.LatestByProductAndApplicantFn(ctx, productID, applicantEmail)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, a *domain.Application, deletedBy string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, a, deletedBy)
	}
	return nil
}

func (m *Repo) ListByApplicant(ctx context.Context, applicantEmail string) ([]domain.Application, error) {
	if m.ListByApplicantFn != nil {
		return m.ListByApplicantFn(ctx, applicantEmail)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Application, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}
