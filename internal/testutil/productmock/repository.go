package productmock

import (
	"context"

	domain "loanmarket-api/internal/domain/product"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the fields a test needs; unfilled getters fail loudly.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.Product) error
	GetByProductIDFn func(ctx context.Context, productID string) (*domain.Product, error)
	SaveFn           func(ctx context.Context, p *domain.Product) error
	DeleteFn         func(ctx context.Context, productID, deletedBy string) error
	ListFn           func(ctx context.Context, f domain.ListFilter) ([]domain.Product, int64, error)
	HomeFn           func(ctx context.Context) ([]domain.Product, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	if m.GetByProductIDFn != nil {
		return m.GetByProductIDFn(ctx, productID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.Product) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, productID, deletedBy string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, productID, deletedBy)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Product, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) Home(ctx context.Context) ([]domain.Product, error) {
	if m.HomeFn != nil {
		return m.HomeFn(ctx)
	}
	return nil, context.Canceled
}
