package usermock

import (
	"context"

	domain "loanmarket-api/internal/domain/user"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the fields a test needs; unfilled getters fail loudly.
type Repo struct {
	UpsertFn     func(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uint64) (*domain.User, error)
	SaveFn       func(ctx context.Context, u *domain.User) error
	ListFn       func(ctx context.Context, f domain.ListFilter) ([]domain.User, int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Upsert(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, u)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.User, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}
