package uow

import (
	"context"

	"loanmarket-api/internal/domain/application"
	"loanmarket-api/internal/domain/product"
	"loanmarket-api/internal/domain/user"
)

type Repos struct {
	Users        user.Repository
	Products     product.Repository
	Applications application.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
