package application

import "context"

// ListFilter narrows List for the manager/admin review queues.
type ListFilter struct {
	Status         Status
	ApplicantEmail string
	Page           int
	Limit          int
}

// Normalize clamps paging to 1-based pages and a 1..100 limit (default 20).
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// Offset is the row offset for the normalized page.
func (f ListFilter) Offset() int { return (f.Page - 1) * f.Limit }

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)

	// GetByApplicationIDForUpdate locks the row for the enclosing
	// transaction; decisions and cancellation go through it.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)

	// LatestByProductAndApplicant resolves the application a checkout
	// session pays for. Duplicates are permitted, so "latest wins".
	LatestByProductAndApplicant(ctx context.Context, productID, applicantEmail string) (*Application, error)

	Save(ctx context.Context, a *Application) error

	// Delete soft-deletes (cancellation), recording who removed it.
	Delete(ctx context.Context, a *Application, deletedBy string) error

	ListByApplicant(ctx context.Context, applicantEmail string) ([]Application, error)

	// List returns one page plus the total count matching the filter.
	List(ctx context.Context, f ListFilter) ([]Application, int64, error)
}
