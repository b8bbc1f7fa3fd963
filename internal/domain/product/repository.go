package product

import "context"

// HomeLimit is the fixed size of the public home-page listing.
const HomeLimit = 6

// ListFilter narrows List to the catalog query surface. Search matches the
// title as a case-insensitive substring; Category is an exact match.
type ListFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
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
	Create(ctx context.Context, p *Product) error
	GetByProductID(ctx context.Context, productID string) (*Product, error)
	Save(ctx context.Context, p *Product) error

	// Delete soft-deletes the product, recording who removed it.
	Delete(ctx context.Context, productID, deletedBy string) error

	// List returns one page plus the total count matching the filter
	// (total is independent of Page/Limit).
	List(ctx context.Context, f ListFilter) ([]Product, int64, error)

	// Home returns up to HomeLimit products flagged show_on_home.
	Home(ctx context.Context) ([]Product, error)
}
