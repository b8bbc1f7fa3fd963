package user

import "context"

// ListFilter narrows List to the admin user-management query surface.
// Zero values mean "no filter"; ExcludeEmail drops the caller's own record.
type ListFilter struct {
	Search       string // case-insensitive substring over name and email
	Role         Role
	Status       Status
	ExcludeEmail string
	Page         int
	Limit        int
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
	// Upsert inserts the user when the email is new, otherwise refreshes
	// last-login (and name, when non-empty). Returns the stored record.
	Upsert(ctx context.Context, u *User) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint64) (*User, error)
	Save(ctx context.Context, u *User) error

	// List returns one page plus the total count matching the filter
	// (total is independent of Page/Limit).
	List(ctx context.Context, f ListFilter) ([]User, int64, error)
}
