package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	userDomain "loanmarket-api/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// Upsert is keyed by email: first sign-in inserts, later sign-ins only bump
// last-login (and name when the client sent one).
func (r *UserRepository) Upsert(ctx context.Context, u *userDomain.User) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("email = ?", u.Email).First(&out)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			u.LastLoginAt = time.Now().UTC()
			if err := tx.Create(u).Error; err != nil {
				return err
			}
			out = *u
			return nil
		}
		if res.Error != nil {
			return res.Error
		}
		out.LastLoginAt = time.Now().UTC()
		if u.Name != "" {
			out.Name = u.Name
		}
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) List(ctx context.Context, f userDomain.ListFilter) ([]userDomain.User, int64, error) {
	f.Normalize()

	q := r.db.WithContext(ctx).Model(&userDomain.User{})
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ExcludeEmail != "" {
		q = q.Where("email <> ?", f.ExcludeEmail)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []userDomain.User
	if err := q.Order("created_at DESC, id DESC").Offset(f.Offset()).Limit(f.Limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
