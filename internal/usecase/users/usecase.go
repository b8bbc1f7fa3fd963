package users

import (
	"context"
	"errors"
	"fmt"

	userDomain "loanmarket-api/internal/domain/user"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	users userDomain.Repository
}

func NewUsecase(users userDomain.Repository) *Usecase {
	return &Usecase{users: users}
}

// Upsert records a sign-in. First contact inserts the user with borrower
// defaults; later contacts only bump last-login (and name, when sent).
func (u *Usecase) Upsert(ctx context.Context, in UpsertInput) (*userDomain.User, error) {
	rec := &userDomain.User{
		Email:  in.Email,
		Name:   in.Name,
		Role:   userDomain.RoleBorrower,
		Status: userDomain.StatusActive,
	}
	out, err := u.users.Upsert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return out, nil
}

// RoleOf resolves the stored role for an email.
func (u *Usecase) RoleOf(ctx context.Context, email string) (userDomain.Role, error) {
	rec, err := u.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", userDomain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get user by email: %w", err)
	}
	return rec.Role, nil
}

// List returns one page of users for the admin console, never including
// the requesting admin's own record.
func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	f := userDomain.ListFilter{
		Search:       in.Search,
		Role:         userDomain.Role(in.Role),
		Status:       userDomain.Status(in.Status),
		ExcludeEmail: in.RequesterEmail,
		Page:         in.Page,
		Limit:        in.Limit,
	}
	f.Normalize()
	list, total, err := u.users.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &ListResult{Users: list, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

// SetRole assigns one of the known roles. Anything else is rejected
// before touching the store.
func (u *Usecase) SetRole(ctx context.Context, userID uint64, role userDomain.Role) (*userDomain.User, error) {
	if !userDomain.KnownRole(role) {
		return nil, userDomain.ErrUnknownRole
	}
	rec, err := u.byID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec.Role = role
	if err := u.users.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "role": role}).Info("user role changed")
	return rec, nil
}

// Suspend blocks the account and records why. There is no status state
// machine for users; any prior status may be suspended.
func (u *Usecase) Suspend(ctx context.Context, in SuspendInput) (*userDomain.User, error) {
	rec, err := u.byID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	rec.Status = userDomain.StatusSuspended
	rec.SuspendReason = in.Reason
	rec.SuspendFeedback = in.Feedback
	if err := u.users.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": in.UserID, "email": rec.Email}).Info("user suspended")
	return rec, nil
}

// Approve marks the account approved and clears any suspension note.
func (u *Usecase) Approve(ctx context.Context, userID uint64) (*userDomain.User, error) {
	rec, err := u.byID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec.Status = userDomain.StatusApproved
	rec.SuspendReason = ""
	rec.SuspendFeedback = ""
	if err := u.users.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "email": rec.Email}).Info("user approved")
	return rec, nil
}

func (u *Usecase) byID(ctx context.Context, id uint64) (*userDomain.User, error) {
	rec, err := u.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return rec, nil
}
