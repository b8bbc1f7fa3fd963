package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrUnknownRole = errors.New("unknown role")
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// KnownRole reports whether r is one of the three roles the system defines.
// Role mutations must never write anything else.
func KnownRole(r Role) bool {
	switch r {
	case RoleBorrower, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusApproved  Status = "approved"
	StatusSuspended Status = "suspended"
)

type User struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"id"`
	Email           string    `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	Name            string    `gorm:"size:255" json:"name"`
	Role            Role      `gorm:"size:16;default:'borrower'" json:"role"`
	Status          Status    `gorm:"size:16;default:'active'" json:"status"`
	SuspendReason   string    `gorm:"type:text" json:"suspend_reason,omitempty"`
	SuspendFeedback string    `gorm:"type:text" json:"suspend_feedback,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastLoginAt     time.Time `json:"last_login_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
