package users

import (
	userDomain "loanmarket-api/internal/domain/user"
)

// UpsertInput is the sign-in payload. Email is the identity key; Name is
// optional and only overwrites the stored name when non-empty.
type UpsertInput struct {
	Email string
	Name  string
}

// ListInput is the admin user-management query. RequesterEmail is always
// excluded from the results.
type ListInput struct {
	Search         string
	Role           string
	Status         string
	Page           int
	Limit          int
	RequesterEmail string
}

type ListResult struct {
	Users []userDomain.User `json:"users"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
}

type SuspendInput struct {
	UserID   uint64
	Reason   string
	Feedback string
}
