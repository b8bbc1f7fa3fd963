package catalog

import (
	productDomain "loanmarket-api/internal/domain/product"
)

// CreateInput carries a full product definition; used by create (manager)
// and by the admin full edit, which replaces every general field.
type CreateInput struct {
	Title             string
	Description       string
	Category          string
	InterestRate      float64
	MaxLimit          float64
	EMIPlans          []string
	RequiredDocuments []string
	ImageURL          string
	ShowOnHome        bool
	CreatedBy         string
}

// UpdateInput is a partial edit; nil fields are left untouched.
type UpdateInput struct {
	Title             *string
	Description       *string
	Category          *string
	InterestRate      *float64
	MaxLimit          *float64
	EMIPlans          *[]string
	RequiredDocuments *[]string
	ImageURL          *string
}

type ListInput struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type ListResult struct {
	Loans []productDomain.Product `json:"loans"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
	Total int64                   `json:"total"`
}
