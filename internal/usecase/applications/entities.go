package applications

import (
	appDomain "loanmarket-api/internal/domain/application"
)

// SubmitInput is the borrower's application form. Fields is free-form and
// stored as sent; nothing checks that the product exists, and repeat
// applications for the same product are permitted.
type SubmitInput struct {
	ProductID      string
	ProductTitle   string
	ApplicantEmail string
	Fields         map[string]string
}

// DecideInput moves a pending application to a terminal status.
type DecideInput struct {
	ApplicationID string
	To            appDomain.Status
	HandledBy     string
	Reason        string
}

// CheckoutInput starts fee payment for the applicant's latest application
// on a product.
type CheckoutInput struct {
	ProductID      string
	ApplicantEmail string
}

type ListInput struct {
	Status string
	Page   int
	Limit  int
}

type ListResult struct {
	Applications []appDomain.Application `json:"applications"`
	Page         int                     `json:"page"`
	Limit        int                     `json:"limit"`
	Total        int64                   `json:"total"`
}
