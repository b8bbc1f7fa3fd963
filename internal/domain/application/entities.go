package application

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan application not found")
	ErrInvalidTransition = errors.New("invalid application status transition")
	ErrAlreadyDecided    = errors.New("application already decided")
	ErrNotPending        = errors.New("application is not pending")
	ErrNotOwner          = errors.New("application belongs to another applicant")
	ErrSessionUnpaid     = errors.New("payment session is not paid")
)

type FeeStatus string

const (
	FeeUnpaid FeeStatus = "unpaid"
	FeePaid   FeeStatus = "paid"
)

type Application struct {
	ID              uint64            `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string            `gorm:"size:32;uniqueIndex:ux_loan_applications_application_id_active" json:"application_id"`
	ProductID       string            `gorm:"size:32;index:idx_loan_applications_product" json:"product_id"`
	ProductTitle    string            `gorm:"size:255" json:"product_title"`
	ApplicantEmail  string            `gorm:"size:255;index:idx_loan_applications_applicant" json:"applicant_email"`
	Fields          map[string]string `gorm:"serializer:json;type:text" json:"fields"`
	Status          Status            `gorm:"size:16;default:'pending';index:idx_loan_applications_status" json:"status"`
	FeeStatus       FeeStatus         `gorm:"size:16;default:'unpaid'" json:"fee_status"`
	PayerEmail      string            `gorm:"size:255" json:"payer_email,omitempty"`
	TransactionID   string            `gorm:"size:255" json:"transaction_id,omitempty"`
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
	RejectionReason string            `gorm:"type:text" json:"rejection_reason,omitempty"`
	HandledBy       string            `gorm:"size:255" json:"handled_by,omitempty"`
	AppliedAt       time.Time         `gorm:"autoCreateTime" json:"applied_at"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	RejectedAt      *time.Time        `json:"rejected_at,omitempty"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
	DeletedBy       string            `gorm:"size:255" json:"-"`
}

func (Application) TableName() string { return "loan_applications" }

// MarkPaid applies the confirmed-payment fields. Calling it again with the
// same session data is a no-op rewrite, which keeps confirmation idempotent.
func (a *Application) MarkPaid(payerEmail, transactionID string, at time.Time) {
	a.FeeStatus = FeePaid
	a.PayerEmail = payerEmail
	a.TransactionID = transactionID
	a.PaidAt = &at
}
