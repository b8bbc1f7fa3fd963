package product

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("loan product not found")

type Product struct {
	ID                uint64         `gorm:"primaryKey;column:id" json:"-"`
	ProductID         string         `gorm:"size:32;uniqueIndex:ux_loan_products_product_id_active" json:"product_id"`
	Title             string         `gorm:"size:255" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	Category          string         `gorm:"size:64;index:idx_loan_products_category" json:"category"`
	InterestRate      float64        `gorm:"type:decimal(6,4)" json:"interest_rate"`
	MaxLimit          float64        `gorm:"type:decimal(18,2)" json:"max_limit"`
	EMIPlans          []string       `gorm:"serializer:json;type:text" json:"emi_plans"`
	RequiredDocuments []string       `gorm:"serializer:json;type:text" json:"required_documents"`
	ImageURL          string         `gorm:"type:text" json:"image_url"`
	ShowOnHome        bool           `gorm:"default:false" json:"show_on_home"`
	CreatedBy         string         `gorm:"size:255" json:"created_by"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy         string         `gorm:"size:255" json:"-"`
}

func (Product) TableName() string { return "loan_products" }
