package db

import (
	"loanmarket-api/internal/domain/application"
	"loanmarket-api/internal/domain/product"
	"loanmarket-api/internal/domain/user"

	"gorm.io/gorm"
)

// Migrate creates or updates the three collections' schemas.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &product.Product{}, &application.Application{})
}
