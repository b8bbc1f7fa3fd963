package mysql

import (
	"context"
	"strings"

	productDomain "loanmarket-api/internal/domain/product"

	"gorm.io/gorm"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *productDomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByProductID(ctx context.Context, productID string) (*productDomain.Product, error) {
	var out productDomain.Product
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&out)
	return &out, res.Error
}

func (r *ProductRepository) Save(ctx context.Context, p *productDomain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete soft-deletes and records who removed the product.
func (r *ProductRepository) Delete(ctx context.Context, productID, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&productDomain.Product{}).
			Where("product_id = ?", productID).
			Update("deleted_by", deletedBy)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("product_id = ?", productID).Delete(&productDomain.Product{}).Error
	})
}

func (r *ProductRepository) List(ctx context.Context, f productDomain.ListFilter) ([]productDomain.Product, int64, error) {
	f.Normalize()

	q := r.db.WithContext(ctx).Model(&productDomain.Product{})
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []productDomain.Product
	if err := q.Order("created_at DESC, id DESC").Offset(f.Offset()).Limit(f.Limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Home(ctx context.Context) ([]productDomain.Product, error) {
	var products []productDomain.Product
	err := r.db.WithContext(ctx).
		Where("show_on_home = ?", true).
		Order("updated_at DESC, id DESC").
		Limit(productDomain.HomeLimit).
		Find(&products).Error
	return products, err
}
