package mysql

import (
	"context"

	appDomain "loanmarket-api/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	tx := r.db.WithContext(ctx)
	// sqlite (tests) has no SELECT ... FOR UPDATE
	if r.db.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out appDomain.Application
	res := tx.Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) LatestByProductAndApplicant(ctx context.Context, productID, applicantEmail string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND applicant_email = ?", productID, applicantEmail).
		Order("applied_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete soft-deletes (cancellation) and records who removed the record.
func (r *ApplicationRepository) Delete(ctx context.Context, a *appDomain.Application, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(a).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(a).Error
	})
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantEmail string) ([]appDomain.Application, error) {
	var apps []appDomain.Application
	err := r.db.WithContext(ctx).
		Where("applicant_email = ?", applicantEmail).
		Order("applied_at DESC, id DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) List(ctx context.Context, f appDomain.ListFilter) ([]appDomain.Application, int64, error) {
	f.Normalize()

	q := r.db.WithContext(ctx).Model(&appDomain.Application{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ApplicantEmail != "" {
		q = q.Where("applicant_email = ?", f.ApplicantEmail)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var apps []appDomain.Application
	if err := q.Order("applied_at DESC, id DESC").Offset(f.Offset()).Limit(f.Limit).Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}
