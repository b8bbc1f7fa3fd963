package catalog

import (
	"context"
	"errors"
	"fmt"

	productDomain "loanmarket-api/internal/domain/product"
	"loanmarket-api/pkg/id"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct{ repo productDomain.Repository }

func NewUsecase(r productDomain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*productDomain.Product, error) {
	p := &productDomain.Product{
		ProductID:         id.NewID32(),
		Title:             in.Title,
		Description:       in.Description,
		Category:          in.Category,
		InterestRate:      in.InterestRate,
		MaxLimit:          in.MaxLimit,
		EMIPlans:          in.EMIPlans,
		RequiredDocuments: in.RequiredDocuments,
		ImageURL:          in.ImageURL,
		ShowOnHome:        in.ShowOnHome,
		CreatedBy:         in.CreatedBy,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create loan product: %w", err)
	}
	logrus.WithFields(logrus.Fields{"product_id": p.ProductID, "created_by": p.CreatedBy}).Info("loan product created")
	return p, nil
}

func (u *Usecase) Get(ctx context.Context, productID string) (*productDomain.Product, error) {
	p, err := u.repo.GetByProductID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, productDomain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan product: %w", err)
	}
	return p, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	f := productDomain.ListFilter{
		Search:   in.Search,
		Category: in.Category,
		Page:     in.Page,
		Limit:    in.Limit,
	}
	f.Normalize()
	loans, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list loan products: %w", err)
	}
	return &ListResult{Loans: loans, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

// Home is the public landing-page slice: show_on_home products only,
// capped at HomeLimit, never paginated.
func (u *Usecase) Home(ctx context.Context) ([]productDomain.Product, error) {
	loans, err := u.repo.Home(ctx)
	if err != nil {
		return nil, fmt.Errorf("home loan products: %w", err)
	}
	return loans, nil
}

// Update applies a partial edit to the general fields. The product id is
// immutable; it is never touched here.
func (u *Usecase) Update(ctx context.Context, productID string, in UpdateInput) (*productDomain.Product, error) {
	p, err := u.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.InterestRate != nil {
		p.InterestRate = *in.InterestRate
	}
	if in.MaxLimit != nil {
		p.MaxLimit = *in.MaxLimit
	}
	if in.EMIPlans != nil {
		p.EMIPlans = *in.EMIPlans
	}
	if in.RequiredDocuments != nil {
		p.RequiredDocuments = *in.RequiredDocuments
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save loan product: %w", err)
	}
	return p, nil
}

// Replace is the admin full edit: every general field plus the home flag
// is overwritten. ProductID and CreatedBy survive.
func (u *Usecase) Replace(ctx context.Context, productID string, in CreateInput) (*productDomain.Product, error) {
	p, err := u.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.Title = in.Title
	p.Description = in.Description
	p.Category = in.Category
	p.InterestRate = in.InterestRate
	p.MaxLimit = in.MaxLimit
	p.EMIPlans = in.EMIPlans
	p.RequiredDocuments = in.RequiredDocuments
	p.ImageURL = in.ImageURL
	p.ShowOnHome = in.ShowOnHome
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save loan product: %w", err)
	}
	return p, nil
}

func (u *Usecase) SetShowOnHome(ctx context.Context, productID string, show bool) (*productDomain.Product, error) {
	p, err := u.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.ShowOnHome = show
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save loan product: %w", err)
	}
	return p, nil
}

func (u *Usecase) Delete(ctx context.Context, productID, deletedBy string) error {
	err := u.repo.Delete(ctx, productID, deletedBy)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return productDomain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete loan product: %w", err)
	}
	logrus.WithFields(logrus.Fields{"product_id": productID, "deleted_by": deletedBy}).Info("loan product deleted")
	return nil
}
