package http

import (
	"context"
	"net/http"
	"time"

	"loanmarket-api/internal/adapter/middleware"
	productDomain "loanmarket-api/internal/domain/product"
	"loanmarket-api/internal/infrastructure/cache"
	"loanmarket-api/internal/usecase/catalog"
	"loanmarket-api/pkg/id"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Cache keys for the hot public reads. Every catalog mutation invalidates
// them, so stale entries last at most cacheTTL.
const (
	cacheKeyHome = "catalog:home"
	cacheKeyLoan = "catalog:loan:" // + product id
)

type CatalogHandler struct {
	uc       *catalog.Usecase
	rdb      *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewCatalogHandler(uc *catalog.Usecase, rdb *redis.Client, cacheTTL time.Duration) *CatalogHandler {
	return &CatalogHandler{uc: uc, rdb: rdb, cacheTTL: cacheTTL}
}

// Home: GET /loans/home. Public, fixed-size, served from cache when warm.
func (h *CatalogHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	if h.rdb != nil {
		var cached []productDomain.Product
		if ok, _ := cache.GetJSON(ctx, h.rdb, cacheKeyHome, &cached); ok {
			return c.JSON(http.StatusOK, map[string]any{"loans": cached})
		}
	}
	loans, err := h.uc.Home(ctx)
	if err != nil {
		return fail(c, err)
	}
	if h.rdb != nil {
		_ = cache.SetJSON(ctx, h.rdb, cacheKeyHome, loans, h.cacheTTL)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans})
}

// ListLoans backs GET /all-loans, GET /loans, and GET /admin/loans.
func (h *CatalogHandler) ListLoans(c echo.Context) error {
	res, err := h.uc.List(c.Request().Context(), catalog.ListInput{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 20),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetLoan backs GET /loan/:id and GET /admin/loans/:id.
func (h *CatalogHandler) GetLoan(c echo.Context) error {
	pid := c.Param("id")
	if !id.Valid(pid) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	ctx := c.Request().Context()
	if h.rdb != nil {
		var cached productDomain.Product
		if ok, _ := cache.GetJSON(ctx, h.rdb, cacheKeyLoan+pid, &cached); ok {
			return c.JSON(http.StatusOK, cached)
		}
	}
	p, err := h.uc.Get(ctx, pid)
	if err != nil {
		return fail(c, err)
	}
	if h.rdb != nil {
		_ = cache.SetJSON(ctx, h.rdb, cacheKeyLoan+pid, p, h.cacheTTL)
	}
	return c.JSON(http.StatusOK, p)
}

type createLoanReq struct {
	Title             string   `json:"title" validate:"required,max=255"`
	Description       string   `json:"description"`
	Category          string   `json:"category" validate:"omitempty,max=64"`
	InterestRate      float64  `json:"interest_rate" validate:"gte=0"`
	MaxLimit          float64  `json:"max_limit" validate:"gte=0,dec2"`
	EMIPlans          []string `json:"emi_plans"`
	RequiredDocuments []string `json:"required_documents"`
	ImageURL          string   `json:"image_url" validate:"omitempty,url"`
	ShowOnHome        bool     `json:"show_on_home"`
}

func (r createLoanReq) toInput(createdBy string) catalog.CreateInput {
	return catalog.CreateInput{
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		InterestRate:      r.InterestRate,
		MaxLimit:          r.MaxLimit,
		EMIPlans:          r.EMIPlans,
		RequiredDocuments: r.RequiredDocuments,
		ImageURL:          r.ImageURL,
		ShowOnHome:        r.ShowOnHome,
		CreatedBy:         createdBy,
	}
}

// CreateLoan: POST /loans (manager).
func (h *CatalogHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	p, err := h.uc.Create(c.Request().Context(), req.toInput(middleware.AuthEmail(c)))
	if err != nil {
		return fail(c, err)
	}
	h.invalidate(c.Request().Context(), "")
	return c.JSON(http.StatusCreated, p)
}

type updateLoanReq struct {
	Title             *string   `json:"title" validate:"omitempty,max=255"`
	Description       *string   `json:"description"`
	Category          *string   `json:"category" validate:"omitempty,max=64"`
	InterestRate      *float64  `json:"interest_rate" validate:"omitempty,gte=0"`
	MaxLimit          *float64  `json:"max_limit" validate:"omitempty,gte=0,dec2"`
	EMIPlans          *[]string `json:"emi_plans"`
	RequiredDocuments *[]string `json:"required_documents"`
	ImageURL          *string   `json:"image_url" validate:"omitempty,url"`
}

// UpdateLoan: PATCH /loans/:id (manager), partial edit.
func (h *CatalogHandler) UpdateLoan(c echo.Context) error {
	pid := c.Param("id")
	if !id.Valid(pid) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	p, err := h.uc.Update(c.Request().Context(), pid, catalog.UpdateInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		InterestRate:      req.InterestRate,
		MaxLimit:          req.MaxLimit,
		EMIPlans:          req.EMIPlans,
		RequiredDocuments: req.RequiredDocuments,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		return fail(c, err)
	}
	h.invalidate(c.Request().Context(), pid)
	return c.JSON(http.StatusOK, p)
}

// ReplaceLoan: PUT /admin/loans/:id, full edit of every general field plus
// the home flag.
func (h *CatalogHandler) ReplaceLoan(c echo.Context) error {
	pid := c.Param("id")
	if !id.Valid(pid) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	p, err := h.uc.Replace(c.Request().Context(), pid, req.toInput(""))
	if err != nil {
		return fail(c, err)
	}
	h.invalidate(c.Request().Context(), pid)
	return c.JSON(http.StatusOK, p)
}

type showOnHomeReq struct {
	ShowOnHome *bool `json:"show_on_home" validate:"required"`
}

// SetShowOnHome: PATCH /admin/loans/:id/show-on-home.
func (h *CatalogHandler) SetShowOnHome(c echo.Context) error {
	pid := c.Param("id")
	if !id.Valid(pid) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req showOnHomeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	p, err := h.uc.SetShowOnHome(c.Request().Context(), pid, *req.ShowOnHome)
	if err != nil {
		return fail(c, err)
	}
	h.invalidate(c.Request().Context(), pid)
	return c.JSON(http.StatusOK, p)
}

// DeleteLoan backs DELETE /loans/:id and DELETE /admin/loans/:id.
func (h *CatalogHandler) DeleteLoan(c echo.Context) error {
	pid := c.Param("id")
	if !id.Valid(pid) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	if err := h.uc.Delete(c.Request().Context(), pid, middleware.AuthEmail(c)); err != nil {
		return fail(c, err)
	}
	h.invalidate(c.Request().Context(), pid)
	return c.JSON(http.StatusOK, map[string]string{"message": "loan product deleted"})
}

func (h *CatalogHandler) invalidate(ctx context.Context, productID string) {
	if h.rdb == nil {
		return
	}
	keys := []string{cacheKeyHome}
	if productID != "" {
		keys = append(keys, cacheKeyLoan+productID)
	}
	_ = cache.Delete(ctx, h.rdb, keys...)
}
