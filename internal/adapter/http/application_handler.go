package http

import (
	"net/http"

	"loanmarket-api/internal/adapter/middleware"
	appDomain "loanmarket-api/internal/domain/application"
	"loanmarket-api/internal/usecase/applications"
	"loanmarket-api/pkg/id"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *applications.Usecase }

func NewApplicationHandler(uc *applications.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitApplicationReq struct {
	LoanID    string            `json:"loan_id" validate:"required,hex32"`
	LoanTitle string            `json:"loan_title" validate:"omitempty,max=255"`
	Fields    map[string]string `json:"fields"`
}

// Submit: POST /loan-applications. The applicant is always the
// authenticated caller; the form fields are stored as sent.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.uc.Submit(c.Request().Context(), applications.SubmitInput{
		ProductID:      req.LoanID,
		ProductTitle:   req.LoanTitle,
		ApplicantEmail: middleware.AuthEmail(c),
		Fields:         req.Fields,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// MyLoans: GET /my-loans?email=. The email defaults to the caller and may
// not name anyone else.
func (h *ApplicationHandler) MyLoans(c echo.Context) error {
	email := c.QueryParam("email")
	caller := middleware.AuthEmail(c)
	if email == "" {
		email = caller
	}
	if email != caller {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "cannot list another applicant's loans"})
	}
	apps, err := h.uc.MyApplications(c.Request().Context(), email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"applications": apps})
}

// GetApplication: GET /loan-application/:id.
func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	appID := c.Param("id")
	if !id.Valid(appID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	a, err := h.uc.Get(c.Request().Context(), appID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// Cancel: PATCH /loan-applications/cancel/:id. Only the owner, only while
// pending.
func (h *ApplicationHandler) Cancel(c echo.Context) error {
	appID := c.Param("id")
	if !id.Valid(appID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	if err := h.uc.Cancel(c.Request().Context(), appID, middleware.AuthEmail(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "application canceled"})
}

type checkoutReq struct {
	LoanID string `json:"loan_id" validate:"required,hex32"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// CreateCheckoutSession: POST /create-checkout-session. Returns the hosted
// payment URL for the caller's latest application on the loan.
func (h *ApplicationHandler) CreateCheckoutSession(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	caller := middleware.AuthEmail(c)
	if req.Email != "" && req.Email != caller {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "cannot pay for another applicant's loan"})
	}
	url, err := h.uc.CreateCheckout(c.Request().Context(), applications.CheckoutInput{
		ProductID:      req.LoanID,
		ApplicantEmail: caller,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

type verifyPaymentReq struct {
	SessionID string `json:"session_id" validate:"required"`
}

// VerifyPayment: POST /loan-applications/verify-payment. Confirms the
// session with the processor and stamps the fee as paid.
func (h *ApplicationHandler) VerifyPayment(c echo.Context) error {
	var req verifyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.uc.VerifyPayment(c.Request().Context(), req.SessionID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// ListApplications backs GET /manager/loan-applications and
// GET /admin/loan-applications.
func (h *ApplicationHandler) ListApplications(c echo.Context) error {
	res, err := h.uc.List(c.Request().Context(), applications.ListInput{
		Status: c.QueryParam("status"),
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 20),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Approve: PATCH /loan-applications/manager/:id/approve. The deciding
// manager is recorded on the application.
func (h *ApplicationHandler) Approve(c echo.Context) error {
	appID := c.Param("id")
	if !id.Valid(appID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	a, err := h.uc.Decide(c.Request().Context(), applications.DecideInput{
		ApplicationID: appID,
		To:            appDomain.StatusApproved,
		HandledBy:     middleware.AuthEmail(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

type rejectReq struct {
	Reason string `json:"reason" validate:"required"`
}

// Reject: PATCH /loan-applications/manager/:id/reject.
func (h *ApplicationHandler) Reject(c echo.Context) error {
	appID := c.Param("id")
	if !id.Valid(appID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.uc.Decide(c.Request().Context(), applications.DecideInput{
		ApplicationID: appID,
		To:            appDomain.StatusRejected,
		HandledBy:     middleware.AuthEmail(c),
		Reason:        req.Reason,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

type setStatusReq struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason" validate:"required_if=Status rejected"`
}

// SetStatus: PATCH /admin/loan-applications/:id/status. Same transition
// guard as the manager routes, addressed by explicit target status.
func (h *ApplicationHandler) SetStatus(c echo.Context) error {
	appID := c.Param("id")
	if !id.Valid(appID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.uc.Decide(c.Request().Context(), applications.DecideInput{
		ApplicationID: appID,
		To:            appDomain.Status(req.Status),
		HandledBy:     middleware.AuthEmail(c),
		Reason:        req.Reason,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}
