package http

import (
	"net/http"
	"strconv"

	"loanmarket-api/internal/adapter/middleware"
	userDomain "loanmarket-api/internal/domain/user"
	"loanmarket-api/internal/usecase/users"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *users.Usecase }

func NewUserHandler(uc *users.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type upsertUserReq struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"omitempty,max=255"`
}

// UpsertUser records a sign-in: POST /users.
func (h *UserHandler) UpsertUser(c echo.Context) error {
	var req upsertUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	u, err := h.uc.Upsert(c.Request().Context(), users.UpsertInput{Email: req.Email, Name: req.Name})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// GetRole resolves a role by email: GET /users/role/:email.
func (h *UserHandler) GetRole(c echo.Context) error {
	role, err := h.uc.RoleOf(c.Request().Context(), c.Param("email"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"role": string(role)})
}

// ListUsers serves the admin console: GET /admin/users and
// GET /admin/users-management. The requesting admin never appears in the
// result.
func (h *UserHandler) ListUsers(c echo.Context) error {
	res, err := h.uc.List(c.Request().Context(), users.ListInput{
		Search:         c.QueryParam("search"),
		Role:           c.QueryParam("role"),
		Status:         c.QueryParam("status"),
		Page:           intQuery(c, "page", 1),
		Limit:          intQuery(c, "limit", 20),
		RequesterEmail: middleware.AuthEmail(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type setRoleReq struct {
	Role string `json:"role" validate:"required,oneof=borrower manager admin"`
}

// SetUserRole: PATCH /admin/users/:id/role.
func (h *UserHandler) SetUserRole(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}
	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	u, err := h.uc.SetRole(c.Request().Context(), userID, userDomain.Role(req.Role))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

type suspendUserReq struct {
	Reason   string `json:"reason" validate:"required"`
	Feedback string `json:"feedback"`
}

// SuspendUser: PATCH /admin/users/:id/suspend.
func (h *UserHandler) SuspendUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}
	var req suspendUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	u, err := h.uc.Suspend(c.Request().Context(), users.SuspendInput{
		UserID:   userID,
		Reason:   req.Reason,
		Feedback: req.Feedback,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// ApproveUser: PATCH /admin/users/:id/approve.
func (h *UserHandler) ApproveUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}
	u, err := h.uc.Approve(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
