package http

import (
	"errors"
	"net/http"
	"strconv"

	appDomain "loanmarket-api/internal/domain/application"
	"loanmarket-api/internal/domain/payment"
	productDomain "loanmarket-api/internal/domain/product"
	userDomain "loanmarket-api/internal/domain/user"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ---- helpers ----

// intQuery parses a non-negative int query param, falling back to def when
// absent or malformed.
func intQuery(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// statusForErr maps domain sentinels onto HTTP codes. Anything unknown is a
// server fault.
func statusForErr(err error) int {
	switch {
	case errors.Is(err, appDomain.ErrNotFound),
		errors.Is(err, productDomain.ErrNotFound),
		errors.Is(err, userDomain.ErrNotFound),
		errors.Is(err, payment.ErrSessionNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, appDomain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, appDomain.ErrInvalidTransition),
		errors.Is(err, appDomain.ErrAlreadyDecided),
		errors.Is(err, appDomain.ErrNotPending),
		errors.Is(err, appDomain.ErrSessionUnpaid),
		errors.Is(err, userDomain.ErrUnknownRole):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail renders err with its mapped status. Server faults are logged with the
// route; the message still goes to the caller.
func fail(c echo.Context, err error) error {
	code := statusForErr(err)
	if code == http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
