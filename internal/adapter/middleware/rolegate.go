package middleware

import (
	"errors"
	"fmt"
	"net/http"

	userDomain "loanmarket-api/internal/domain/user"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RequireRole loads the caller's user record and lets the request through
// only when the stored role equals required. The read happens on every
// request and is never cached, so a role change takes effect on the
// caller's next request.
func RequireRole(users userDomain.Repository, required userDomain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := AuthEmail(c)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			u, err := users.GetByEmail(c.Request().Context(), email)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return forbidden(c, required, "")
			}
			if err != nil {
				// a broken store is a server fault, not an authorization verdict
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load user"})
			}
			if u.Role != required {
				return forbidden(c, required, u.Role)
			}
			c.Set(CtxRole, string(u.Role))
			return next(c)
		}
	}
}

func forbidden(c echo.Context, required, actual userDomain.Role) error {
	return c.JSON(http.StatusForbidden, map[string]string{
		"error":         fmt.Sprintf("%s role required", required),
		"required_role": string(required),
		"actual_role":   string(actual),
	})
}
