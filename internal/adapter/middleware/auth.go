package middleware

import (
	"net/http"
	"strings"

	"loanmarket-api/internal/domain/identity"

	"github.com/labstack/echo/v4"
)

// Context keys for the authenticated caller.
const (
	CtxEmail = "auth.email"
	CtxRole  = "auth.role"
)

// BearerAuth extracts the bearer token, verifies it, and stores the caller's
// email on the context. A missing or malformed header short-circuits before
// the verifier is called; verifier failures are never retried.
func BearerAuth(verifier identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or malformed Authorization header"})
			}
			email, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(CtxEmail, email)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	t := strings.TrimSpace(header[len(prefix):])
	return t, t != ""
}

// AuthEmail returns the verified caller email, empty when unauthenticated.
func AuthEmail(c echo.Context) string {
	v, _ := c.Get(CtxEmail).(string)
	return v
}

// AuthRole returns the role RequireRole resolved, empty before the gate ran.
func AuthRole(c echo.Context) string {
	v, _ := c.Get(CtxRole).(string)
	return v
}
