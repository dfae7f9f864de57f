package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dealership-inventory/internal/model"
)

// RequireRole returns a middleware that enforces a minimum role for the
// authenticated identity.  Roles are ordered Client < Employee < Admin,
// so RequireRole(Employee) admits both employees and admins.  It assumes
// Session has already attached the identity; requests without one are
// rejected as unauthenticated, requests below the minimum as forbidden.
func RequireRole(min model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			if !ident.Role.AtLeast(min) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
