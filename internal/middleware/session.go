package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dealership-inventory/internal/model"
	"github.com/iliyamo/dealership-inventory/internal/utils"
)

// IdentityKey is the context key the verified identity is stored under.
const IdentityKey = "identity"

// Session returns an Echo middleware that verifies the session token and
// injects the decoded identity into the request context.  The token is
// read from the Authorization header ("Bearer <jwt>") or, failing that,
// from the `jwt` cookie the browser front end uses.  Verification is
// stateless: signature plus expiry, no server-side session lookup.
// Handlers access the identity via middleware.IdentityFrom(c).
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			ident, err := utils.VerifySessionToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(IdentityKey, ident)
			return next(c)
		}
	}
}

// tokenFrom extracts the raw session token from the request: bearer
// header first, cookie second.
func tokenFrom(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if ck, err := c.Cookie("jwt"); err == nil && ck.Value != "" {
		return ck.Value
	}
	return ""
}

// IdentityFrom returns the identity attached by Session.  The boolean is
// false on routes that never ran the middleware.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	ident, ok := c.Get(IdentityKey).(model.Identity)
	return ident, ok
}
