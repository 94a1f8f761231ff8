package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pafiast/alumni-network/internal/token"
)

// Principal returns the claims attached by RequireLogin.
func Principal(c echo.Context) (*token.Claims, error) {
	claims, ok := c.Get(principalKey).(*token.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}
	return claims, nil
}

// SetPrincipal injects claims directly, bypassing token verification.
// Test helper only.
func SetPrincipal(c echo.Context, claims *token.Claims) {
	c.Set(principalKey, claims)
}
