package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pafiast/alumni-network/internal/models"
)

// RequireAdmin gates the admin verification workflow. Runs after
// RequireLogin, so a principal is always present here.
func (t *TokenMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := Principal(c)
		if err != nil {
			return err
		}
		if principal.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}
