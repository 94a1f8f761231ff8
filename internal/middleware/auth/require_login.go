package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/token"
)

const principalKey = "principal"

type TokenMiddleware struct {
	JWTSecret []byte
}

// RequireLogin authenticates the request from the Authorization header and
// attaches the decoded claims as the request principal. The request never
// reaches a handler without a valid token.
func (t *TokenMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}

		claims, err := token.Verify(raw, t.JWTSecret)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				l.Warn("auth failed", "reason", "token expired", "path", c.Path())
			} else {
				l.Warn("auth failed", "reason", "invalid token", "path", c.Path())
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(principalKey, claims)
		return next(c)
	}
}
