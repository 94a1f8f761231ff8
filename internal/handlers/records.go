package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/authz"
	midauth "github.com/pafiast/alumni-network/internal/middleware/auth"
	"github.com/pafiast/alumni-network/internal/models"
	"github.com/pafiast/alumni-network/internal/token"
)

// principal pulls the authenticated claims off the request.
func principal(c echo.Context) (*token.Claims, error) {
	return midauth.Principal(c)
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// ownedError maps authorizer outcomes onto the HTTP boundary: a row that
// does not exist is 404, a row owned by someone else is 403.
func ownedError(err error) error {
	switch {
	case errors.Is(err, authz.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, authz.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

// requireVerified guards the public listing endpoints: records are only
// visible when their owner is a verified account.
func requireVerified(c echo.Context, db *gorm.DB, regNo string) error {
	var user models.User
	err := db.WithContext(c.Request().Context()).
		Where("registration_number = ? AND is_verified = ?", regNo, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return nil
}
