package handlers

import (
	"errors"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/es"
	"github.com/pafiast/alumni-network/internal/logging"
	midauth "github.com/pafiast/alumni-network/internal/middleware/auth"
	"github.com/pafiast/alumni-network/internal/models"
	"github.com/pafiast/alumni-network/internal/service/search"
	"github.com/pafiast/alumni-network/internal/uploads"
)

type ProfileHandler struct {
	DB      *gorm.DB
	Uploads *uploads.Store
	ES      *elasticsearch.Client
}

type profileResponse struct {
	Name               string `json:"name"`
	Whatsapp           string `json:"whatsapp"`
	ProfilePicture     string `json:"profile_picture,omitempty"`
	Certificates       string `json:"certificates,omitempty"`
	Bio                string `json:"bio"`
	IsEmployed         bool   `json:"is_employed"`
	LookingForJob      bool   `json:"looking_for_job"`
	GraduationYear     int    `json:"graduation_year"`
	Department         string `json:"department"`
	RegistrationNumber string `json:"registration_number"`
}

func toProfileResponse(u *models.User) profileResponse {
	resp := profileResponse{
		Name:               u.Name,
		Whatsapp:           u.WhatsappNumber,
		Bio:                u.Bio,
		IsEmployed:         u.IsEmployed,
		LookingForJob:      u.LookingForJob,
		GraduationYear:     u.GraduationYear,
		Department:         u.Department,
		RegistrationNumber: u.RegistrationNumber,
	}
	if u.ProfilePicture != "" {
		resp.ProfilePicture = "/uploads/" + u.ProfilePicture
	}
	if u.Certificates != "" {
		resp.Certificates = "/uploads/" + u.Certificates
	}
	return resp
}

// GetOwnProfile returns the authenticated account's profile.
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	principal, err := midauth.Principal(c)
	if err != nil {
		return err
	}
	id, err := principal.UserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var user models.User
	if err := h.DB.WithContext(c.Request().Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, toProfileResponse(&user))
}

// UpdateOwnProfile mutates profile fields of the authenticated account
// only. Multipart form so the picture and certificates can ride along.
func (h *ProfileHandler) UpdateOwnProfile(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	principal, err := midauth.Principal(c)
	if err != nil {
		return err
	}
	id, err := principal.UserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var user models.User
	if err := h.DB.WithContext(c.Request().Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if v := c.FormValue("name"); v != "" {
		user.Name = v
	}
	if v := c.FormValue("whatsapp"); v != "" {
		user.WhatsappNumber = v
	}
	if v := c.FormValue("bio"); v != "" {
		user.Bio = v
	}
	user.IsEmployed = c.FormValue("is_employed") == "true"
	user.LookingForJob = c.FormValue("looking_for_job") == "true"

	if h.Uploads != nil {
		if name, err := h.Uploads.SaveForm(c, "profile_picture"); err != nil {
			l.Error("profile picture upload failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		} else if name != "" {
			user.ProfilePicture = name
		}
		if name, err := h.Uploads.SaveForm(c, "certificates"); err != nil {
			l.Error("certificates upload failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		} else if name != "" {
			user.Certificates = name
		}
	}

	if err := h.DB.WithContext(c.Request().Context()).Save(&user).Error; err != nil {
		l.Error("profile update failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	// Keep the directory index in step with the store.
	if h.ES != nil && user.IsVerified {
		if err := search.IndexUser(c.Request().Context(), h.ES, es.AlumniIndex, &user); err != nil {
			l.Error("alumni index update failed", "error", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully"})
}

// GetPublicProfile serves the public slice of a verified account's
// profile. No auth; unverified accounts stay invisible.
func (h *ProfileHandler) GetPublicProfile(c echo.Context) error {
	regNo := c.Param("registrationNumber")

	var user models.User
	err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ? AND is_verified = ?", regNo, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, toProfileResponse(&user))
}
