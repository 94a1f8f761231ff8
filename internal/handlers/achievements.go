package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/authz"
	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
	"github.com/pafiast/alumni-network/internal/uploads"
)

type AchievementHandler struct {
	DB      *gorm.DB
	Uploads *uploads.Store
}

func (h *AchievementHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var items []models.Achievement
	if err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", p.RegistrationNumber).
		Order("id DESC").
		Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AchievementHandler) ListPublic(c echo.Context) error {
	regNo := c.Param("registrationNumber")
	if err := requireVerified(c, h.DB, regNo); err != nil {
		return err
	}

	var items []models.Achievement
	if err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", regNo).
		Order("id DESC").
		Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

// Create accepts a multipart form so a supporting document can be attached.
func (h *AchievementHandler) Create(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	p, err := principal(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	var filePath string
	if h.Uploads != nil {
		filePath, err = h.Uploads.SaveForm(c, "file")
		if err != nil {
			l.Error("achievement upload failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	item := models.Achievement{
		RegistrationNumber: p.RegistrationNumber,
		Title:              title,
		Details:            c.FormValue("details"),
		FilePath:           filePath,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&item).Error; err != nil {
		l.Error("achievement create failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *AchievementHandler) Update(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var item models.Achievement
	if err := authz.LoadOwned(c.Request().Context(), h.DB, &item, id, p.RegistrationNumber); err != nil {
		return ownedError(err)
	}

	updates := map[string]interface{}{
		"title":   c.FormValue("title"),
		"details": c.FormValue("details"),
	}
	if h.Uploads != nil {
		name, err := h.Uploads.SaveForm(c, "file")
		if err != nil {
			l.Error("achievement upload failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		if name != "" {
			updates["file_path"] = name
		}
	}

	if err := h.DB.WithContext(c.Request().Context()).
		Model(&models.Achievement{}).
		Where("id = ? AND registration_number = ?", id, p.RegistrationNumber).
		Updates(updates).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if err := h.DB.WithContext(c.Request().Context()).First(&item, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *AchievementHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var item models.Achievement
	if err := authz.LoadOwned(c.Request().Context(), h.DB, &item, id, p.RegistrationNumber); err != nil {
		return ownedError(err)
	}

	if err := h.DB.WithContext(c.Request().Context()).
		Where("id = ? AND registration_number = ?", id, p.RegistrationNumber).
		Delete(&models.Achievement{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Achievement deleted successfully"})
}
