package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/authz"
	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
)

type ProjectHandler struct {
	DB *gorm.DB
}

type projectRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	CompletionDate string `json:"completion_date"`
	MonthsTaken    int    `json:"months_taken"`
}

func (h *ProjectHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var items []models.Project
	if err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", p.RegistrationNumber).
		Order("completion_date DESC").
		Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProjectHandler) ListPublic(c echo.Context) error {
	regNo := c.Param("registrationNumber")
	if err := requireVerified(c, h.DB, regNo); err != nil {
		return err
	}

	var items []models.Project
	if err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", regNo).
		Order("completion_date DESC").
		Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item := models.Project{
		RegistrationNumber: p.RegistrationNumber,
		Title:              req.Title,
		Description:        req.Description,
		CompletionDate:     req.CompletionDate,
		MonthsTaken:        req.MonthsTaken,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&item).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("project create failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var item models.Project
	if err := authz.LoadOwned(c.Request().Context(), h.DB, &item, id, p.RegistrationNumber); err != nil {
		return ownedError(err)
	}

	if err := h.DB.WithContext(c.Request().Context()).
		Model(&models.Project{}).
		Where("id = ? AND registration_number = ?", id, p.RegistrationNumber).
		Updates(map[string]interface{}{
			"title":           req.Title,
			"description":     req.Description,
			"completion_date": req.CompletionDate,
			"months_taken":    req.MonthsTaken,
		}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	item = models.Project{
		ID:                 id,
		RegistrationNumber: p.RegistrationNumber,
		Title:              req.Title,
		Description:        req.Description,
		CompletionDate:     req.CompletionDate,
		MonthsTaken:        req.MonthsTaken,
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var item models.Project
	if err := authz.LoadOwned(c.Request().Context(), h.DB, &item, id, p.RegistrationNumber); err != nil {
		return ownedError(err)
	}

	if err := h.DB.WithContext(c.Request().Context()).
		Where("id = ? AND registration_number = ?", id, p.RegistrationNumber).
		Delete(&models.Project{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Project deleted successfully"})
}
