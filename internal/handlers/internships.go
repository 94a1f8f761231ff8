package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/authz"
	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
)

type InternshipHandler struct {
	DB *gorm.DB
}

type internshipRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Paid        bool   `json:"paid"`
}

func (h *InternshipHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var items []models.Internship
	if err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", p.RegistrationNumber).
		Order("start_date DESC").
		Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InternshipHandler) ListPublic(c echo.Context) error {
	regNo := c.Param("registrationNumber")
	if err := requireVerified(c, h.DB, regNo); err != nil {
		return err
	}

	var items []models.Internship
	if err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", regNo).
		Order("start_date DESC").
		Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InternshipHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req internshipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item := models.Internship{
		RegistrationNumber: p.RegistrationNumber,
		Title:              req.Title,
		Company:            req.Company,
		Duration:           req.Duration,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Description:        req.Description,
		Paid:               req.Paid,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&item).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("internship create failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *InternshipHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req internshipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var item models.Internship
	if err := authz.LoadOwned(c.Request().Context(), h.DB, &item, id, p.RegistrationNumber); err != nil {
		return ownedError(err)
	}

	if err := h.DB.WithContext(c.Request().Context()).
		Model(&models.Internship{}).
		Where("id = ? AND registration_number = ?", id, p.RegistrationNumber).
		Updates(map[string]interface{}{
			"title":       req.Title,
			"company":     req.Company,
			"duration":    req.Duration,
			"start_date":  req.StartDate,
			"end_date":    req.EndDate,
			"description": req.Description,
			"paid":        req.Paid,
		}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	item = models.Internship{
		ID:                 id,
		RegistrationNumber: p.RegistrationNumber,
		Title:              req.Title,
		Company:            req.Company,
		Duration:           req.Duration,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Description:        req.Description,
		Paid:               req.Paid,
	}
	return c.JSON(http.StatusOK, item)
}

func (h *InternshipHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var item models.Internship
	if err := authz.LoadOwned(c.Request().Context(), h.DB, &item, id, p.RegistrationNumber); err != nil {
		return ownedError(err)
	}

	if err := h.DB.WithContext(c.Request().Context()).
		Where("id = ? AND registration_number = ?", id, p.RegistrationNumber).
		Delete(&models.Internship{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Internship deleted successfully"})
}
