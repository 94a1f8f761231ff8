package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/authz"
	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
)

type JobHandler struct {
	DB *gorm.DB
}

type jobRequest struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	JoiningDate  string `json:"joining_date"`
	Description  string `json:"description"`
}

func (h *JobHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var items []models.Job
	if err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", p.RegistrationNumber).
		Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *JobHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item := models.Job{
		RegistrationNumber: p.RegistrationNumber,
		Title:              req.Title,
		Organization:       req.Organization,
		JoiningDate:        req.JoiningDate,
		Description:        req.Description,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&item).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("job create failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *JobHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var item models.Job
	if err := authz.LoadOwned(c.Request().Context(), h.DB, &item, id, p.RegistrationNumber); err != nil {
		return ownedError(err)
	}

	if err := h.DB.WithContext(c.Request().Context()).
		Model(&models.Job{}).
		Where("id = ? AND registration_number = ?", id, p.RegistrationNumber).
		Updates(map[string]interface{}{
			"title":        req.Title,
			"organization": req.Organization,
			"joining_date": req.JoiningDate,
			"description":  req.Description,
		}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	item = models.Job{
		ID:                 id,
		RegistrationNumber: p.RegistrationNumber,
		Title:              req.Title,
		Organization:       req.Organization,
		JoiningDate:        req.JoiningDate,
		Description:        req.Description,
	}
	return c.JSON(http.StatusOK, item)
}

func (h *JobHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var item models.Job
	if err := authz.LoadOwned(c.Request().Context(), h.DB, &item, id, p.RegistrationNumber); err != nil {
		return ownedError(err)
	}

	if err := h.DB.WithContext(c.Request().Context()).
		Where("id = ? AND registration_number = ?", id, p.RegistrationNumber).
		Delete(&models.Job{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Job deleted successfully"})
}
