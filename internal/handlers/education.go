package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
)

type EducationHandler struct {
	DB *gorm.DB
}

type educationRequest struct {
	MatricInstitute  string  `json:"matric_institute"`
	MatricDegree     string  `json:"matric_degree"`
	MatricYear       int     `json:"matric_year"`
	MatricPercentage float64 `json:"matric_percentage"`
	FscInstitute     string  `json:"fsc_institute"`
	FscDegree        string  `json:"fsc_degree"`
	FscYear          int     `json:"fsc_year"`
	FscPercentage    float64 `json:"fsc_percentage"`
}

func (h *EducationHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return h.respond(c, p.RegistrationNumber)
}

func (h *EducationHandler) GetPublic(c echo.Context) error {
	regNo := c.Param("registrationNumber")
	if err := requireVerified(c, h.DB, regNo); err != nil {
		return err
	}
	return h.respond(c, regNo)
}

func (h *EducationHandler) respond(c echo.Context, regNo string) error {
	var row models.Education
	err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", regNo).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, row)
}

// Save upserts the education row atomically; there is exactly one per
// registration number.
func (h *EducationHandler) Save(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	p, err := principal(c)
	if err != nil {
		return err
	}

	var req educationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	row := models.Education{
		RegistrationNumber: p.RegistrationNumber,
		MatricInstitute:    req.MatricInstitute,
		MatricDegree:       req.MatricDegree,
		MatricYear:         req.MatricYear,
		MatricPercentage:   req.MatricPercentage,
		FscInstitute:       req.FscInstitute,
		FscDegree:          req.FscDegree,
		FscYear:            req.FscYear,
		FscPercentage:      req.FscPercentage,
	}
	err = h.DB.WithContext(c.Request().Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "registration_number"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"matric_institute", "matric_degree", "matric_year", "matric_percentage",
				"fsc_institute", "fsc_degree", "fsc_year", "fsc_percentage",
			}),
		}).
		Create(&row).Error
	if err != nil {
		l.Error("education upsert failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Education details saved successfully!"})
}
