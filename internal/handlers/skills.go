package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
)

type SkillHandler struct {
	DB *gorm.DB
}

func decodeSkills(row *models.SkillSet) []string {
	skills := []string{}
	if row != nil && row.Skills != "" {
		// Tolerate rows written before the column held valid JSON.
		_ = json.Unmarshal([]byte(row.Skills), &skills)
	}
	return skills
}

func (h *SkillHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return h.respond(c, p.RegistrationNumber)
}

func (h *SkillHandler) GetPublic(c echo.Context) error {
	regNo := c.Param("registrationNumber")
	if err := requireVerified(c, h.DB, regNo); err != nil {
		return err
	}
	return h.respond(c, regNo)
}

func (h *SkillHandler) respond(c echo.Context, regNo string) error {
	var row models.SkillSet
	err := h.DB.WithContext(c.Request().Context()).
		Where("registration_number = ?", regNo).
		First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"skills": decodeSkills(&row)})
}

// Replace overwrites the whole skill list for the caller. Insert-on-
// conflict-update, so concurrent saves from the same account cannot
// interleave into two rows.
func (h *SkillHandler) Replace(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	p, err := principal(c)
	if err != nil {
		return err
	}

	var req struct {
		Skills []string `json:"skills"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Skills == nil {
		req.Skills = []string{}
	}

	data, err := json.Marshal(req.Skills)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid skills payload")
	}

	row := models.SkillSet{
		RegistrationNumber: p.RegistrationNumber,
		Skills:             string(data),
	}
	err = h.DB.WithContext(c.Request().Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "registration_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"skills"}),
		}).
		Create(&row).Error
	if err != nil {
		l.Error("skills upsert failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"skills": req.Skills})
}
