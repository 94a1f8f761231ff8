package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	esidx "github.com/pafiast/alumni-network/internal/es"
	"github.com/pafiast/alumni-network/internal/events"
	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
	"github.com/pafiast/alumni-network/internal/service/search"
)

// AdminHandler implements the verification workflow. Routes using it are
// registered behind RequireLogin and RequireAdmin.
type AdminHandler struct {
	DB       *gorm.DB
	ES       *elasticsearch.Client
	Producer *events.Producer
}

func (h *AdminHandler) ListPending(c echo.Context) error {
	var pending []models.User
	if err := h.DB.WithContext(c.Request().Context()).
		Where("is_verified = ?", false).
		Order("id ASC").
		Find(&pending).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, pending)
}

// Verify flips the verification flag. Re-verifying an already-verified
// account is a no-op success.
func (h *AdminHandler) Verify(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.WithContext(c.Request().Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if !user.IsVerified {
		if err := h.DB.WithContext(c.Request().Context()).
			Model(&models.User{}).
			Where("id = ?", id).
			Update("is_verified", true).Error; err != nil {
			l.Error("verify failed", "user_id", id, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		user.IsVerified = true

		if h.ES != nil {
			if err := search.IndexUser(c.Request().Context(), h.ES, esidx.AlumniIndex, &user); err != nil {
				l.Error("alumni index failed", "user_id", id, "error", err)
			}
		}
		h.publish(c, map[string]any{
			"type":                "user_verified",
			"user_id":             user.ID,
			"registration_number": user.RegistrationNumber,
		})
		l.Info("account verified", "user_id", id)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Account verified"})
}

// Reject removes an account that was never verified.
func (h *AdminHandler) Reject(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.WithContext(c.Request().Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if user.IsVerified {
		return echo.NewHTTPError(http.StatusConflict, "cannot reject a verified account")
	}

	if err := h.DB.WithContext(c.Request().Context()).Delete(&models.User{}, id).Error; err != nil {
		l.Error("reject failed", "user_id", id, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if h.ES != nil {
		if err := search.DeleteUser(c.Request().Context(), h.ES, esidx.AlumniIndex, id); err != nil {
			l.Error("alumni index cleanup failed", "user_id", id, "error", err)
		}
	}
	h.publish(c, map[string]any{
		"type":    "user_rejected",
		"user_id": id,
	})
	l.Info("account rejected", "user_id", id)

	return c.JSON(http.StatusOK, echo.Map{"message": "Account rejected"})
}

// ApproveECard marks a pending card request approved.
func (h *AdminHandler) ApproveECard(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	now := time.Now()
	result := h.DB.WithContext(c.Request().Context()).
		Model(&models.ECard{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           models.ECardApproved,
			"approved_date":    now,
			"rejection_reason": nil,
		})
	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "E-Card request not found")
	}

	h.publish(c, map[string]any{"type": "ecard_approved", "ecard_id": id})
	return c.JSON(http.StatusOK, echo.Map{"message": "E-Card approved"})
}

// RejectECard marks a pending card request rejected with a reason.
func (h *AdminHandler) RejectECard(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := h.DB.WithContext(c.Request().Context()).
		Model(&models.ECard{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           models.ECardRejected,
			"approved_date":    nil,
			"rejection_reason": req.Reason,
		})
	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "E-Card request not found")
	}

	h.publish(c, map[string]any{"type": "ecard_rejected", "ecard_id": id})
	return c.JSON(http.StatusOK, echo.Map{"message": "E-Card rejected"})
}

func (h *AdminHandler) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	topic := events.TopicUserEvents
	if _, ok := event["ecard_id"]; ok {
		topic = events.TopicECardEvents
	}
	if err := h.Producer.PublishEvent(ctx, topic, fmt.Sprint(event["type"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "topic", topic, "error", err)
	}
}
