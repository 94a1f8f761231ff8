package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pafiast/alumni-network/internal/events"
	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
	"github.com/pafiast/alumni-network/internal/uploads"
)

// Membership cards expire five years after the request.
const ecardValidity = 5

type ECardHandler struct {
	DB       *gorm.DB
	Uploads  *uploads.Store
	Producer *events.Producer
}

func (h *ECardHandler) find(c echo.Context, userID uint, regNo string) (*models.ECard, error) {
	var card models.ECard
	err := h.DB.WithContext(c.Request().Context()).
		Where("user_id = ? AND registration_number = ?", userID, regNo).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (h *ECardHandler) Status(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	userID, err := p.UserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	card, err := h.find(c, userID, p.RegistrationNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"exists": false})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"exists": true, "status": card.Status})
}

// Request submits or renews a card request. One row per account; a repeat
// request updates it in place, resetting status to pending and clearing
// the approval metadata. Insert-on-conflict-update keeps concurrent
// requests from the same account from racing into two rows.
func (h *ECardHandler) Request(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	p, err := principal(c)
	if err != nil {
		return err
	}
	userID, err := p.UserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var cardImage string
	if h.Uploads != nil {
		cardImage, err = h.Uploads.SaveForm(c, "card_image")
		if err != nil {
			l.Error("ecard image upload failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	card := models.ECard{
		UserID:             userID,
		RegistrationNumber: p.RegistrationNumber,
		Status:             models.ECardPending,
		CardImage:          cardImage,
		RequestDate:        time.Now(),
		ExpiryDate:         time.Now().AddDate(ecardValidity, 0, 0),
	}
	err = h.DB.WithContext(c.Request().Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "registration_number"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":           models.ECardPending,
				"card_image":       cardImage,
				"request_date":     card.RequestDate,
				"expiry_date":      card.ExpiryDate,
				"approved_date":    nil,
				"rejection_reason": nil,
			}),
		}).
		Create(&card).Error
	if err != nil {
		l.Error("ecard upsert failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	h.publish(c, map[string]any{
		"type":                "ecard_requested",
		"user_id":             userID,
		"registration_number": p.RegistrationNumber,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "E-Card request submitted successfully"})
}

// View streams the approved card image inline.
func (h *ECardHandler) View(c echo.Context) error {
	return h.serveApproved(c, false)
}

// Download sends the approved card image as an attachment.
func (h *ECardHandler) Download(c echo.Context) error {
	return h.serveApproved(c, true)
}

func (h *ECardHandler) serveApproved(c echo.Context, attachment bool) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	userID, err := p.UserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	card, err := h.find(c, userID, p.RegistrationNumber)
	if err != nil || card.Status != models.ECardApproved || card.CardImage == "" {
		return echo.NewHTTPError(http.StatusNotFound, "no approved E-Card found")
	}
	if h.Uploads == nil || !h.Uploads.Exists(card.CardImage) {
		return echo.NewHTTPError(http.StatusNotFound, "E-Card file not found on server")
	}

	if attachment {
		return c.Attachment(h.Uploads.Path(card.CardImage), "Alumni_ECard.png")
	}
	return c.File(h.Uploads.Path(card.CardImage))
}

func (h *ECardHandler) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, events.TopicECardEvents, fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "topic", events.TopicECardEvents, "error", err)
	}
}
