package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/pafiast/alumni-network/internal/events"
	"github.com/pafiast/alumni-network/internal/models"
)

func newECardHandler(t *testing.T) *ECardHandler {
	return &ECardHandler{
		DB:       initTestDB(t),
		Producer: &events.Producer{},
	}
}

func TestECardStatusNone(t *testing.T) {
	h := newECardHandler(t)
	e := echo.New()

	c, rec := newContext(e, http.MethodGet, "/api/v1/ecard/status", "")
	loginAs(c, 1, "2016-CS-01", models.RoleAlumni)
	require.NoError(t, h.Status(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Exists bool `json:"exists"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Exists)
}

func TestECardRequest(t *testing.T) {
	h := newECardHandler(t)
	e := echo.New()

	c, rec := newContext(e, http.MethodPost, "/api/v1/ecard/request", "")
	loginAs(c, 1, "2016-CS-01", models.RoleAlumni)
	require.NoError(t, h.Request(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var card models.ECard
	require.NoError(t, h.DB.Where("user_id = ?", 1).First(&card).Error)
	require.Equal(t, models.ECardPending, card.Status)
	require.Equal(t, "2016-CS-01", card.RegistrationNumber)
	// Cards run five years from the request date.
	require.WithinDuration(t, card.RequestDate.AddDate(5, 0, 0), card.ExpiryDate, time.Minute)
}

// A repeat request updates the single row in place: back to pending, with
// the previous decision wiped.
func TestECardRequestResetsDecision(t *testing.T) {
	h := newECardHandler(t)
	e := echo.New()

	approved := time.Now().AddDate(-1, 0, 0)
	require.NoError(t, h.DB.Create(&models.ECard{
		UserID:             1,
		RegistrationNumber: "2016-CS-01",
		Status:             models.ECardApproved,
		RequestDate:        approved,
		ExpiryDate:         approved.AddDate(5, 0, 0),
		ApprovedDate:       &approved,
	}).Error)

	c, rec := newContext(e, http.MethodPost, "/api/v1/ecard/request", "")
	loginAs(c, 1, "2016-CS-01", models.RoleAlumni)
	require.NoError(t, h.Request(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, h.DB.Model(&models.ECard{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var card models.ECard
	require.NoError(t, h.DB.Where("user_id = ?", 1).First(&card).Error)
	require.Equal(t, models.ECardPending, card.Status)
	require.Nil(t, card.ApprovedDate)
	require.Nil(t, card.RejectionReason)
}

func TestECardStatusAfterRequest(t *testing.T) {
	h := newECardHandler(t)
	e := echo.New()

	c, _ := newContext(e, http.MethodPost, "/api/v1/ecard/request", "")
	loginAs(c, 1, "2016-CS-01", models.RoleAlumni)
	require.NoError(t, h.Request(c))

	c, rec := newContext(e, http.MethodGet, "/api/v1/ecard/status", "")
	loginAs(c, 1, "2016-CS-01", models.RoleAlumni)
	require.NoError(t, h.Status(c))

	var resp struct {
		Exists bool   `json:"exists"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Exists)
	require.Equal(t, models.ECardPending, resp.Status)
}

func TestECardViewUnapproved(t *testing.T) {
	h := newECardHandler(t)
	e := echo.New()
	require.NoError(t, h.DB.Create(&models.ECard{
		UserID:             1,
		RegistrationNumber: "2016-CS-01",
		Status:             models.ECardPending,
		CardImage:          "card.png",
	}).Error)

	c, _ := newContext(e, http.MethodGet, "/api/v1/ecard/view", "")
	loginAs(c, 1, "2016-CS-01", models.RoleAlumni)
	require.Equal(t, http.StatusNotFound, httpStatus(t, h.View(c)))
}

func TestECardViewNoCard(t *testing.T) {
	h := newECardHandler(t)
	e := echo.New()

	c, _ := newContext(e, http.MethodGet, "/api/v1/ecard/view", "")
	loginAs(c, 1, "2016-CS-01", models.RoleAlumni)
	require.Equal(t, http.StatusNotFound, httpStatus(t, h.View(c)))
}
