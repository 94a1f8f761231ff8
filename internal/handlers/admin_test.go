package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/pafiast/alumni-network/internal/events"
	"github.com/pafiast/alumni-network/internal/models"
)

func newAdminHandler(t *testing.T) *AdminHandler {
	return &AdminHandler{
		DB:       initTestDB(t),
		Producer: &events.Producer{},
	}
}

func TestListPending(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()
	seedUser(t, h.DB, "2016-CS-01", "s3cret", true)
	pending := seedUser(t, h.DB, "2016-CS-02", "s3cret", false)

	c, rec := newContext(e, http.MethodGet, "/api/v1/admin/pending", "")
	loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
	require.NoError(t, h.ListPending(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	require.Equal(t, pending.RegistrationNumber, users[0].RegistrationNumber)
}

func TestVerify(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()
	user := seedUser(t, h.DB, "2016-CS-01", "s3cret", false)

	c, rec := newContext(e, http.MethodPost, "/api/v1/admin/verify/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
	require.NoError(t, h.Verify(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, h.DB.First(&got, user.ID).Error)
	require.True(t, got.IsVerified)
}

func TestVerifyIdempotent(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()
	user := seedUser(t, h.DB, "2016-CS-01", "s3cret", false)

	for i := 0; i < 2; i++ {
		c, rec := newContext(e, http.MethodPost, "/api/v1/admin/verify/1", "")
		c.SetParamNames("id")
		c.SetParamValues("1")
		loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
		require.NoError(t, h.Verify(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var got models.User
	require.NoError(t, h.DB.First(&got, user.ID).Error)
	require.True(t, got.IsVerified)
}

func TestVerifyMissing(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()

	c, _ := newContext(e, http.MethodPost, "/api/v1/admin/verify/9999", "")
	c.SetParamNames("id")
	c.SetParamValues("9999")
	loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
	require.Equal(t, http.StatusNotFound, httpStatus(t, h.Verify(c)))
}

func TestReject(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()
	user := seedUser(t, h.DB, "2016-CS-01", "s3cret", false)

	c, rec := newContext(e, http.MethodPost, "/api/v1/admin/reject/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
	require.NoError(t, h.Reject(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, h.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

// Rejection only applies to pending accounts. A verified account has data
// hanging off it and must not be removable through this path.
func TestRejectVerified(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()
	user := seedUser(t, h.DB, "2016-CS-01", "s3cret", true)

	c, _ := newContext(e, http.MethodPost, "/api/v1/admin/reject/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
	require.Equal(t, http.StatusConflict, httpStatus(t, h.Reject(c)))

	var got models.User
	require.NoError(t, h.DB.First(&got, user.ID).Error)
	require.True(t, got.IsVerified)
}

func TestApproveECard(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()
	card := models.ECard{UserID: 1, RegistrationNumber: "2016-CS-01", Status: models.ECardPending}
	require.NoError(t, h.DB.Create(&card).Error)

	c, rec := newContext(e, http.MethodPost, "/api/v1/admin/ecards/1/approve", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
	require.NoError(t, h.ApproveECard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.ECard
	require.NoError(t, h.DB.First(&got, card.ID).Error)
	require.Equal(t, models.ECardApproved, got.Status)
	require.NotNil(t, got.ApprovedDate)
	require.Nil(t, got.RejectionReason)
}

func TestRejectECard(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()
	card := models.ECard{UserID: 1, RegistrationNumber: "2016-CS-01", Status: models.ECardPending}
	require.NoError(t, h.DB.Create(&card).Error)

	c, rec := newContext(e, http.MethodPost, "/api/v1/admin/ecards/1/reject",
		`{"reason":"photo unreadable"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
	require.NoError(t, h.RejectECard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.ECard
	require.NoError(t, h.DB.First(&got, card.ID).Error)
	require.Equal(t, models.ECardRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	require.Equal(t, "photo unreadable", *got.RejectionReason)
}

func TestApproveECardMissing(t *testing.T) {
	h := newAdminHandler(t)
	e := echo.New()

	c, _ := newContext(e, http.MethodPost, "/api/v1/admin/ecards/9999/approve", "")
	c.SetParamNames("id")
	c.SetParamValues("9999")
	loginAs(c, 99, "ADMIN-01", models.RoleAdmin)
	require.Equal(t, http.StatusNotFound, httpStatus(t, h.ApproveECard(c)))
}
