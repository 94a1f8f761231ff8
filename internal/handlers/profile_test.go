package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/pafiast/alumni-network/internal/models"
)

func newFormContext(t *testing.T, e *echo.Echo, target string, fields map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body strings.Builder
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body.String()))
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetOwnProfile(t *testing.T) {
	db := initTestDB(t)
	h := &ProfileHandler{DB: db}
	e := echo.New()
	user := seedUser(t, db, "2016-CS-01", "s3cret", true)

	c, rec := newContext(e, http.MethodGet, "/api/v1/profile", "")
	loginAs(c, user.ID, user.RegistrationNumber, user.Role)
	require.NoError(t, h.GetOwnProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, user.Name, resp.Name)
	require.Equal(t, user.RegistrationNumber, resp.RegistrationNumber)
	// The password hash never rides along on any profile shape.
	require.NotContains(t, rec.Body.String(), user.PasswordHash)
}

func TestUpdateOwnProfile(t *testing.T) {
	db := initTestDB(t)
	h := &ProfileHandler{DB: db}
	e := echo.New()
	user := seedUser(t, db, "2016-CS-01", "s3cret", true)

	c, rec := newFormContext(t, e, "/api/v1/profile", map[string]string{
		"name":            "Ali Raza",
		"bio":             "backend engineer",
		"is_employed":     "true",
		"looking_for_job": "false",
	})
	loginAs(c, user.ID, user.RegistrationNumber, user.Role)
	require.NoError(t, h.UpdateOwnProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	require.Equal(t, "Ali Raza", got.Name)
	require.Equal(t, "backend engineer", got.Bio)
	require.True(t, got.IsEmployed)
	require.False(t, got.LookingForJob)
	// Identity fields stay fixed through profile updates.
	require.Equal(t, user.Email, got.Email)
	require.Equal(t, user.RegistrationNumber, got.RegistrationNumber)
}

func TestGetPublicProfile(t *testing.T) {
	db := initTestDB(t)
	h := &ProfileHandler{DB: db}
	e := echo.New()
	user := seedUser(t, db, "2016-CS-01", "s3cret", true)

	c, rec := newContext(e, http.MethodGet, "/api/v1/profiles/2016-CS-01", "")
	c.SetParamNames("registrationNumber")
	c.SetParamValues("2016-CS-01")
	require.NoError(t, h.GetPublicProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, user.Name, resp.Name)
}

func TestGetPublicProfileUnverified(t *testing.T) {
	db := initTestDB(t)
	h := &ProfileHandler{DB: db}
	e := echo.New()
	seedUser(t, db, "2016-CS-01", "s3cret", false)

	c, _ := newContext(e, http.MethodGet, "/api/v1/profiles/2016-CS-01", "")
	c.SetParamNames("registrationNumber")
	c.SetParamValues("2016-CS-01")
	require.Equal(t, http.StatusNotFound, httpStatus(t, h.GetPublicProfile(c)))
}
