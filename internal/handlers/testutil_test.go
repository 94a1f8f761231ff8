package handlers

import (
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/hash"
	midauth "github.com/pafiast/alumni-network/internal/middleware/auth"
	"github.com/pafiast/alumni-network/internal/models"
	"github.com/pafiast/alumni-network/internal/token"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Internship{},
		&models.Project{},
		&models.Job{},
		&models.Achievement{},
		&models.SkillSet{},
		&models.Education{},
		&models.ECard{},
	))
	return db
}

// newContext builds an echo context around an httptest request. JSON bodies
// get the content type echo's binder expects.
func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func claimsFor(userID uint, regNo, role string) *token.Claims {
	return &token.Claims{
		Email:              regNo + "@alumni.test",
		RegistrationNumber: regNo,
		Role:               role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatUint(uint64(userID), 10),
		},
	}
}

func loginAs(c echo.Context, userID uint, regNo, role string) {
	midauth.SetPrincipal(c, claimsFor(userID, regNo, role))
}

func seedUser(t *testing.T, db *gorm.DB, regNo, password string, verified bool) models.User {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Name:               "Test " + regNo,
		Email:              regNo + "@alumni.test",
		PasswordHash:       pwHash,
		RegistrationNumber: regNo,
		GraduationYear:     2020,
		Department:         "Computer Science",
		IsVerified:         verified,
		Role:               models.RoleAlumni,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}
