package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/events"
	"github.com/pafiast/alumni-network/internal/hash"
	"github.com/pafiast/alumni-network/internal/logging"
	"github.com/pafiast/alumni-network/internal/models"
	"github.com/pafiast/alumni-network/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountUnverified  = errors.New("account pending verification")
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *events.Producer
	TokenTTL  time.Duration
}

func (h *AuthHandler) ttl() time.Duration {
	if h.TokenTTL > 0 {
		return h.TokenTTL
	}
	return token.DefaultTTL
}

func (h *AuthHandler) publish(c echo.Context, topic string, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	var req struct {
		Name               string `json:"name"`
		Email              string `json:"email"`
		Password           string `json:"password"`
		RegistrationNumber string `json:"registration_number"`
		GraduationYear     int    `json:"graduation_year"`
		Department         string `json:"department"`
		WhatsappNumber     string `json:"whatsapp_number"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.RegistrationNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email, password and registration_number are required")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("signup failed", "reason", "cannot hash password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	var existing models.User
	err = h.DB.WithContext(c.Request().Context()).
		Where("email = ? OR registration_number = ?", req.Email, req.RegistrationNumber).
		First(&existing).Error
	if err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Email already in use. Please use a different email or login to your existing account.",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("signup failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	user := models.User{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       pwHash,
		RegistrationNumber: req.RegistrationNumber,
		GraduationYear:     req.GraduationYear,
		Department:         req.Department,
		WhatsappNumber:     req.WhatsappNumber,
		IsVerified:         false,
		Role:               models.RoleAlumni,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&user).Error; err != nil {
		l.Error("signup failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("account created", "registration_number", user.RegistrationNumber)
	h.publish(c, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":                "user_registered",
		"user_id":             user.ID,
		"registration_number": user.RegistrationNumber,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Account created successfully!",
	})
}

// Login verifies credentials before verification status, so an attacker
// without a valid password cannot probe which accounts are pending.
func (h *AuthHandler) Login(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.authenticate(c, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Invalid credentials",
			})
		case errors.Is(err, ErrAccountUnverified):
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Account pending verification. Please wait for admin approval.",
			})
		default:
			l.Error("login failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	signed, err := token.Issue(user.ID, user.Email, user.RegistrationNumber, user.Role, h.JWTSecret, h.ttl())
	if err != nil {
		l.Error("login failed", "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("login", "registration_number", user.RegistrationNumber)
	h.publish(c, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"token":   signed,
		"role":    user.Role,
	})
}

func (h *AuthHandler) authenticate(c echo.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := h.DB.WithContext(c.Request().Context()).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrAccountUnverified
	}
	return &user, nil
}
