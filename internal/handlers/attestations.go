package handlers

import (
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pafiast/alumni-network/internal/events"
	"github.com/pafiast/alumni-network/internal/logging"
)

// AttestationHandler accepts attestation and alumni-card contact requests
// and hands them to the mailer service over Kafka. Composition and
// delivery happen downstream.
type AttestationHandler struct {
	Producer *events.Producer
}

type attestationRequest struct {
	AttestationType string `json:"attestation_type"`
	DegreeLevel     string `json:"degree_level"`
	StudentName     string `json:"student_name"`
	GraduationYear  string `json:"graduation_year"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	AdditionalInfo  string `json:"additional_info"`
}

func (h *AttestationHandler) Submit(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	p, err := principal(c)
	if err != nil {
		return err
	}

	var req attestationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.AttestationType == "" {
		req.AttestationType = "Degree Attestation Request"
	}

	// Field values end up inside mailer HTML; escape them here so the
	// consumer never has to trust request input.
	event := map[string]any{
		"type":                "attestation_request",
		"attestation_type":    html.EscapeString(req.AttestationType),
		"degree_level":        html.EscapeString(req.DegreeLevel),
		"student_name":        html.EscapeString(req.StudentName),
		"graduation_year":     html.EscapeString(req.GraduationYear),
		"email":               html.EscapeString(req.Email),
		"phone":               html.EscapeString(req.Phone),
		"additional_info":     html.EscapeString(req.AdditionalInfo),
		"registration_number": p.RegistrationNumber,
	}

	if err := h.Producer.PublishEvent(c.Request().Context(), events.TopicEmailRequests, p.RegistrationNumber, event); err != nil {
		l.Error("email request publish failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to submit request")
	}

	l.Info("attestation request queued", "registration_number", p.RegistrationNumber)
	return c.JSON(http.StatusOK, echo.Map{"message": "Request submitted successfully"})
}
