// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/http/middleware"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// APIResponse represents a standard API response envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps an error to the structured error response. Unknown
// errors are wrapped as internal so no raw detail leaks to the caller.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := apperrors.Wrap(err, "request failed")
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, appErr.StatusCode(), apperrors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context())))
}

// decodeJSON decodes and validates a request body
func decodeJSON(r *http.Request, v *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("invalid JSON body")
	}
	if err := v.Struct(dst); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// requireUser extracts the authenticated user from the request context
func requireUser(r *http.Request) (uuid.UUID, error) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, apperrors.NewUnauthorizedError("")
	}
	return userID, nil
}

// parseDateQuery reads a YYYY-MM-DD date query parameter, defaulting to
// today in UTC when absent.
func parseDateQuery(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(name + " must be formatted YYYY-MM-DD")
	}
	return date, nil
}

// parseUUIDParam reads a UUID path parameter
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError(name + " must be a valid UUID")
	}
	return id, nil
}

// HealthHandlers serves liveness and readiness probes
type HealthHandlers struct {
	version string
	checks  map[string]func() error
}

// NewHealthHandlers creates health handlers with named dependency checks
func NewHealthHandlers(version string, checks map[string]func() error) *HealthHandlers {
	return &HealthHandlers{version: version, checks: checks}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	writeJSON(w, code, APIResponse{
		Success: code == http.StatusOK,
		Data: map[string]interface{}{
			"status":    status,
			"version":   h.version,
			"checks":    results,
			"timestamp": time.Now().Unix(),
		},
	})
}
