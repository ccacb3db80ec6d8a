package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appnutrition "github.com/nutriplan/v1/internal/application/nutrition"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// FoodLogHandlers handles food logging endpoints
type FoodLogHandlers struct {
	tracker  *appnutrition.Tracker
	validate *validator.Validate
	logger   *zap.Logger
}

// NewFoodLogHandlers creates food log handlers
func NewFoodLogHandlers(tracker *appnutrition.Tracker, logger *zap.Logger) *FoodLogHandlers {
	return &FoodLogHandlers{
		tracker:  tracker,
		validate: validator.New(),
		logger:   logger,
	}
}

// foodLogRequest is the POST body for a new log entry
type foodLogRequest struct {
	FoodID        uuid.UUID `json:"food_id" validate:"required"`
	Date          string    `json:"date" validate:"required"`
	MealType      string    `json:"meal_type" validate:"required"`
	QuantityGrams float64   `json:"quantity_grams" validate:"required,gt=0"`
}

// Create handles POST /api/v1/food-logs
func (h *FoodLogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req foodLogRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewValidationError("date must be formatted YYYY-MM-DD"))
		return
	}

	entry, err := h.tracker.LogFood(r.Context(), userID, req.FoodID, date, req.MealType, req.QuantityGrams)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: entry})
}

// Delete handles DELETE /api/v1/food-logs/{id}
func (h *FoodLogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	logID, err := parseUUIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.tracker.DeleteLog(r.Context(), userID, logID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Food log deleted"})
}

// DailyTotals handles GET /api/v1/food-logs/daily-totals
func (h *FoodLogHandlers) DailyTotals(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	date, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	totals, err := h.tracker.DailyTotalsFor(r.Context(), userID, date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: totals})
}
