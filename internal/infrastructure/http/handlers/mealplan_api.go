package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appmealplan "github.com/nutriplan/v1/internal/application/mealplan"
)

// MealPlanHandlers handles weekly plan and slot endpoints
type MealPlanHandlers struct {
	manager  *appmealplan.Manager
	validate *validator.Validate
	logger   *zap.Logger
}

// NewMealPlanHandlers creates meal plan handlers
func NewMealPlanHandlers(manager *appmealplan.Manager, logger *zap.Logger) *MealPlanHandlers {
	return &MealPlanHandlers{
		manager:  manager,
		validate: validator.New(),
		logger:   logger,
	}
}

// ByDate handles GET /api/v1/meal-plans/by-date. The week containing the
// date is created on first access.
func (h *MealPlanHandlers) ByDate(w http.ResponseWriter, r *http.Request) {
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

	plan, err := h.manager.ResolveWeek(r.Context(), userID, date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: plan})
}

// AutoFill handles POST /api/v1/meal-plans/auto-fill
func (h *MealPlanHandlers) AutoFill(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.manager.AutoFillWeek(r.Context(), userID, date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// slotUpdateRequest is the PATCH body for a meal slot. Omitted fields are
// left unchanged.
type slotUpdateRequest struct {
	RecipeID       *uuid.UUID `json:"recipe_id"`
	OriginalSlotID *uuid.UUID `json:"original_slot_id"`
	Notes          *string    `json:"notes"`
}

// UpdateSlot handles PATCH /api/v1/meal-slots/{id}
func (h *MealPlanHandlers) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	slotID, err := parseUUIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req slotUpdateRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	slot, err := h.manager.UpdateSlot(r.Context(), userID, slotID, appmealplan.SlotUpdate{
		RecipeID:       req.RecipeID,
		OriginalSlotID: req.OriginalSlotID,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: slot})
}

// ClearSlot handles DELETE /api/v1/meal-slots/{id}/clear
func (h *MealPlanHandlers) ClearSlot(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	slotID, err := parseUUIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	slot, err := h.manager.ClearSlot(r.Context(), userID, slotID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: slot})
}
