package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appnutrition "github.com/nutriplan/v1/internal/application/nutrition"
	"github.com/nutriplan/v1/internal/application/recipes"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// RecipeHandlers handles recipe endpoints
type RecipeHandlers struct {
	service    *recipes.Service
	aggregator *appnutrition.Aggregator
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewRecipeHandlers creates recipe handlers
func NewRecipeHandlers(service *recipes.Service, aggregator *appnutrition.Aggregator, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		service:    service,
		aggregator: aggregator,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Generate handles POST /api/v1/recipes/generate
func (h *RecipeHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req recipes.GenerateRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	payload, err := h.service.Generate(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: payload})
}

// Save handles POST /api/v1/recipes
func (h *RecipeHandlers) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req recipes.SaveRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	saved, err := h.service.Save(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: saved})
}

// List handles GET /api/v1/recipes
func (h *RecipeHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	found, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: found})
}

// Get handles GET /api/v1/recipes/{id}
func (h *RecipeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	recipeID, err := parseUUIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	found, err := h.service.Get(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: found})
}

// Update handles PUT /api/v1/recipes/{id}
func (h *RecipeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	recipeID, err := parseUUIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req recipes.UpdateRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	updated, err := h.service.Update(r.Context(), userID, recipeID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: updated})
}

// Delete handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	recipeID, err := parseUUIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, recipeID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Recipe deleted"})
}

// Examples handles GET /api/v1/recipes/examples
func (h *RecipeHandlers) Examples(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	query := r.URL.Query()
	calories, err := strconv.Atoi(query.Get("calories"))
	if err != nil || calories <= 0 {
		writeError(w, r, h.logger, apperrors.NewValidationError("calories must be a positive integer"))
		return
	}

	opts := appnutrition.FilterOptions{TargetCalories: calories}
	if raw := query.Get("meal_type"); raw != "" {
		mealType, err := recipe.ParseMealType(raw)
		if err != nil {
			writeError(w, r, h.logger, apperrors.NewValidationError(err.Error()))
			return
		}
		opts.MealType = mealType
	}
	if raw := query.Get("tolerance"); raw != "" {
		tolerance, err := strconv.ParseFloat(raw, 64)
		if err != nil || tolerance <= 0 || tolerance > 100 {
			writeError(w, r, h.logger, apperrors.NewValidationError("tolerance must be a percentage between 0 and 100"))
			return
		}
		opts.TolerancePercent = tolerance
	}
	if raw := query.Get("dietary"); raw != "" {
		opts.DietaryFilters = user.SplitList(raw)
	}
	if raw := query.Get("exclude_allergens"); raw != "" {
		opts.ExcludeAllergens = user.SplitList(raw)
	}

	examples, err := h.aggregator.FilterMealExamples(r.Context(), userID, opts)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: examples})
}
