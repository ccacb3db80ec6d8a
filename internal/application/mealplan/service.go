// Package mealplan implements weekly plan management: week resolution,
// slot mutation and LLM-backed auto-fill.
package mealplan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/application/generation"
	"github.com/nutriplan/v1/internal/application/nutrition"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// defaultAutoFillTimeMinutes is the prep time constraint passed to the
// generator when auto-fill has no per-slot preference to work from.
const defaultAutoFillTimeMinutes = 45

// Manager owns the weekly plan lifecycle.
type Manager struct {
	plans      outbound.MealPlanRepository
	recipes    outbound.RecipeRepository
	profiles   outbound.ProfileRepository
	pipeline   *generation.Pipeline
	aggregator *nutrition.Aggregator
	logger     *zap.Logger
}

// NewManager creates a plan manager. pipeline and aggregator may be nil in
// deployments without generation; AutoFillWeek then returns an error.
func NewManager(
	plans outbound.MealPlanRepository,
	recipes outbound.RecipeRepository,
	profiles outbound.ProfileRepository,
	pipeline *generation.Pipeline,
	aggregator *nutrition.Aggregator,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		plans:      plans,
		recipes:    recipes,
		profiles:   profiles,
		pipeline:   pipeline,
		aggregator: aggregator,
		logger:     logger.Named("mealplan"),
	}
}

// ResolveWeek returns the user's plan for the week containing date,
// creating it with 21 empty slots when absent. Concurrent creation of the
// same week is resolved by the unique constraint: the loser re-fetches the
// winner's plan.
func (m *Manager) ResolveWeek(ctx context.Context, userID uuid.UUID, date time.Time) (*mealplan.MealPlan, error) {
	weekStart := mealplan.MondayOf(date)

	plan, err := m.plans.FindByUserAndWeek(ctx, userID, weekStart)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, outbound.ErrNotFound) {
		return nil, apperrors.NewDatabaseError("load meal plan", err)
	}

	plan, err = mealplan.NewMealPlan(userID, weekStart)
	if err != nil {
		return nil, apperrors.NewInternalError(err.Error())
	}
	if err := m.plans.Create(ctx, plan); err != nil {
		if errors.Is(err, outbound.ErrDuplicateWeek) {
			existing, fetchErr := m.plans.FindByUserAndWeek(ctx, userID, weekStart)
			if fetchErr != nil {
				return nil, apperrors.NewDatabaseError("load meal plan after duplicate insert", fetchErr)
			}
			return existing, nil
		}
		return nil, apperrors.NewDatabaseError("create meal plan", err)
	}

	m.logger.Info("meal plan created",
		zap.String("user_id", userID.String()),
		zap.Time("week_start", weekStart))
	return plan, nil
}

// Navigate resolves the week seven days before or after the week
// containing date. forward=false navigates to the previous week.
func (m *Manager) Navigate(ctx context.Context, userID uuid.UUID, date time.Time, forward bool) (*mealplan.MealPlan, error) {
	days := -mealplan.DaysPerWeek
	if forward {
		days = mealplan.DaysPerWeek
	}
	return m.ResolveWeek(ctx, userID, date.AddDate(0, 0, days))
}

// SlotUpdate carries the optional fields of a partial slot update. Nil
// means "leave unchanged".
type SlotUpdate struct {
	RecipeID       *uuid.UUID
	OriginalSlotID *uuid.UUID
	Notes          *string
}

// AssignRecipe places one of the user's recipes into a slot.
func (m *Manager) AssignRecipe(ctx context.Context, userID, slotID, recipeID uuid.UUID) (*mealplan.MealSlot, error) {
	slot, _, err := m.ownedSlot(ctx, userID, slotID)
	if err != nil {
		return nil, err
	}
	if err := m.checkRecipeOwnership(ctx, userID, recipeID); err != nil {
		return nil, err
	}

	slot.Assign(recipeID)
	if err := m.plans.UpdateSlot(ctx, slot); err != nil {
		return nil, apperrors.NewDatabaseError("update meal slot", err)
	}
	return slot, nil
}

// MarkLeftover marks a slot as leftovers of another slot's recipe. The
// recipe reference is copied; no new recipe row is created.
func (m *Manager) MarkLeftover(ctx context.Context, userID, slotID, originalSlotID uuid.UUID) (*mealplan.MealSlot, error) {
	slot, _, err := m.ownedSlot(ctx, userID, slotID)
	if err != nil {
		return nil, err
	}
	original, _, err := m.ownedSlot(ctx, userID, originalSlotID)
	if err != nil {
		return nil, err
	}

	if err := slot.MarkLeftover(original); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := m.plans.UpdateSlot(ctx, slot); err != nil {
		return nil, apperrors.NewDatabaseError("update meal slot", err)
	}
	return slot, nil
}

// ClearSlot empties a slot, resetting recipe reference, leftover state and
// notes together. Leftover slots referencing the cleared slot keep their
// copied recipe reference.
func (m *Manager) ClearSlot(ctx context.Context, userID, slotID uuid.UUID) (*mealplan.MealSlot, error) {
	slot, _, err := m.ownedSlot(ctx, userID, slotID)
	if err != nil {
		return nil, err
	}

	slot.Clear()
	if err := m.plans.UpdateSlot(ctx, slot); err != nil {
		return nil, apperrors.NewDatabaseError("update meal slot", err)
	}
	return slot, nil
}

// UpdateSlot applies a partial update. Setting a recipe and marking
// leftover are mutually exclusive within one request.
func (m *Manager) UpdateSlot(ctx context.Context, userID, slotID uuid.UUID, update SlotUpdate) (*mealplan.MealSlot, error) {
	if update.RecipeID != nil && update.OriginalSlotID != nil {
		return nil, apperrors.NewValidationError("recipe_id and original_slot_id are mutually exclusive")
	}

	slot, _, err := m.ownedSlot(ctx, userID, slotID)
	if err != nil {
		return nil, err
	}

	switch {
	case update.RecipeID != nil:
		if err := m.checkRecipeOwnership(ctx, userID, *update.RecipeID); err != nil {
			return nil, err
		}
		slot.Assign(*update.RecipeID)
	case update.OriginalSlotID != nil:
		original, _, err := m.ownedSlot(ctx, userID, *update.OriginalSlotID)
		if err != nil {
			return nil, err
		}
		if err := slot.MarkLeftover(original); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if update.Notes != nil {
		slot.Notes = *update.Notes
	}

	if err := m.plans.UpdateSlot(ctx, slot); err != nil {
		return nil, apperrors.NewDatabaseError("update meal slot", err)
	}
	return slot, nil
}

// SlotResult reports the outcome of one auto-fill slot.
type SlotResult struct {
	SlotID   uuid.UUID             `json:"slot_id"`
	DayName  string                `json:"day_name"`
	MealType mealplan.SlotMealType `json:"meal_type"`
	RecipeID *uuid.UUID            `json:"recipe_id,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// AutoFillResult summarizes an auto-fill pass over a week.
type AutoFillResult struct {
	Plan   *mealplan.MealPlan `json:"plan"`
	Filled []SlotResult       `json:"filled"`
	Failed []SlotResult       `json:"failed"`
}

// AutoFillWeek generates and assigns a recipe for every empty slot of the
// week containing date. Slots are filled sequentially; a failed slot is
// recorded and skipped, and never aborts the pass. Recipes are persisted
// as they are generated, so a partial pass keeps its progress.
func (m *Manager) AutoFillWeek(ctx context.Context, userID uuid.UUID, date time.Time) (*AutoFillResult, error) {
	if m.pipeline == nil {
		return nil, apperrors.NewInternalError("recipe generation is not configured")
	}

	profile, err := m.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("profile")
		}
		return nil, apperrors.NewDatabaseError("load profile", err)
	}

	plan, err := m.ResolveWeek(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	result := &AutoFillResult{Plan: plan}
	profileCtx := generation.ProfileContext{
		Goal:                 string(profile.Goal),
		DietaryPreferences:   profile.DietaryPreferences,
		Allergies:            profile.Allergies,
		Dislikes:             profile.Dislikes,
		PreferredIngredients: profile.PreferredIngredients,
		AvailableIngredients: profile.AvailableIngredients,
	}

	for i := range plan.Slots {
		slot := &plan.Slots[i]
		if !slot.IsEmpty() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, apperrors.Wrap(err, "auto-fill interrupted")
		}

		outcome := SlotResult{SlotID: slot.ID, DayName: slot.DayName(), MealType: slot.MealType}
		saved, fillErr := m.fillSlot(ctx, userID, profile, profileCtx, slot)
		if fillErr != nil {
			outcome.Error = userMessage(fillErr)
			result.Failed = append(result.Failed, outcome)
			m.logger.Warn("auto-fill slot failed",
				zap.String("slot_id", slot.ID.String()),
				zap.String("day", slot.DayName()),
				zap.String("meal_type", string(slot.MealType)),
				zap.Error(fillErr))
			continue
		}
		outcome.RecipeID = &saved.ID
		result.Filled = append(result.Filled, outcome)
	}

	m.logger.Info("auto-fill completed",
		zap.String("user_id", userID.String()),
		zap.Time("week_start", plan.WeekStartDate),
		zap.Int("filled", len(result.Filled)),
		zap.Int("failed", len(result.Failed)))
	return result, nil
}

// fillSlot generates, persists and assigns one recipe.
func (m *Manager) fillSlot(ctx context.Context, userID uuid.UUID, profile *user.Profile, profileCtx generation.ProfileContext, slot *mealplan.MealSlot) (*recipe.Recipe, error) {
	mealType, err := recipe.ParseMealType(string(slot.MealType))
	if err != nil {
		return nil, err
	}

	req := generation.Request{
		MealType:             mealType,
		AvailableTimeMinutes: defaultAutoFillTimeMinutes,
	}
	if number := mealNumberFor(slot.MealType); number <= profile.MealsPerDay && m.aggregator != nil {
		if target, err := m.aggregator.MealTarget(profile, number); err == nil {
			req.MealNumber = number
			req.TargetCalories = int(target.Calories)
		}
	}

	payload, err := m.pipeline.Generate(ctx, profileCtx, req)
	if err != nil {
		return nil, err
	}

	saved, err := payload.ToRecipe(userID)
	if err != nil {
		return nil, err
	}
	if err := m.recipes.Create(ctx, saved); err != nil {
		return nil, apperrors.NewDatabaseError("save generated recipe", err)
	}

	slot.Assign(saved.ID)
	if err := m.plans.UpdateSlot(ctx, slot); err != nil {
		return nil, apperrors.NewDatabaseError("update meal slot", err)
	}
	return saved, nil
}

// mealNumberFor maps a grid meal type to the profile's meal index.
func mealNumberFor(mealType mealplan.SlotMealType) int {
	switch mealType {
	case mealplan.SlotBreakfast:
		return 1
	case mealplan.SlotLunch:
		return 2
	case mealplan.SlotDinner:
		return 3
	default:
		return 0
	}
}

// ownedSlot loads a slot and verifies the calling user owns its plan.
func (m *Manager) ownedSlot(ctx context.Context, userID, slotID uuid.UUID) (*mealplan.MealSlot, *mealplan.MealPlan, error) {
	slot, plan, err := m.plans.FindSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, nil, apperrors.NewSlotNotFoundError(slotID.String())
		}
		return nil, nil, apperrors.NewDatabaseError("load meal slot", err)
	}
	if plan.UserID != userID {
		return nil, nil, apperrors.NewForbiddenError("meal slot belongs to another user")
	}
	return slot, plan, nil
}

// checkRecipeOwnership verifies the recipe exists and belongs to userID.
func (m *Manager) checkRecipeOwnership(ctx context.Context, userID, recipeID uuid.UUID) error {
	r, err := m.recipes.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return apperrors.NewRecipeNotFoundError(recipeID.String())
		}
		return apperrors.NewDatabaseError("load recipe", err)
	}
	if r.UserID != userID {
		return apperrors.NewForbiddenError("recipe belongs to another user")
	}
	return nil
}

// userMessage extracts a caller-safe message from an error.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
