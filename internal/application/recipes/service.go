// Package recipes implements recipe use cases: LLM generation against the
// user's profile, saving, listing and deletion.
package recipes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/application/generation"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// defaultAvailableTimeMinutes applies when the request leaves the prep
// time constraint blank.
const defaultAvailableTimeMinutes = 30

// GenerateRequest is the caller's generation input. AvailableIngredients
// overrides the profile's pantry for this request only. MealNumber and
// MealPercentage are optional meal context: when present, the prompt
// carries a calorie target of daily target × percentage/100. A meal
// number without a percentage falls back to the profile's distribution.
type GenerateRequest struct {
	MealType             string  `json:"meal_type" validate:"required"`
	AvailableTimeMinutes int     `json:"available_time_minutes" validate:"omitempty,min=1,max=480"`
	AvailableIngredients string  `json:"available_ingredients"`
	MealNumber           int     `json:"meal_number" validate:"omitempty,min=1,max=6"`
	MealPercentage       float64 `json:"meal_percentage" validate:"omitempty,gt=0,lte=100"`
}

// SaveRequest carries the fields of a recipe the user decided to keep,
// typically the payload of a previous generation.
type SaveRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Ingredients     string  `json:"ingredients" validate:"required"`
	Steps           string  `json:"steps" validate:"required"`
	Calories        int     `json:"calories" validate:"min=0"`
	Protein         float64 `json:"protein" validate:"min=0"`
	Carbs           float64 `json:"carbs" validate:"min=0"`
	Fats            float64 `json:"fats" validate:"min=0"`
	PrepTimeMinutes int     `json:"prep_time_minutes" validate:"min=1"`
	MealType        string  `json:"meal_type" validate:"required"`
}

// UpdateRequest carries the full replacement fields for a recipe edit.
type UpdateRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Ingredients     string  `json:"ingredients" validate:"required"`
	Steps           string  `json:"steps" validate:"required"`
	Calories        int     `json:"calories" validate:"min=0"`
	Protein         float64 `json:"protein" validate:"min=0"`
	Carbs           float64 `json:"carbs" validate:"min=0"`
	Fats            float64 `json:"fats" validate:"min=0"`
	PrepTimeMinutes int     `json:"prep_time_minutes" validate:"min=1"`
	MealType        string  `json:"meal_type" validate:"required"`
}

// Service implements recipe use cases over the pipeline and repository.
type Service struct {
	recipes  outbound.RecipeRepository
	profiles outbound.ProfileRepository
	pipeline *generation.Pipeline
	logger   *zap.Logger
}

// NewService creates a recipe service.
func NewService(recipes outbound.RecipeRepository, profiles outbound.ProfileRepository, pipeline *generation.Pipeline, logger *zap.Logger) *Service {
	return &Service{
		recipes:  recipes,
		profiles: profiles,
		pipeline: pipeline,
		logger:   logger.Named("recipes"),
	}
}

// Generate runs the pipeline with the user's profile context and returns
// the validated payload. Nothing is persisted; the user saves explicitly
// once they like the result.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*generation.Payload, error) {
	mealType, err := recipe.ParseMealType(req.MealType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if req.AvailableTimeMinutes <= 0 {
		req.AvailableTimeMinutes = defaultAvailableTimeMinutes
	}

	profileCtx := generation.ProfileContext{}
	var profile *user.Profile
	if found, err := s.profiles.FindByUserID(ctx, userID); err == nil {
		profile = found
		profileCtx = generation.ProfileContext{
			Goal:                 string(profile.Goal),
			DietaryPreferences:   profile.DietaryPreferences,
			Allergies:            profile.Allergies,
			Dislikes:             profile.Dislikes,
			PreferredIngredients: profile.PreferredIngredients,
			AvailableIngredients: profile.AvailableIngredients,
		}
	} else if !errors.Is(err, outbound.ErrNotFound) {
		return nil, apperrors.NewDatabaseError("load profile", err)
	}

	genReq := generation.Request{
		MealType:             mealType,
		AvailableTimeMinutes: req.AvailableTimeMinutes,
		AvailableIngredients: req.AvailableIngredients,
	}
	if req.MealNumber > 0 && profile != nil && profile.DailyCalorieTarget > 0 {
		percentage := req.MealPercentage
		if percentage == 0 {
			percentage = profile.MealDistribution[req.MealNumber]
		}
		if percentage > 0 {
			genReq.MealNumber = req.MealNumber
			genReq.TargetCalories = int(float64(profile.DailyCalorieTarget) * percentage / 100)
		}
	}

	start := time.Now()
	payload, err := s.pipeline.Generate(ctx, profileCtx, genReq)
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe generated",
		zap.String("user_id", userID.String()),
		zap.String("name", payload.Name),
		zap.Duration("elapsed", time.Since(start)))
	return payload, nil
}

// Save persists a recipe owned by the user.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, req SaveRequest) (*recipe.Recipe, error) {
	mealType, err := recipe.ParseMealType(req.MealType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	saved, err := recipe.New(userID, req.Name, req.Ingredients, req.Steps,
		req.Calories, req.Protein, req.Carbs, req.Fats, req.PrepTimeMinutes, mealType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.recipes.Create(ctx, saved); err != nil {
		return nil, apperrors.NewDatabaseError("save recipe", err)
	}
	return saved, nil
}

// Update replaces an owned recipe's fields. ID, owner and creation time
// are preserved.
func (s *Service) Update(ctx context.Context, userID, recipeID uuid.UUID, req UpdateRequest) (*recipe.Recipe, error) {
	found, err := s.ownedRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	mealType, err := recipe.ParseMealType(req.MealType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	found.Name = strings.TrimSpace(req.Name)
	found.Ingredients = strings.TrimSpace(req.Ingredients)
	found.Steps = strings.TrimSpace(req.Steps)
	found.Calories = req.Calories
	found.Protein = req.Protein
	found.Carbs = req.Carbs
	found.Fats = req.Fats
	found.PrepTimeMinutes = req.PrepTimeMinutes
	found.MealType = mealType
	if err := found.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.recipes.Update(ctx, found); err != nil {
		return nil, apperrors.NewDatabaseError("update recipe", err)
	}
	return found, nil
}

// List returns the user's recipes, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error) {
	found, err := s.recipes.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}
	return found, nil
}

// Get returns one of the user's recipes by ID.
func (s *Service) Get(ctx context.Context, userID, recipeID uuid.UUID) (*recipe.Recipe, error) {
	return s.ownedRecipe(ctx, userID, recipeID)
}

// Delete removes one of the user's recipes. Meal slots referencing it are
// not cascaded; the plan view renders a missing recipe as an empty slot.
func (s *Service) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, userID, recipeID); err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return apperrors.NewDatabaseError("delete recipe", err)
	}
	return nil
}

func (s *Service) ownedRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*recipe.Recipe, error) {
	found, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, apperrors.NewDatabaseError("load recipe", err)
	}
	if found.UserID != userID {
		return nil, apperrors.NewForbiddenError("recipe belongs to another user")
	}
	return found, nil
}
