// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters). These are the interfaces the application uses to reach external
// systems: the relational store, the LLM endpoint and the cache.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
)

// Sentinel errors shared by repository implementations.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateWeek is returned when the (user, week_start_date) unique
	// constraint rejects a meal plan insert.
	ErrDuplicateWeek = errors.New("meal plan already exists for this week")
)

// RecipeRepository defines the interface for recipe persistence.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error)
	FindByUserAndCalorieRange(ctx context.Context, userID uuid.UUID, mealType recipe.MealType, minCalories, maxCalories int, limit int) ([]*recipe.Recipe, error)
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MealPlanRepository defines the interface for weekly plan persistence.
// Create must insert the plan and its 21 slots atomically.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *mealplan.MealPlan) error
	FindByUserAndWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*mealplan.MealPlan, error)
	FindSlotByID(ctx context.Context, slotID uuid.UUID) (*mealplan.MealSlot, *mealplan.MealPlan, error)
	UpdateSlot(ctx context.Context, slot *mealplan.MealSlot) error
	Delete(ctx context.Context, planID uuid.UUID) error
}

// FoodRepository provides read access to the USDA-backed food reference data.
type FoodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*nutrition.Food, error)
}

// FoodLogRepository defines the interface for food log persistence.
type FoodLogRepository interface {
	Create(ctx context.Context, log *nutrition.FoodLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*nutrition.FoodLog, error)
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*nutrition.FoodLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileRepository defines the interface for profile persistence.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*user.Profile, error)
	Save(ctx context.Context, profile *user.Profile) error
}

// AIClient is the chat-completion abstraction over the LLM endpoint.
// The generation pipeline owns prompt construction and response parsing;
// the client only moves text.
type AIClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
