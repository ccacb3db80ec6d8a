package nutrition

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domnutrition "github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// Tracker implements the food logging use cases.
type Tracker struct {
	foods      outbound.FoodRepository
	logs       outbound.FoodLogRepository
	aggregator *Aggregator
	logger     *zap.Logger
}

// NewTracker creates a food log tracker.
func NewTracker(foods outbound.FoodRepository, logs outbound.FoodLogRepository, aggregator *Aggregator, logger *zap.Logger) *Tracker {
	return &Tracker{
		foods:      foods,
		logs:       logs,
		aggregator: aggregator,
		logger:     logger.Named("foodlog"),
	}
}

// LogFood records that the user ate quantityGrams of a reference food.
func (t *Tracker) LogFood(ctx context.Context, userID, foodID uuid.UUID, date time.Time, mealType string, quantityGrams float64) (*domnutrition.FoodLog, error) {
	parsed, err := recipe.ParseMealType(mealType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	food, err := t.foods.FindByID(ctx, foodID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("food")
		}
		return nil, apperrors.NewDatabaseError("load food", err)
	}

	entry, err := domnutrition.NewFoodLog(userID, *food, date, parsed, quantityGrams)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := t.logs.Create(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError("create food log", err)
	}

	t.logger.Info("food logged",
		zap.String("user_id", userID.String()),
		zap.String("food", food.Name),
		zap.Float64("grams", quantityGrams))
	return entry, nil
}

// DeleteLog removes one of the user's log entries.
func (t *Tracker) DeleteLog(ctx context.Context, userID, logID uuid.UUID) error {
	entry, err := t.logs.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return apperrors.NewNotFoundError("food log")
		}
		return apperrors.NewDatabaseError("load food log", err)
	}
	if entry.UserID != userID {
		return apperrors.NewForbiddenError("food log belongs to another user")
	}
	if err := t.logs.Delete(ctx, logID); err != nil {
		return apperrors.NewDatabaseError("delete food log", err)
	}
	return nil
}

// DailyTotalsFor loads a day's logs and aggregates them.
func (t *Tracker) DailyTotalsFor(ctx context.Context, userID uuid.UUID, date time.Time) (DailyTotals, error) {
	logs, err := t.logs.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		return DailyTotals{}, apperrors.NewDatabaseError("load food logs", err)
	}
	return t.aggregator.DailyTotals(date, logs), nil
}
