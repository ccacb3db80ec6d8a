package nutrition

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domnutrition "github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

type stubFoodRepo struct {
	foods map[uuid.UUID]*domnutrition.Food
}

func (s *stubFoodRepo) FindByID(ctx context.Context, id uuid.UUID) (*domnutrition.Food, error) {
	if f, ok := s.foods[id]; ok {
		return f, nil
	}
	return nil, outbound.ErrNotFound
}

type stubFoodLogRepo struct {
	logs map[uuid.UUID]*domnutrition.FoodLog
}

func newStubFoodLogRepo() *stubFoodLogRepo {
	return &stubFoodLogRepo{logs: make(map[uuid.UUID]*domnutrition.FoodLog)}
}

func (s *stubFoodLogRepo) Create(ctx context.Context, log *domnutrition.FoodLog) error {
	s.logs[log.ID] = log
	return nil
}

func (s *stubFoodLogRepo) FindByID(ctx context.Context, id uuid.UUID) (*domnutrition.FoodLog, error) {
	if l, ok := s.logs[id]; ok {
		return l, nil
	}
	return nil, outbound.ErrNotFound
}

func (s *stubFoodLogRepo) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domnutrition.FoodLog, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var out []*domnutrition.FoodLog
	for _, l := range s.logs {
		if l.UserID == userID && l.Date.Equal(day) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubFoodLogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.logs, id)
	return nil
}

func newTestTracker() (*Tracker, *stubFoodRepo, *stubFoodLogRepo) {
	oats := &domnutrition.Food{
		ID:           uuid.New(),
		Name:         "Oats, rolled, dry",
		ServingSizeG: 100,
		PerServing:   domnutrition.Macros{Calories: 379, Protein: 13.2, Carbs: 67.7, Fats: 6.5},
	}
	foods := &stubFoodRepo{foods: map[uuid.UUID]*domnutrition.Food{oats.ID: oats}}
	logs := newStubFoodLogRepo()
	logger := zap.NewNop()
	aggregator := NewAggregator(&stubRecipeRepo{}, nil, logger)
	return NewTracker(foods, logs, aggregator, logger), foods, logs
}

func foodID(foods *stubFoodRepo) uuid.UUID {
	for id := range foods.foods {
		return id
	}
	return uuid.Nil
}

func TestLogFood(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)

	t.Run("records a scaled log entry", func(t *testing.T) {
		tracker, foods, logs := newTestTracker()
		userID := uuid.New()

		entry, err := tracker.LogFood(ctx, userID, foodID(foods), day, "breakfast", 50)
		require.NoError(t, err)

		assert.InDelta(t, 189.5, entry.Macros.Calories, 0.001)
		assert.Len(t, logs.logs, 1)
	})

	t.Run("unknown food", func(t *testing.T) {
		tracker, _, _ := newTestTracker()
		_, err := tracker.LogFood(ctx, uuid.New(), uuid.New(), day, "breakfast", 50)
		assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	})

	t.Run("invalid meal type", func(t *testing.T) {
		tracker, foods, _ := newTestTracker()
		_, err := tracker.LogFood(ctx, uuid.New(), foodID(foods), day, "brunch", 50)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		tracker, foods, _ := newTestTracker()
		_, err := tracker.LogFood(ctx, uuid.New(), foodID(foods), day, "breakfast", 0)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func TestDeleteLog(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	tracker, foods, logs := newTestTracker()
	userID := uuid.New()

	entry, err := tracker.LogFood(ctx, userID, foodID(foods), day, "lunch", 80)
	require.NoError(t, err)

	t.Run("another user's log is forbidden", func(t *testing.T) {
		err := tracker.DeleteLog(ctx, uuid.New(), entry.ID)
		assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
		assert.Len(t, logs.logs, 1)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, tracker.DeleteLog(ctx, userID, entry.ID))
		assert.Empty(t, logs.logs)
	})

	t.Run("missing log", func(t *testing.T) {
		err := tracker.DeleteLog(ctx, userID, uuid.New())
		assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	})
}

func TestDailyTotalsFor(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	tracker, foods, _ := newTestTracker()
	userID := uuid.New()

	_, err := tracker.LogFood(ctx, userID, foodID(foods), day, "breakfast", 100)
	require.NoError(t, err)
	_, err = tracker.LogFood(ctx, userID, foodID(foods), day, "snack", 50)
	require.NoError(t, err)
	// A different day must not leak into the totals.
	_, err = tracker.LogFood(ctx, userID, foodID(foods), day.AddDate(0, 0, 1), "breakfast", 200)
	require.NoError(t, err)

	totals, err := tracker.DailyTotalsFor(ctx, userID, day)
	require.NoError(t, err)

	assert.InDelta(t, 568.5, totals.Totals.Calories, 0.001)
	require.NotNil(t, totals.ByMeal["breakfast"])
	assert.InDelta(t, 379, totals.ByMeal["breakfast"].Calories, 0.001)
	require.NotNil(t, totals.ByMeal["snack"])
	assert.Nil(t, totals.ByMeal["lunch"])
}
