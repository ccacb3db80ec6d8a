package mealplan

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MealPlanTestSuite provides a test suite for the weekly plan aggregate
type MealPlanTestSuite struct {
	suite.Suite
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *MealPlanTestSuite) TestMondayOf() {
	suite.Run("Wednesday_ResolvesToPrecedingMonday", func() {
		got := MondayOf(date(2024, time.January, 3))
		assert.Equal(suite.T(), date(2024, time.January, 1), got)
	})

	suite.Run("Monday_ResolvesToItself", func() {
		got := MondayOf(date(2024, time.January, 1))
		assert.Equal(suite.T(), date(2024, time.January, 1), got)
	})

	suite.Run("Sunday_BelongsToPrecedingMonday", func() {
		got := MondayOf(date(2024, time.January, 7))
		assert.Equal(suite.T(), date(2024, time.January, 1), got)
	})

	suite.Run("NextMonday_StartsNewWeek", func() {
		got := MondayOf(date(2024, time.January, 8))
		assert.Equal(suite.T(), date(2024, time.January, 8), got)
	})

	suite.Run("TimeOfDay_IsTruncated", func() {
		noon := time.Date(2024, time.January, 3, 12, 30, 45, 0, time.UTC)
		got := MondayOf(noon)
		assert.Equal(suite.T(), date(2024, time.January, 1), got)
	})
}

func (suite *MealPlanTestSuite) TestNewMealPlan() {
	userID := uuid.New()

	suite.Run("MondayStart_CreatesAllSlots", func() {
		plan, err := NewMealPlan(userID, date(2024, time.January, 1))
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), plan)

		assert.Len(suite.T(), plan.Slots, SlotsPerWeek)
		assert.Equal(suite.T(), date(2024, time.January, 7), plan.WeekEndDate())

		// Every (day, meal type) cell exists exactly once and starts empty.
		seen := make(map[[2]string]int)
		for _, slot := range plan.Slots {
			assert.Equal(suite.T(), plan.ID, slot.PlanID)
			assert.True(suite.T(), slot.IsEmpty())
			assert.False(suite.T(), slot.IsLeftover)
			seen[[2]string{slot.DayName(), string(slot.MealType)}]++
		}
		assert.Len(suite.T(), seen, SlotsPerWeek)
		for cell, count := range seen {
			assert.Equal(suite.T(), 1, count, "cell %v duplicated", cell)
		}
	})

	suite.Run("NonMondayStart_ReturnsError", func() {
		plan, err := NewMealPlan(userID, date(2024, time.January, 3))
		assert.Nil(suite.T(), plan)
		assert.ErrorIs(suite.T(), err, ErrWeekStartNotMonday)
	})
}

func (suite *MealPlanTestSuite) TestSlotFor() {
	plan, err := NewMealPlan(uuid.New(), date(2024, time.January, 1))
	require.NoError(suite.T(), err)

	slot := plan.SlotFor(2, SlotDinner)
	require.NotNil(suite.T(), slot)
	assert.Equal(suite.T(), "Wednesday", slot.DayName())
	assert.Equal(suite.T(), date(2024, time.January, 3), slot.Date(plan.WeekStartDate))

	assert.Nil(suite.T(), plan.SlotFor(7, SlotBreakfast))
}

func (suite *MealPlanTestSuite) TestSlotMutation() {
	plan, err := NewMealPlan(uuid.New(), date(2024, time.January, 1))
	require.NoError(suite.T(), err)

	suite.Run("Assign_SetsReference", func() {
		slot := plan.SlotFor(0, SlotBreakfast)
		recipeID := uuid.New()

		slot.Assign(recipeID)

		require.NotNil(suite.T(), slot.RecipeID)
		assert.Equal(suite.T(), recipeID, *slot.RecipeID)
		assert.False(suite.T(), slot.IsLeftover)
		assert.Nil(suite.T(), slot.OriginalSlotID)
	})

	suite.Run("MarkLeftover_CopiesRecipeReference", func() {
		original := plan.SlotFor(0, SlotDinner)
		original.Assign(uuid.New())
		slot := plan.SlotFor(1, SlotLunch)

		err := slot.MarkLeftover(original)

		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), slot.RecipeID)
		assert.Equal(suite.T(), *original.RecipeID, *slot.RecipeID)
		assert.True(suite.T(), slot.IsLeftover)
		require.NotNil(suite.T(), slot.OriginalSlotID)
		assert.Equal(suite.T(), original.ID, *slot.OriginalSlotID)
	})

	suite.Run("MarkLeftover_EmptyOriginal_ReturnsError", func() {
		slot := plan.SlotFor(2, SlotLunch)

		err := slot.MarkLeftover(plan.SlotFor(3, SlotLunch))
		assert.ErrorIs(suite.T(), err, ErrOriginalSlotEmpty)

		err = slot.MarkLeftover(nil)
		assert.ErrorIs(suite.T(), err, ErrOriginalSlotEmpty)
	})

	suite.Run("MarkLeftover_SelfReference_ReturnsError", func() {
		slot := plan.SlotFor(4, SlotDinner)
		slot.Assign(uuid.New())

		err := slot.MarkLeftover(slot)
		assert.ErrorIs(suite.T(), err, ErrLeftoverSelfReference)
	})

	suite.Run("Assign_DropsLeftoverLink", func() {
		original := plan.SlotFor(5, SlotDinner)
		original.Assign(uuid.New())
		slot := plan.SlotFor(6, SlotLunch)
		require.NoError(suite.T(), slot.MarkLeftover(original))

		replacement := uuid.New()
		slot.Assign(replacement)

		assert.Equal(suite.T(), replacement, *slot.RecipeID)
		assert.False(suite.T(), slot.IsLeftover)
		assert.Nil(suite.T(), slot.OriginalSlotID)
	})

	suite.Run("Clear_ResetsAllMutableFields", func() {
		original := plan.SlotFor(5, SlotBreakfast)
		original.Assign(uuid.New())
		slot := plan.SlotFor(6, SlotBreakfast)
		require.NoError(suite.T(), slot.MarkLeftover(original))
		slot.Notes = "double batch"

		slot.Clear()

		assert.Nil(suite.T(), slot.RecipeID)
		assert.False(suite.T(), slot.IsLeftover)
		assert.Nil(suite.T(), slot.OriginalSlotID)
		assert.Empty(suite.T(), slot.Notes)
		assert.True(suite.T(), slot.IsEmpty())
	})

	suite.Run("ClearingOriginal_LeavesLeftoverCopyIntact", func() {
		original := plan.SlotFor(3, SlotBreakfast)
		recipeID := uuid.New()
		original.Assign(recipeID)
		leftover := plan.SlotFor(4, SlotBreakfast)
		require.NoError(suite.T(), leftover.MarkLeftover(original))

		original.Clear()

		require.NotNil(suite.T(), leftover.RecipeID)
		assert.Equal(suite.T(), recipeID, *leftover.RecipeID)
		assert.True(suite.T(), leftover.IsLeftover)
	})
}

func TestMealPlanTestSuite(t *testing.T) {
	suite.Run(t, new(MealPlanTestSuite))
}
