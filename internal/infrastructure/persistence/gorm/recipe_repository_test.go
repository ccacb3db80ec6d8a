package gorm_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

func seedRecipe(t *testing.T, repo outbound.RecipeRepository, userID uuid.UUID, name string, calories int, mealType recipe.MealType) *recipe.Recipe {
	t.Helper()
	r, err := recipe.New(userID, name, "some ingredients", "1. Cook.", calories, 20, 30, 10, 20, mealType)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestRecipeRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, recipes := setupRepos(t)
	userID := uuid.New()

	saved := seedRecipe(t, recipes, userID, "Overnight oats", 350, recipe.MealTypeBreakfast)

	loaded, err := recipes.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Name, loaded.Name)
	assert.Equal(t, saved.Calories, loaded.Calories)
	assert.Equal(t, saved.MealType, loaded.MealType)
	assert.Equal(t, userID, loaded.UserID)

	t.Run("unknown id", func(t *testing.T) {
		_, err := recipes.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, outbound.ErrNotFound)
	})

	t.Run("update round trips changed fields", func(t *testing.T) {
		saved.Name = "Overnight oats with berries"
		saved.Calories = 410
		require.NoError(t, recipes.Update(ctx, saved))

		reloaded, err := recipes.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Overnight oats with berries", reloaded.Name)
		assert.Equal(t, 410, reloaded.Calories)
		assert.Equal(t, userID, reloaded.UserID)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, recipes.Delete(ctx, saved.ID))
		_, err := recipes.FindByID(ctx, saved.ID)
		assert.ErrorIs(t, err, outbound.ErrNotFound)
	})
}

func TestRecipeRepository_FindByUserAndCalorieRange(t *testing.T) {
	ctx := context.Background()
	_, recipes := setupRepos(t)
	userID := uuid.New()

	seedRecipe(t, recipes, userID, "Light lunch", 430, recipe.MealTypeLunch)
	closest := seedRecipe(t, recipes, userID, "Target lunch", 505, recipe.MealTypeLunch)
	seedRecipe(t, recipes, userID, "Heavy lunch", 570, recipe.MealTypeLunch)
	seedRecipe(t, recipes, userID, "Out of band", 800, recipe.MealTypeLunch)
	seedRecipe(t, recipes, userID, "Dinner in band", 500, recipe.MealTypeDinner)
	seedRecipe(t, recipes, uuid.New(), "Other user's", 500, recipe.MealTypeLunch)

	results, err := recipes.FindByUserAndCalorieRange(ctx, userID, recipe.MealTypeLunch, 425, 575, 10)
	require.NoError(t, err)

	require.Len(t, results, 3)
	// Closest to the band midpoint comes first.
	assert.Equal(t, closest.ID, results[0].ID)
	for _, r := range results {
		assert.Equal(t, userID, r.UserID)
		assert.Equal(t, recipe.MealTypeLunch, r.MealType)
	}

	t.Run("limit caps results", func(t *testing.T) {
		limited, err := recipes.FindByUserAndCalorieRange(ctx, userID, recipe.MealTypeLunch, 425, 575, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}

func TestRecipeRepository_FindByIDs(t *testing.T) {
	ctx := context.Background()
	_, recipes := setupRepos(t)
	userID := uuid.New()

	a := seedRecipe(t, recipes, userID, "A", 400, recipe.MealTypeLunch)
	b := seedRecipe(t, recipes, userID, "B", 500, recipe.MealTypeDinner)

	found, err := recipes.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := recipes.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
