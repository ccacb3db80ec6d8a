package shopping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/domain/recipe"
)

func testPlan(t *testing.T) *mealplan.MealPlan {
	t.Helper()
	plan, err := mealplan.NewMealPlan(uuid.New(), time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return plan
}

func testRecipe(name, ingredients string) *recipe.Recipe {
	return &recipe.Recipe{ID: uuid.New(), Name: name, Ingredients: ingredients}
}

func findItem(list *List, name string) *Item {
	for _, items := range list.Categories {
		for i := range items {
			if items[i].Name == name {
				return &items[i]
			}
		}
	}
	return nil
}

func TestBuild(t *testing.T) {
	t.Run("empty plan yields empty list with week bounds", func(t *testing.T) {
		plan := testPlan(t)
		list := Build(plan, nil, nil)

		assert.Equal(t, plan.WeekStartDate, list.WeekStartDate)
		assert.Equal(t, plan.WeekStartDate.AddDate(0, 0, 6), list.WeekEndDate)
		assert.Zero(t, list.TotalItems)
		assert.Empty(t, list.Categories)
	})

	t.Run("merges same name and unit across recipes", func(t *testing.T) {
		plan := testPlan(t)
		bowl := testRecipe("Rice bowl", "2 cups rice, 200g chicken breast")
		stirFry := testRecipe("Stir fry", "1 cup rice, 1 tbsp soy sauce")
		plan.SlotFor(0, mealplan.SlotLunch).Assign(bowl.ID)
		plan.SlotFor(1, mealplan.SlotDinner).Assign(stirFry.ID)

		list := Build(plan, recipesByID(bowl, stirFry), nil)

		rice := findItem(list, "rice")
		require.NotNil(t, rice)
		assert.InDelta(t, 3, rice.Quantity, 0.001)
		assert.Equal(t, "cup", rice.Unit)
		assert.Equal(t, CategoryGrains, rice.Category)
		assert.ElementsMatch(t, []string{"Rice bowl", "Stir fry"}, rice.Recipes)
	})

	t.Run("mismatched units stay separate lines", func(t *testing.T) {
		plan := testPlan(t)
		a := testRecipe("A", "1 cup milk")
		b := testRecipe("B", "200ml milk")
		plan.SlotFor(0, mealplan.SlotBreakfast).Assign(a.ID)
		plan.SlotFor(1, mealplan.SlotBreakfast).Assign(b.ID)

		list := Build(plan, recipesByID(a, b), nil)

		dairy := list.Categories[CategoryDairy]
		require.Len(t, dairy, 2)
		units := []string{dairy[0].Unit, dairy[1].Unit}
		assert.ElementsMatch(t, []string{"cup", "ml"}, units)
	})

	t.Run("leftover slots contribute nothing", func(t *testing.T) {
		plan := testPlan(t)
		roast := testRecipe("Roast chicken", "1 whole chicken, 2 lemons")
		original := plan.SlotFor(0, mealplan.SlotDinner)
		original.Assign(roast.ID)
		require.NoError(t, plan.SlotFor(1, mealplan.SlotLunch).MarkLeftover(original))

		list := Build(plan, recipesByID(roast), nil)

		chicken := findItem(list, "whole chicken")
		require.NotNil(t, chicken)
		assert.InDelta(t, 1, chicken.Quantity, 0.001)
		assert.Equal(t, []string{"Roast chicken"}, chicken.Recipes)
	})

	t.Run("same recipe cooked twice counts twice", func(t *testing.T) {
		plan := testPlan(t)
		bowl := testRecipe("Rice bowl", "2 cups rice")
		plan.SlotFor(0, mealplan.SlotLunch).Assign(bowl.ID)
		plan.SlotFor(3, mealplan.SlotLunch).Assign(bowl.ID)

		list := Build(plan, recipesByID(bowl), nil)

		rice := findItem(list, "rice")
		require.NotNil(t, rice)
		assert.InDelta(t, 4, rice.Quantity, 0.001)
	})

	t.Run("pantry matching is substring in both directions", func(t *testing.T) {
		plan := testPlan(t)
		r := testRecipe("Salad", "1 tbsp olive oil, 2 tomatoes, 1 cucumber")
		plan.SlotFor(0, mealplan.SlotLunch).Assign(r.ID)

		list := Build(plan, recipesByID(r), []string{"oil", "cucumbers"})

		assert.True(t, findItem(list, "olive oil").InPantry)
		assert.True(t, findItem(list, "cucumber").InPantry)
		assert.False(t, findItem(list, "tomatoes").InPantry)
	})

	t.Run("missing recipe rows are skipped", func(t *testing.T) {
		plan := testPlan(t)
		plan.SlotFor(0, mealplan.SlotLunch).Assign(uuid.New())

		list := Build(plan, nil, nil)
		assert.Zero(t, list.TotalItems)
	})

	t.Run("items within a category are sorted by name", func(t *testing.T) {
		plan := testPlan(t)
		r := testRecipe("Breakfast", "2 cups oats, 1 slice bread, 1 cup rice")
		plan.SlotFor(0, mealplan.SlotBreakfast).Assign(r.ID)

		list := Build(plan, recipesByID(r), nil)

		grains := list.Categories[CategoryGrains]
		require.Len(t, grains, 3)
		assert.Equal(t, "bread", grains[0].Name)
		assert.Equal(t, "oats", grains[1].Name)
		assert.Equal(t, "rice", grains[2].Name)
	})
}

func recipesByID(recipes ...*recipe.Recipe) map[uuid.UUID]*recipe.Recipe {
	out := make(map[uuid.UUID]*recipe.Recipe, len(recipes))
	for _, r := range recipes {
		out[r.ID] = r
	}
	return out
}
