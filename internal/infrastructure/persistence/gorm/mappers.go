// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
)

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:              r.ID,
		UserID:          r.UserID,
		Name:            r.Name,
		Ingredients:     r.Ingredients,
		Steps:           r.Steps,
		Calories:        r.Calories,
		Protein:         r.Protein,
		Carbs:           r.Carbs,
		Fats:            r.Fats,
		PrepTimeMinutes: r.PrepTimeMinutes,
		MealType:        string(r.MealType),
		CreatedAt:       r.CreatedAt,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return &recipe.Recipe{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Ingredients:     m.Ingredients,
		Steps:           m.Steps,
		Calories:        m.Calories,
		Protein:         m.Protein,
		Carbs:           m.Carbs,
		Fats:            m.Fats,
		PrepTimeMinutes: m.PrepTimeMinutes,
		MealType:        recipe.MealType(m.MealType),
		CreatedAt:       m.CreatedAt,
	}
}

// MealPlanToModel converts a domain meal plan with its slots to GORM models
func MealPlanToModel(p *mealplan.MealPlan) *MealPlanModel {
	model := &MealPlanModel{
		ID:            p.ID,
		UserID:        p.UserID,
		WeekStartDate: p.WeekStartDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Slots:         make([]MealSlotModel, len(p.Slots)),
	}
	for i := range p.Slots {
		model.Slots[i] = *MealSlotToModel(&p.Slots[i])
	}
	return model
}

// ModelToMealPlan converts a GORM model to a domain meal plan
func ModelToMealPlan(m *MealPlanModel) *mealplan.MealPlan {
	plan := &mealplan.MealPlan{
		ID:            m.ID,
		UserID:        m.UserID,
		WeekStartDate: m.WeekStartDate.UTC(),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Slots:         make([]mealplan.MealSlot, len(m.Slots)),
	}
	for i := range m.Slots {
		plan.Slots[i] = *ModelToMealSlot(&m.Slots[i])
	}
	return plan
}

// MealSlotToModel converts a domain meal slot to a GORM model
func MealSlotToModel(s *mealplan.MealSlot) *MealSlotModel {
	return &MealSlotModel{
		ID:             s.ID,
		PlanID:         s.PlanID,
		DayOfWeek:      s.DayOfWeek,
		MealType:       string(s.MealType),
		RecipeID:       s.RecipeID,
		IsLeftover:     s.IsLeftover,
		OriginalSlotID: s.OriginalSlotID,
		Notes:          s.Notes,
	}
}

// ModelToMealSlot converts a GORM model to a domain meal slot
func ModelToMealSlot(m *MealSlotModel) *mealplan.MealSlot {
	return &mealplan.MealSlot{
		ID:             m.ID,
		PlanID:         m.PlanID,
		DayOfWeek:      m.DayOfWeek,
		MealType:       mealplan.SlotMealType(m.MealType),
		RecipeID:       m.RecipeID,
		IsLeftover:     m.IsLeftover,
		OriginalSlotID: m.OriginalSlotID,
		Notes:          m.Notes,
	}
}

// FoodToModel converts a domain food to a GORM model
func FoodToModel(f *nutrition.Food) *FoodModel {
	return &FoodModel{
		ID:           f.ID,
		Name:         f.Name,
		ServingSizeG: f.ServingSizeG,
		Calories:     f.PerServing.Calories,
		Protein:      f.PerServing.Protein,
		Carbs:        f.PerServing.Carbs,
		Fats:         f.PerServing.Fats,
		Category:     f.Category,
		Allergens:    f.Allergens,
	}
}

// ModelToFood converts a GORM model to a domain food
func ModelToFood(m *FoodModel) *nutrition.Food {
	return &nutrition.Food{
		ID:           m.ID,
		Name:         m.Name,
		ServingSizeG: m.ServingSizeG,
		PerServing: nutrition.Macros{
			Calories: m.Calories,
			Protein:  m.Protein,
			Carbs:    m.Carbs,
			Fats:     m.Fats,
		},
		Category:  m.Category,
		Allergens: m.Allergens,
	}
}

// FoodLogToModel converts a domain food log to a GORM model
func FoodLogToModel(l *nutrition.FoodLog) *FoodLogModel {
	return &FoodLogModel{
		ID:            l.ID,
		UserID:        l.UserID,
		FoodID:        l.FoodID,
		FoodName:      l.FoodName,
		Date:          l.Date,
		MealType:      string(l.MealType),
		QuantityGrams: l.QuantityGrams,
		Calories:      l.Macros.Calories,
		Protein:       l.Macros.Protein,
		Carbs:         l.Macros.Carbs,
		Fats:          l.Macros.Fats,
		CreatedAt:     l.CreatedAt,
	}
}

// ModelToFoodLog converts a GORM model to a domain food log
func ModelToFoodLog(m *FoodLogModel) *nutrition.FoodLog {
	return &nutrition.FoodLog{
		ID:            m.ID,
		UserID:        m.UserID,
		FoodID:        m.FoodID,
		FoodName:      m.FoodName,
		Date:          m.Date.UTC(),
		MealType:      recipe.MealType(m.MealType),
		QuantityGrams: m.QuantityGrams,
		Macros: nutrition.Macros{
			Calories: m.Calories,
			Protein:  m.Protein,
			Carbs:    m.Carbs,
			Fats:     m.Fats,
		},
		CreatedAt: m.CreatedAt,
	}
}

// ProfileToModel converts a domain profile to a GORM model
func ProfileToModel(p *user.Profile) *ProfileModel {
	return &ProfileModel{
		ID:                   p.ID,
		UserID:               p.UserID,
		Age:                  p.Age,
		WeightKg:             p.WeightKg,
		HeightCm:             p.HeightCm,
		Gender:               p.Gender,
		ActivityLevel:        string(p.ActivityLevel),
		Goal:                 string(p.Goal),
		DietaryPreferences:   p.DietaryPreferences,
		Allergies:            p.Allergies,
		Dislikes:             p.Dislikes,
		CuisinePreferences:   p.CuisinePreferences,
		PreferredIngredients: p.PreferredIngredients,
		AvailableIngredients: p.AvailableIngredients,
		DailyCalorieTarget:   p.DailyCalorieTarget,
		DailyProteinTarget:   p.DailyProteinTarget,
		DailyCarbsTarget:     p.DailyCarbsTarget,
		DailyFatsTarget:      p.DailyFatsTarget,
		MealsPerDay:          p.MealsPerDay,
		MealDistribution:     IntFloatMap(p.MealDistribution),
		MealNames:            IntStringMap(p.MealNames),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// ModelToProfile converts a GORM model to a domain profile
func ModelToProfile(m *ProfileModel) *user.Profile {
	return &user.Profile{
		ID:                   m.ID,
		UserID:               m.UserID,
		Age:                  m.Age,
		WeightKg:             m.WeightKg,
		HeightCm:             m.HeightCm,
		Gender:               m.Gender,
		ActivityLevel:        user.ActivityLevel(m.ActivityLevel),
		Goal:                 user.Goal(m.Goal),
		DietaryPreferences:   m.DietaryPreferences,
		Allergies:            m.Allergies,
		Dislikes:             m.Dislikes,
		CuisinePreferences:   m.CuisinePreferences,
		PreferredIngredients: m.PreferredIngredients,
		AvailableIngredients: m.AvailableIngredients,
		DailyCalorieTarget:   m.DailyCalorieTarget,
		DailyProteinTarget:   m.DailyProteinTarget,
		DailyCarbsTarget:     m.DailyCarbsTarget,
		DailyFatsTarget:      m.DailyFatsTarget,
		MealsPerDay:          m.MealsPerDay,
		MealDistribution:     user.MealDistribution(m.MealDistribution),
		MealNames:            map[int]string(m.MealNames),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
