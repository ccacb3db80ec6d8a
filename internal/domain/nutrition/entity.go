// Package nutrition contains the food reference data, food log entries and
// the Macros value object shared by the aggregation engine.
package nutrition

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/recipe"
)

// Macros holds the four tracked nutrition quantities.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Add returns the element-wise sum of two macro sets.
func (m Macros) Add(other Macros) Macros {
	return Macros{
		Calories: m.Calories + other.Calories,
		Protein:  m.Protein + other.Protein,
		Carbs:    m.Carbs + other.Carbs,
		Fats:     m.Fats + other.Fats,
	}
}

// Scale returns the macros multiplied by factor.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Calories: m.Calories * factor,
		Protein:  m.Protein * factor,
		Carbs:    m.Carbs * factor,
		Fats:     m.Fats * factor,
	}
}

// Food is USDA-backed nutrient reference data, per serving. Read-only from
// this service's perspective; rows are loaded by the import tooling.
type Food struct {
	ID           uuid.UUID
	Name         string
	ServingSizeG float64
	PerServing   Macros
	Category     string
	Allergens    []string
}

// FoodLog records that a user ate quantityGrams of a food on a date.
// The macro fields are computed at write time, not at read time.
type FoodLog struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	FoodID        uuid.UUID
	FoodName      string
	Date          time.Time
	MealType      recipe.MealType
	QuantityGrams float64
	Macros        Macros
	CreatedAt     time.Time
}

// NewFoodLog creates a log entry with macros derived from the food's
// per-serving values scaled by quantity/serving size.
func NewFoodLog(userID uuid.UUID, food Food, date time.Time, mealType recipe.MealType, quantityGrams float64) (*FoodLog, error) {
	if quantityGrams <= 0 {
		return nil, ErrInvalidQuantity
	}
	if food.ServingSizeG <= 0 {
		return nil, ErrInvalidServingSize
	}
	if _, err := recipe.ParseMealType(string(mealType)); err != nil {
		return nil, err
	}

	return &FoodLog{
		ID:            uuid.New(),
		UserID:        userID,
		FoodID:        food.ID,
		FoodName:      food.Name,
		Date:          time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		MealType:      mealType,
		QuantityGrams: quantityGrams,
		Macros:        food.PerServing.Scale(quantityGrams / food.ServingSizeG),
		CreatedAt:     time.Now(),
	}, nil
}
