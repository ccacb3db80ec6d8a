// Package recipe contains the core domain logic for recipes.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MealType classifies a recipe by the meal it is intended for.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// ParseMealType validates a raw meal type string.
func ParseMealType(s string) (MealType, error) {
	switch MealType(strings.ToLower(strings.TrimSpace(s))) {
	case MealTypeBreakfast:
		return MealTypeBreakfast, nil
	case MealTypeLunch:
		return MealTypeLunch, nil
	case MealTypeDinner:
		return MealTypeDinner, nil
	case MealTypeSnack:
		return MealTypeSnack, nil
	}
	return "", ErrInvalidMealType
}

// Recipe is a user-owned recipe, either AI-generated or manually saved.
// Ingredients is a comma-separated list; Steps holds numbered steps
// separated by periods. Macros are per recipe, not per serving.
type Recipe struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Ingredients     string
	Steps           string
	Calories        int
	Protein         float64
	Carbs           float64
	Fats            float64
	PrepTimeMinutes int
	MealType        MealType
	CreatedAt       time.Time
}

// New creates a validated Recipe owned by userID.
func New(userID uuid.UUID, name, ingredients, steps string, calories int, protein, carbs, fats float64, prepTimeMinutes int, mealType MealType) (*Recipe, error) {
	r := &Recipe{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            strings.TrimSpace(name),
		Ingredients:     strings.TrimSpace(ingredients),
		Steps:           strings.TrimSpace(steps),
		Calories:        calories,
		Protein:         protein,
		Carbs:           carbs,
		Fats:            fats,
		PrepTimeMinutes: prepTimeMinutes,
		MealType:        mealType,
		CreatedAt:       time.Now(),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the recipe's invariants.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if len(r.Name) > 200 {
		return ErrNameTooLong
	}
	if r.Ingredients == "" {
		return ErrNoIngredients
	}
	if r.Steps == "" {
		return ErrNoSteps
	}
	if r.Calories < 0 {
		return ErrNegativeMacro
	}
	if r.Protein < 0 || r.Carbs < 0 || r.Fats < 0 {
		return ErrNegativeMacro
	}
	if r.PrepTimeMinutes < 1 {
		return ErrInvalidPrepTime
	}
	if _, err := ParseMealType(string(r.MealType)); err != nil {
		return err
	}
	return nil
}

// IngredientLines splits the comma-separated ingredient text into
// trimmed, non-empty lines. Newlines are accepted as separators too
// since model output is not always consistent.
func (r *Recipe) IngredientLines() []string {
	split := func(c rune) bool { return c == ',' || c == '\n' }
	fields := strings.FieldsFunc(r.Ingredients, split)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			lines = append(lines, f)
		}
	}
	return lines
}
