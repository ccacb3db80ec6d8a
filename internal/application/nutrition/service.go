// Package nutrition implements the aggregation and filtering engine:
// per-meal calorie targets, daily totals from food logs, slot totals for a
// planned day, and calorie-banded meal example selection.
package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	domnutrition "github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

const (
	// DefaultTolerancePercent is the calorie band applied when the caller
	// does not specify one.
	DefaultTolerancePercent = 15.0
	// DefaultMaxPerCategory caps each example category.
	DefaultMaxPerCategory = 10

	referenceCacheTTL = time.Hour
)

// MealTarget is the calorie/macro target for one meal of the day. Macro
// targets are scaled by the same percentage as calories; macros are not
// independently distributed.
type MealTarget struct {
	MealNumber int     `json:"meal_number"`
	MealName   string  `json:"meal_name"`
	Percentage float64 `json:"percentage"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fats       float64 `json:"fats"`
}

// DailyTotals aggregates a day's food logs. ByMeal values are nil for meal
// types with no logs: "no data" is distinct from "ate nothing".
type DailyTotals struct {
	Date   time.Time                              `json:"date"`
	Totals domnutrition.Macros                    `json:"totals"`
	ByMeal map[recipe.MealType]*domnutrition.Macros `json:"by_meal"`
}

// IngredientDetail is one ingredient of a meal example, renderable in the
// three display modes: macro share, grams and household portion.
type IngredientDetail struct {
	Name    string  `json:"name"`
	Grams   float64 `json:"grams"`
	Portion string  `json:"portion"`
	Percent float64 `json:"percent"`
}

// MealExample is a saved recipe or curated reference meal near a calorie
// target, enriched with its ingredient breakdown.
type MealExample struct {
	Name        string              `json:"name"`
	MealType    recipe.MealType     `json:"meal_type"`
	Macros      domnutrition.Macros `json:"macros"`
	Ingredients []IngredientDetail  `json:"ingredients"`
}

// ExampleSet is the two independently filtered example categories.
type ExampleSet struct {
	SavedRecipes   []MealExample `json:"saved_recipes"`
	ReferenceMeals []MealExample `json:"usda_examples"`
}

// FilterOptions controls example selection.
type FilterOptions struct {
	TargetCalories   int
	TolerancePercent float64
	MealType         recipe.MealType
	DietaryFilters   []string
	ExcludeAllergens []string
	MaxPerCategory   int
}

// Aggregator computes targets, totals and example sets.
type Aggregator struct {
	recipes outbound.RecipeRepository
	cache   outbound.CacheRepository
	logger  *zap.Logger
}

// NewAggregator creates the aggregation engine. cache may be nil.
func NewAggregator(recipes outbound.RecipeRepository, cache outbound.CacheRepository, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		recipes: recipes,
		cache:   cache,
		logger:  logger.Named("nutrition"),
	}
}

// MealTarget computes the target for mealIndex (1..meals_per_day) from the
// profile's meal distribution and daily targets.
func (a *Aggregator) MealTarget(profile *user.Profile, mealIndex int) (MealTarget, error) {
	if err := profile.ValidateDistribution(); err != nil {
		return MealTarget{}, errors.NewValidationError(err.Error())
	}
	if mealIndex < 1 || mealIndex > profile.MealsPerDay {
		return MealTarget{}, errors.NewValidationError(
			fmt.Sprintf("meal index %d outside 1..%d", mealIndex, profile.MealsPerDay))
	}
	percentage, ok := profile.MealDistribution[mealIndex]
	if !ok {
		return MealTarget{}, errors.NewValidationError(
			fmt.Sprintf("no distribution percentage for meal %d", mealIndex))
	}

	fraction := percentage / 100
	return MealTarget{
		MealNumber: mealIndex,
		MealName:   profile.MealName(mealIndex),
		Percentage: percentage,
		Calories:   float64(profile.DailyCalorieTarget) * fraction,
		Protein:    float64(profile.DailyProteinTarget) * fraction,
		Carbs:      float64(profile.DailyCarbsTarget) * fraction,
		Fats:       float64(profile.DailyFatsTarget) * fraction,
	}, nil
}

// DailyTotals sums a day's food logs overall and per meal type.
func (a *Aggregator) DailyTotals(date time.Time, logs []*domnutrition.FoodLog) DailyTotals {
	totals := DailyTotals{
		Date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		ByMeal: make(map[recipe.MealType]*domnutrition.Macros, 4),
	}
	for _, mealType := range []recipe.MealType{recipe.MealTypeBreakfast, recipe.MealTypeLunch, recipe.MealTypeDinner, recipe.MealTypeSnack} {
		totals.ByMeal[mealType] = nil
	}

	for _, log := range logs {
		totals.Totals = totals.Totals.Add(log.Macros)
		if current := totals.ByMeal[log.MealType]; current == nil {
			macros := log.Macros
			totals.ByMeal[log.MealType] = &macros
		} else {
			sum := current.Add(log.Macros)
			totals.ByMeal[log.MealType] = &sum
		}
	}
	return totals
}

// DaySlotTotals sums the macros of each slot's referenced recipe. A
// leftover slot contributes its referenced recipe's full macros exactly
// once; there is no discount and no double counting.
func (a *Aggregator) DaySlotTotals(slots []mealplan.MealSlot, recipesByID map[uuid.UUID]*recipe.Recipe) domnutrition.Macros {
	var totals domnutrition.Macros
	for _, slot := range slots {
		if slot.RecipeID == nil {
			continue
		}
		r, ok := recipesByID[*slot.RecipeID]
		if !ok {
			continue
		}
		totals = totals.Add(domnutrition.Macros{
			Calories: float64(r.Calories),
			Protein:  r.Protein,
			Carbs:    r.Carbs,
			Fats:     r.Fats,
		})
	}
	return totals
}

// FilterMealExamples selects saved recipes and curated reference meals
// within the calorie band, independently filtered and capped per category.
func (a *Aggregator) FilterMealExamples(ctx context.Context, userID uuid.UUID, opts FilterOptions) (*ExampleSet, error) {
	if opts.TargetCalories <= 0 {
		return nil, errors.NewValidationError("calories must be a positive integer")
	}
	if opts.TolerancePercent <= 0 {
		opts.TolerancePercent = DefaultTolerancePercent
	}
	if opts.MaxPerCategory <= 0 {
		opts.MaxPerCategory = DefaultMaxPerCategory
	}

	minCalories := float64(opts.TargetCalories) * (1 - opts.TolerancePercent/100)
	maxCalories := float64(opts.TargetCalories) * (1 + opts.TolerancePercent/100)

	saved, err := a.savedRecipeExamples(ctx, userID, opts, minCalories, maxCalories)
	if err != nil {
		return nil, err
	}

	return &ExampleSet{
		SavedRecipes:   saved,
		ReferenceMeals: a.referenceExamples(ctx, opts, minCalories, maxCalories),
	}, nil
}

func (a *Aggregator) savedRecipeExamples(ctx context.Context, userID uuid.UUID, opts FilterOptions, minCalories, maxCalories float64) ([]MealExample, error) {
	recipes, err := a.recipes.FindByUserAndCalorieRange(ctx, userID, opts.MealType, int(minCalories), int(maxCalories), opts.MaxPerCategory)
	if err != nil {
		return nil, errors.NewDatabaseError("load saved recipes", err)
	}

	examples := make([]MealExample, 0, len(recipes))
	for _, r := range recipes {
		if len(examples) >= opts.MaxPerCategory {
			break
		}
		if !passesIngredientFilters(strings.ToLower(r.Ingredients), opts) {
			continue
		}
		examples = append(examples, MealExample{
			Name:     r.Name,
			MealType: r.MealType,
			Macros: domnutrition.Macros{
				Calories: float64(r.Calories),
				Protein:  r.Protein,
				Carbs:    r.Carbs,
				Fats:     r.Fats,
			},
			Ingredients: breakdownFromNames(r.IngredientLines()),
		})
	}
	return examples, nil
}

func (a *Aggregator) referenceExamples(ctx context.Context, opts FilterOptions, minCalories, maxCalories float64) []MealExample {
	cacheKey := fmt.Sprintf("meal-examples:%s:%d:%.0f", opts.MealType, opts.TargetCalories, opts.TolerancePercent)
	if cached, ok := a.cachedReference(ctx, cacheKey, opts); ok {
		return cached
	}

	examples := make([]MealExample, 0, opts.MaxPerCategory)
	for _, meal := range referenceMeals {
		if len(examples) >= opts.MaxPerCategory {
			break
		}
		if opts.MealType != "" && meal.MealType != opts.MealType {
			continue
		}
		if meal.Macros.Calories < minCalories || meal.Macros.Calories > maxCalories {
			continue
		}
		if !passesReferenceFilters(meal, opts) {
			continue
		}
		examples = append(examples, MealExample{
			Name:        meal.Name,
			MealType:    meal.MealType,
			Macros:      meal.Macros,
			Ingredients: breakdownFromGrams(meal.Ingredients),
		})
	}

	a.storeReference(ctx, cacheKey, examples)
	return examples
}

// cachedReference is only consulted for unfiltered queries; dietary and
// allergen filters are per-user and would poison a shared cache entry.
func (a *Aggregator) cachedReference(ctx context.Context, key string, opts FilterOptions) ([]MealExample, bool) {
	if a.cache == nil || len(opts.DietaryFilters) > 0 || len(opts.ExcludeAllergens) > 0 {
		return nil, false
	}
	data, err := a.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}
	var examples []MealExample
	if err := json.Unmarshal(data, &examples); err != nil {
		a.logger.Warn("dropping corrupt example cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return examples, true
}

func (a *Aggregator) storeReference(ctx context.Context, key string, examples []MealExample) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(examples)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, referenceCacheTTL); err != nil {
		a.logger.Debug("example cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// passesIngredientFilters applies allergen exclusion and best-effort
// dietary filters to free-text ingredients.
func passesIngredientFilters(ingredients string, opts FilterOptions) bool {
	for _, allergen := range opts.ExcludeAllergens {
		if allergen != "" && strings.Contains(ingredients, strings.ToLower(allergen)) {
			return false
		}
	}
	for _, filter := range opts.DietaryFilters {
		switch strings.ToLower(strings.TrimSpace(filter)) {
		case "vegetarian":
			if containsAny(ingredients, meatKeywords) {
				return false
			}
		case "vegan":
			if containsAny(ingredients, meatKeywords) || containsAny(ingredients, dairyKeywords) || containsAny(ingredients, eggKeywords) {
				return false
			}
		}
	}
	return true
}

func passesReferenceFilters(meal referenceMeal, opts FilterOptions) bool {
	var names []string
	for _, ing := range meal.Ingredients {
		names = append(names, strings.ToLower(ing.Name))
	}
	joined := strings.Join(names, ", ")

	if !passesIngredientFilters(joined, opts) {
		return false
	}
	// Tagged diets beyond the keyword heuristics, e.g. gluten-free.
	for _, filter := range opts.DietaryFilters {
		filter = strings.ToLower(strings.TrimSpace(filter))
		if filter == "" || filter == "vegetarian" || filter == "vegan" {
			continue
		}
		if !containsTag(meal.Tags, filter) {
			return false
		}
	}
	return true
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

// breakdownFromGrams builds the three-mode breakdown for ingredients with
// known gram weights.
func breakdownFromGrams(ingredients []referenceIngredient) []IngredientDetail {
	var totalGrams float64
	for _, ing := range ingredients {
		totalGrams += ing.Grams
	}

	details := make([]IngredientDetail, 0, len(ingredients))
	for _, ing := range ingredients {
		percent := 0.0
		if totalGrams > 0 {
			percent = roundTenth(ing.Grams / totalGrams * 100)
		}
		details = append(details, IngredientDetail{
			Name:    ing.Name,
			Grams:   ing.Grams,
			Portion: ConvertGramsToPortion(ing.Name, ing.Grams),
			Percent: percent,
		})
	}
	return details
}

// breakdownFromNames estimates a breakdown for free-text ingredient lines
// using the portion table's default weights. Best-effort: unknown
// ingredients get the generic 100 g fallback.
func breakdownFromNames(names []string) []IngredientDetail {
	ingredients := make([]referenceIngredient, 0, len(names))
	for _, name := range names {
		ingredients = append(ingredients, referenceIngredient{
			Name:  name,
			Grams: defaultGramsFor(name),
		})
	}
	return breakdownFromGrams(ingredients)
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
