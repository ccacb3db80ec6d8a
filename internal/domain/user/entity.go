// Package user contains the profile entity holding nutrition targets and
// dietary context used by recipe generation and meal targeting.
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Goal is the user's primary nutritional goal.
type Goal string

const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalGainWeight     Goal = "gain_weight"
	GoalMaintainWeight Goal = "maintain_weight"
	GoalGainMuscle     Goal = "gain_muscle"
	GoalImproveHealth  Goal = "improve_health"
)

// ActivityLevel describes weekly exercise frequency.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:        1.2,
	ActivityLightlyActive:    1.375,
	ActivityModeratelyActive: 1.55,
	ActivityVeryActive:       1.725,
	ActivityExtremelyActive:  1.9,
}

// MealDistribution maps a meal index (1..MealsPerDay) to its percentage
// share of the daily calorie target.
type MealDistribution map[int]float64

// Profile stores a user's nutrition targets and dietary preferences.
// The free-text list fields are comma-separated, matching what the
// profile editor writes.
type Profile struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Age           int
	WeightKg      float64
	HeightCm      int
	Gender        string
	ActivityLevel ActivityLevel
	Goal          Goal

	DietaryPreferences   string
	Allergies            string
	Dislikes             string
	CuisinePreferences   string
	PreferredIngredients string
	AvailableIngredients string

	DailyCalorieTarget int
	DailyProteinTarget int
	DailyCarbsTarget   int
	DailyFatsTarget    int

	MealsPerDay      int
	MealDistribution MealDistribution
	MealNames        map[int]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDistribution checks key range and value sanity of the meal
// distribution map. Percentages are not required to sum to 100; that
// invariant is enforced only in the profile editor today.
func (p *Profile) ValidateDistribution() error {
	if p.MealsPerDay < 1 || p.MealsPerDay > 6 {
		return ErrInvalidMealsPerDay
	}
	for index, percentage := range p.MealDistribution {
		if index < 1 || index > p.MealsPerDay {
			return ErrInvalidMealIndex
		}
		if percentage < 0 {
			return ErrNegativePercentage
		}
	}
	return nil
}

// MealName returns the display name for a meal index, falling back to a
// positional default when no custom name is configured.
func (p *Profile) MealName(index int) string {
	if name, ok := p.MealNames[index]; ok && name != "" {
		return name
	}
	switch index {
	case 1:
		return "Breakfast"
	case 2:
		return "Lunch"
	case 3:
		return "Dinner"
	default:
		return "Snack"
	}
}

// BMR calculates Basal Metabolic Rate using the Mifflin-St Jeor equation.
// ok is false when required fields are missing.
func (p *Profile) BMR() (int, bool) {
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 || p.Gender == "" {
		return 0, false
	}

	base := 10*p.WeightKg + 6.25*float64(p.HeightCm) - 5*float64(p.Age)
	switch p.Gender {
	case "male":
		base += 5
	case "female":
		base -= 161
	default:
		// Average of the male and female offsets.
		base -= 78
	}
	return int(base), true
}

// TDEE calculates Total Daily Energy Expenditure from BMR and activity level.
func (p *Profile) TDEE() (int, bool) {
	bmr, ok := p.BMR()
	if !ok || p.ActivityLevel == "" {
		return 0, false
	}
	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = 1.2
	}
	return int(float64(bmr) * multiplier), true
}

// PantryItems returns the normalized available-ingredient list.
func (p *Profile) PantryItems() []string {
	return SplitList(p.AvailableIngredients)
}

// AllergenList returns the normalized allergy list.
func (p *Profile) AllergenList() []string {
	return SplitList(p.Allergies)
}

// DietaryTags returns the normalized dietary preference list.
func (p *Profile) DietaryTags() []string {
	return SplitList(p.DietaryPreferences)
}

// SplitList splits a comma-separated free-text list into lowercase,
// trimmed, non-empty entries.
func SplitList(text string) []string {
	parts := strings.Split(text, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			items = append(items, part)
		}
	}
	return items
}
