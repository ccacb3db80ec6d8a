package generation

import (
	"fmt"
	"strings"
)

const basePrompt = `You are an expert nutrition assistant. Generate a recipe as a JSON object with EXACTLY these fields:
- name (string)
- ingredients (string, comma-separated list)
- steps (string, numbered steps separated by periods)
- calories (int)
- protein (float, grams)
- carbs (float, grams)
- fats (float, grams)
- prep_time_minutes (int)
- meal_type (string: breakfast, lunch, dinner or snack)

User context:`

// buildPrompt constructs the first-attempt prompt embedding the full
// profile and request context.
func buildPrompt(profile ProfileContext, req Request) string {
	parts := []string{basePrompt}

	if profile.Goal != "" {
		parts = append(parts, fmt.Sprintf("- Goal: %s", profile.Goal))
	}
	if profile.DietaryPreferences != "" {
		parts = append(parts, fmt.Sprintf("- Dietary preferences: %s", profile.DietaryPreferences))
	}
	if profile.Allergies != "" {
		parts = append(parts, fmt.Sprintf("- Allergies, never include: %s", profile.Allergies))
	}
	if profile.Dislikes != "" {
		parts = append(parts, fmt.Sprintf("- Disliked ingredients, avoid: %s", profile.Dislikes))
	}
	if profile.PreferredIngredients != "" {
		parts = append(parts, fmt.Sprintf("- Preferred ingredients: %s", profile.PreferredIngredients))
	}

	parts = append(parts, fmt.Sprintf("- Meal type: %s", req.MealType))
	parts = append(parts, fmt.Sprintf("- Available time: %d minutes", req.AvailableTimeMinutes))

	if req.AvailableIngredients != "" {
		parts = append(parts, fmt.Sprintf("- Available ingredients: %s", req.AvailableIngredients))
	} else if profile.AvailableIngredients != "" {
		parts = append(parts, fmt.Sprintf("- Available ingredients: %s", profile.AvailableIngredients))
	}

	if req.MealNumber > 0 && req.TargetCalories > 0 {
		parts = append(parts, fmt.Sprintf("- This is meal %d of the day with a target of approximately %d kcal", req.MealNumber, req.TargetCalories))
	}

	parts = append(parts, "\nRespond with ONLY the JSON object. No additional text.")

	return strings.Join(parts, "\n")
}

// buildCorrectionPrompt asks the model to re-emit strict JSON from its own
// malformed output. This is the single repair attempt.
func buildCorrectionPrompt(malformed string) string {
	return fmt.Sprintf(`The following text contains a recipe but is not valid JSON. Extract the information and output ONLY a valid JSON object with these fields: %s.

Text: '%s'

Output only valid JSON, nothing else.`, strings.Join(requiredFields, ", "), malformed)
}
