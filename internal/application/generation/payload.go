package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/recipe"
)

// Payload is the validated recipe data returned by a successful run.
// It is not persisted by the pipeline; saving is the caller's decision.
type Payload struct {
	Name            string          `json:"name"`
	Ingredients     string          `json:"ingredients"`
	Steps           string          `json:"steps"`
	Calories        int             `json:"calories"`
	Protein         float64         `json:"protein"`
	Carbs           float64         `json:"carbs"`
	Fats            float64         `json:"fats"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
	MealType        recipe.MealType `json:"meal_type"`
}

// ToRecipe builds a domain recipe owned by userID from the payload.
func (p *Payload) ToRecipe(userID uuid.UUID) (*recipe.Recipe, error) {
	return recipe.New(userID, p.Name, p.Ingredients, p.Steps,
		p.Calories, p.Protein, p.Carbs, p.Fats, p.PrepTimeMinutes, p.MealType)
}

// requiredFields is the exact field list the model must emit. The repair
// prompt repeats this list verbatim.
var requiredFields = []string{
	"name", "ingredients", "steps", "calories",
	"protein", "carbs", "fats", "prep_time_minutes", "meal_type",
}

// parsePayload parses model output into a Payload. The model sometimes wraps
// the object in prose or code fences, so the outermost brace pair is
// extracted first. Every required field must be present and numeric fields
// must be non-negative.
func parsePayload(text string) (*Payload, error) {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	raw := []byte(text[start : end+1])

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("missing field %q", name)
		}
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("field type mismatch: %w", err)
	}

	if p.Name == "" || p.Ingredients == "" || p.Steps == "" {
		return nil, fmt.Errorf("empty text field")
	}
	if p.Calories < 0 || p.Protein < 0 || p.Carbs < 0 || p.Fats < 0 {
		return nil, fmt.Errorf("negative nutrition value")
	}
	if p.PrepTimeMinutes < 1 {
		return nil, fmt.Errorf("prep_time_minutes must be at least 1")
	}
	mealType, err := recipe.ParseMealType(string(p.MealType))
	if err != nil {
		return nil, err
	}
	p.MealType = mealType

	return &p, nil
}
