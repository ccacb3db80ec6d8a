package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredient(t *testing.T) {
	cases := []struct {
		line string
		want parsedIngredient
	}{
		{"2 cups rice", parsedIngredient{name: "rice", quantity: 2, unit: "cup"}},
		{"200g chicken breast", parsedIngredient{name: "chicken breast", quantity: 200, unit: "g"}},
		{"1 1/2 tbsp olive oil", parsedIngredient{name: "olive oil", quantity: 1.5, unit: "tbsp"}},
		{"1/2 cup milk", parsedIngredient{name: "milk", quantity: 0.5, unit: "cup"}},
		{"2 cups of rice", parsedIngredient{name: "rice", quantity: 2, unit: "cup"}},
		{"3 Tablespoons honey", parsedIngredient{name: "honey", quantity: 3, unit: "tbsp"}},
		{"150ml coconut milk", parsedIngredient{name: "coconut milk", quantity: 150, unit: "ml"}},
		{"2 cloves garlic", parsedIngredient{name: "garlic", quantity: 2, unit: "clove"}},
		{"1.5 lbs ground beef", parsedIngredient{name: "ground beef", quantity: 1.5, unit: "lb"}},
		{"salt", parsedIngredient{name: "salt"}},
		{"fresh basil", parsedIngredient{name: "basil"}},
		// Bare count with no unit keeps the count.
		{"3 eggs", parsedIngredient{name: "eggs", quantity: 3}},
		// A line that is only a number keeps the raw text as the name.
		{"2", parsedIngredient{name: "2"}},
		{"", parsedIngredient{}},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, parseIngredient(tc.line))
		})
	}
}

func TestParseIngredient_CaseAndPunctuation(t *testing.T) {
	got := parseIngredient("2 Cups, Rice")
	assert.Equal(t, parsedIngredient{name: "rice", quantity: 2, unit: "cup"}, got)
}

func TestCategoryFor(t *testing.T) {
	cases := map[string]string{
		"chicken breast": CategoryProtein,
		"black beans":    CategoryProtein,
		"greek yogurt":   CategoryDairy,
		"brown rice":     CategoryGrains,
		"whole wheat bread": CategoryGrains,
		"cherry tomatoes": CategoryProduce,
		"olive oil":       CategoryPantry,
		"soy sauce":       CategoryPantry,
		"mystery item":    CategoryOther,
	}
	for name, want := range cases {
		assert.Equal(t, want, categoryFor(name), name)
	}
}
