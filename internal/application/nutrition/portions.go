package nutrition

import (
	"fmt"
	"math"
	"strings"
)

// portionDef converts grams of one ingredient into a household measure.
// gramsPerUnit is a kitchen approximation, not a rigorous conversion.
type portionDef struct {
	gramsPerUnit float64
	singular     string
	plural       string
	defaultGrams float64
}

// portionTable is the name-keyed conversion table. Lookup is by substring
// so "rolled oats" still matches "oats". Unknown ingredients fall back to
// plain grams.
var portionTable = map[string]portionDef{
	"oats":    {gramsPerUnit: 85, singular: "cup", plural: "cups", defaultGrams: 85},
	"rice":    {gramsPerUnit: 150, singular: "cup", plural: "cups", defaultGrams: 150},
	"quinoa":  {gramsPerUnit: 140, singular: "cup", plural: "cups", defaultGrams: 140},
	"pasta":   {gramsPerUnit: 140, singular: "cup", plural: "cups", defaultGrams: 140},
	"egg":     {gramsPerUnit: 50, singular: "egg", plural: "eggs", defaultGrams: 100},
	"banana":  {gramsPerUnit: 120, singular: "medium banana", plural: "medium bananas", defaultGrams: 120},
	"apple":   {gramsPerUnit: 180, singular: "medium apple", plural: "medium apples", defaultGrams: 180},
	"almond":  {gramsPerUnit: 15, singular: "tbsp", plural: "tbsp", defaultGrams: 15},
	"butter":  {gramsPerUnit: 14, singular: "tbsp", plural: "tbsp", defaultGrams: 14},
	"oil":     {gramsPerUnit: 14, singular: "tbsp", plural: "tbsp", defaultGrams: 14},
	"honey":   {gramsPerUnit: 21, singular: "tbsp", plural: "tbsp", defaultGrams: 21},
	"chicken": {gramsPerUnit: 28.35, singular: "oz", plural: "oz", defaultGrams: 170},
	"beef":    {gramsPerUnit: 28.35, singular: "oz", plural: "oz", defaultGrams: 170},
	"salmon":  {gramsPerUnit: 28.35, singular: "oz", plural: "oz", defaultGrams: 170},
	"tuna":    {gramsPerUnit: 28.35, singular: "oz", plural: "oz", defaultGrams: 140},
	"milk":    {gramsPerUnit: 240, singular: "cup", plural: "cups", defaultGrams: 240},
	"yogurt":  {gramsPerUnit: 245, singular: "cup", plural: "cups", defaultGrams: 170},
	"spinach": {gramsPerUnit: 30, singular: "cup", plural: "cups", defaultGrams: 60},
	"bread":   {gramsPerUnit: 28, singular: "slice", plural: "slices", defaultGrams: 56},
	"cheese":  {gramsPerUnit: 28, singular: "oz", plural: "oz", defaultGrams: 56},
}

// lookupPortion finds the conversion entry whose key appears in the
// ingredient name.
func lookupPortion(name string) (portionDef, bool) {
	name = strings.ToLower(name)
	for key, def := range portionTable {
		if strings.Contains(name, key) {
			return def, true
		}
	}
	return portionDef{}, false
}

// ConvertGramsToPortion renders grams of a named ingredient as a human
// portion string such as "1 cup" or "2 eggs". Quantities are rounded to
// the nearest half unit; unknown ingredients are reported in grams.
func ConvertGramsToPortion(name string, grams float64) string {
	def, ok := lookupPortion(name)
	if !ok || def.gramsPerUnit <= 0 {
		return fmt.Sprintf("%.0f g", grams)
	}

	units := math.Round(grams/def.gramsPerUnit*2) / 2
	if units < 0.5 {
		units = 0.5
	}

	label := def.plural
	if units == 1 {
		label = def.singular
	}
	return fmt.Sprintf("%s %s", formatQuantity(units), label)
}

// defaultGramsFor estimates a sensible portion weight for an ingredient
// when only its name is known, with a generic 100 g fallback.
func defaultGramsFor(name string) float64 {
	if def, ok := lookupPortion(name); ok && def.defaultGrams > 0 {
		return def.defaultGrams
	}
	return 100
}

// formatQuantity trims trailing ".0" so whole quantities print as "2"
// and halves as "1.5".
func formatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return fmt.Sprintf("%.0f", q)
	}
	return fmt.Sprintf("%.1f", q)
}
