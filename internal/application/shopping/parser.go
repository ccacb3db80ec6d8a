package shopping

import (
	"strconv"
	"strings"
)

// parsedIngredient is the (name, quantity, unit) triple extracted from one
// free-text ingredient line.
type parsedIngredient struct {
	name     string
	quantity float64
	unit     string
}

// knownUnits normalizes the units that appear in model output. Values are
// the canonical spelling used for merge keys.
var knownUnits = map[string]string{
	"g":           "g",
	"gram":        "g",
	"grams":       "g",
	"kg":          "kg",
	"ml":          "ml",
	"l":           "l",
	"liter":       "l",
	"liters":      "l",
	"oz":          "oz",
	"ounce":       "oz",
	"ounces":      "oz",
	"lb":          "lb",
	"lbs":         "lb",
	"cup":         "cup",
	"cups":        "cup",
	"tbsp":        "tbsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tsp":         "tsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"slice":       "slice",
	"slices":      "slice",
	"clove":       "clove",
	"cloves":      "clove",
	"piece":       "piece",
	"pieces":      "piece",
	"can":         "can",
	"cans":        "can",
}

// fillerWords are dropped from the front of the name after quantity and
// unit extraction, so "2 cups of rice" and "2 cups rice" merge.
var fillerWords = map[string]bool{"of": true, "fresh": true}

// parseIngredient extracts quantity, unit and name from a line such as
// "2 cups rice", "200g chicken breast" or "salt". Model output is not a
// grammar, so this is a best-effort heuristic: anything unparseable keeps
// the whole line as the name with zero quantity.
func parseIngredient(line string) parsedIngredient {
	line = strings.TrimSpace(line)
	if line == "" {
		return parsedIngredient{}
	}

	fields := strings.Fields(line)
	quantity, rest := parseQuantity(fields)

	// Attached unit, e.g. "200g" or "150ml".
	if quantity == 0 && len(rest) > 0 {
		if q, unit, ok := splitAttachedUnit(rest[0]); ok {
			return parsedIngredient{
				name:     normalizeName(rest[1:]),
				quantity: q,
				unit:     unit,
			}
		}
	}

	unit := ""
	if quantity > 0 && len(rest) > 0 {
		if canonical, ok := knownUnits[strings.ToLower(strings.TrimRight(rest[0], ".,"))]; ok {
			unit = canonical
			rest = rest[1:]
		}
	}

	name := normalizeName(rest)
	if name == "" {
		// The line was only a number or a unit; keep the raw text so the
		// item is not silently dropped.
		name = strings.ToLower(line)
		quantity = 0
		unit = ""
	}
	return parsedIngredient{name: name, quantity: quantity, unit: unit}
}

// parseQuantity consumes a leading amount: "2", "1.5", "1/2" or "1 1/2".
func parseQuantity(fields []string) (float64, []string) {
	if len(fields) == 0 {
		return 0, fields
	}
	first, ok := parseNumber(fields[0])
	if !ok {
		return 0, fields
	}
	rest := fields[1:]
	// Mixed fraction: "1 1/2 cups".
	if len(rest) > 0 && strings.Contains(rest[0], "/") {
		if frac, ok := parseNumber(rest[0]); ok {
			return first + frac, rest[1:]
		}
	}
	return first, rest
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimRight(s, ".,")
	if num, denom, found := strings.Cut(s, "/"); found {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(denom, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// splitAttachedUnit handles tokens like "200g" where the amount and unit
// are not separated by whitespace.
func splitAttachedUnit(token string) (float64, string, bool) {
	i := 0
	for i < len(token) && (token[i] >= '0' && token[i] <= '9' || token[i] == '.') {
		i++
	}
	if i == 0 || i == len(token) {
		return 0, "", false
	}
	q, err := strconv.ParseFloat(token[:i], 64)
	if err != nil || q <= 0 {
		return 0, "", false
	}
	unit, ok := knownUnits[strings.ToLower(strings.TrimRight(token[i:], ".,"))]
	if !ok {
		return 0, "", false
	}
	return q, unit, true
}

func normalizeName(fields []string) string {
	for len(fields) > 0 && fillerWords[strings.ToLower(fields[0])] {
		fields = fields[1:]
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// Store categories for list grouping.
const (
	CategoryProduce = "produce"
	CategoryProtein = "protein"
	CategoryDairy   = "dairy"
	CategoryGrains  = "grains"
	CategoryPantry  = "pantry"
	CategoryOther   = "other"
)

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryProtein, []string{"chicken", "beef", "pork", "turkey", "salmon", "tuna", "fish", "shrimp", "egg", "tofu", "lentil", "bean", "chickpea"}},
	{CategoryDairy, []string{"milk", "cheese", "yogurt", "butter", "cream"}},
	{CategoryGrains, []string{"rice", "oat", "pasta", "bread", "quinoa", "flour", "tortilla", "noodle"}},
	{CategoryProduce, []string{"tomato", "onion", "garlic", "pepper", "spinach", "lettuce", "broccoli", "carrot", "banana", "apple", "avocado", "lemon", "lime", "potato", "cucumber", "zucchini", "mushroom", "berry", "berries", "orange", "corn", "asparagus"}},
	{CategoryPantry, []string{"oil", "salt", "sugar", "honey", "vinegar", "sauce", "spice", "cumin", "paprika", "oregano", "cinnamon", "vanilla", "stock", "broth", "almond", "walnut", "peanut"}},
}

// categoryFor assigns a store category by keyword match, defaulting to
// "other".
func categoryFor(name string) string {
	name = strings.ToLower(name)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(name, keyword) {
				return group.category
			}
		}
	}
	return CategoryOther
}
