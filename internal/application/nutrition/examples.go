package nutrition

import (
	domnutrition "github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
)

// referenceMeal is a curated USDA-derived reference meal used by the
// example picker alongside the user's own saved recipes.
type referenceMeal struct {
	Name        string
	MealType    recipe.MealType
	Macros      domnutrition.Macros
	Ingredients []referenceIngredient
	Tags        []string
}

type referenceIngredient struct {
	Name  string
	Grams float64
}

// referenceMeals is the built-in curated set. Macros are whole-meal values
// assembled from USDA per-100g data during curation.
var referenceMeals = []referenceMeal{
	{
		Name:     "Oatmeal with banana and almonds",
		MealType: recipe.MealTypeBreakfast,
		Macros:   domnutrition.Macros{Calories: 420, Protein: 12, Carbs: 68, Fats: 12},
		Ingredients: []referenceIngredient{
			{Name: "oats", Grams: 85},
			{Name: "banana", Grams: 120},
			{Name: "almonds", Grams: 15},
			{Name: "milk", Grams: 240},
		},
		Tags: []string{"vegetarian"},
	},
	{
		Name:     "Scrambled eggs on toast",
		MealType: recipe.MealTypeBreakfast,
		Macros:   domnutrition.Macros{Calories: 380, Protein: 22, Carbs: 30, Fats: 18},
		Ingredients: []referenceIngredient{
			{Name: "eggs", Grams: 100},
			{Name: "whole wheat bread", Grams: 56},
			{Name: "butter", Grams: 10},
		},
		Tags: []string{"vegetarian"},
	},
	{
		Name:     "Greek yogurt with honey and oats",
		MealType: recipe.MealTypeBreakfast,
		Macros:   domnutrition.Macros{Calories: 310, Protein: 20, Carbs: 45, Fats: 6},
		Ingredients: []referenceIngredient{
			{Name: "greek yogurt", Grams: 170},
			{Name: "honey", Grams: 21},
			{Name: "oats", Grams: 40},
		},
		Tags: []string{"vegetarian", "gluten-free"},
	},
	{
		Name:     "Grilled chicken with rice and broccoli",
		MealType: recipe.MealTypeLunch,
		Macros:   domnutrition.Macros{Calories: 520, Protein: 45, Carbs: 55, Fats: 12},
		Ingredients: []referenceIngredient{
			{Name: "chicken breast", Grams: 170},
			{Name: "rice", Grams: 150},
			{Name: "broccoli", Grams: 90},
			{Name: "olive oil", Grams: 7},
		},
		Tags: []string{"gluten-free"},
	},
	{
		Name:     "Tuna salad sandwich",
		MealType: recipe.MealTypeLunch,
		Macros:   domnutrition.Macros{Calories: 450, Protein: 32, Carbs: 42, Fats: 16},
		Ingredients: []referenceIngredient{
			{Name: "tuna", Grams: 140},
			{Name: "whole wheat bread", Grams: 56},
			{Name: "mayonnaise", Grams: 15},
			{Name: "lettuce", Grams: 20},
		},
		Tags: []string{},
	},
	{
		Name:     "Quinoa and black bean bowl",
		MealType: recipe.MealTypeLunch,
		Macros:   domnutrition.Macros{Calories: 480, Protein: 18, Carbs: 78, Fats: 11},
		Ingredients: []referenceIngredient{
			{Name: "quinoa", Grams: 140},
			{Name: "black beans", Grams: 130},
			{Name: "avocado", Grams: 50},
			{Name: "corn", Grams: 80},
		},
		Tags: []string{"vegetarian", "vegan", "gluten-free"},
	},
	{
		Name:     "Baked salmon with sweet potato",
		MealType: recipe.MealTypeDinner,
		Macros:   domnutrition.Macros{Calories: 560, Protein: 40, Carbs: 48, Fats: 22},
		Ingredients: []referenceIngredient{
			{Name: "salmon", Grams: 170},
			{Name: "sweet potato", Grams: 200},
			{Name: "asparagus", Grams: 90},
			{Name: "olive oil", Grams: 10},
		},
		Tags: []string{"gluten-free"},
	},
	{
		Name:     "Beef stir fry with rice",
		MealType: recipe.MealTypeDinner,
		Macros:   domnutrition.Macros{Calories: 610, Protein: 38, Carbs: 62, Fats: 22},
		Ingredients: []referenceIngredient{
			{Name: "beef", Grams: 150},
			{Name: "rice", Grams: 150},
			{Name: "bell pepper", Grams: 80},
			{Name: "soy sauce", Grams: 15},
		},
		Tags: []string{},
	},
	{
		Name:     "Lentil and vegetable curry",
		MealType: recipe.MealTypeDinner,
		Macros:   domnutrition.Macros{Calories: 490, Protein: 22, Carbs: 72, Fats: 12},
		Ingredients: []referenceIngredient{
			{Name: "lentils", Grams: 180},
			{Name: "rice", Grams: 120},
			{Name: "coconut milk", Grams: 60},
			{Name: "spinach", Grams: 60},
		},
		Tags: []string{"vegetarian", "vegan", "gluten-free"},
	},
	{
		Name:     "Apple with peanut butter",
		MealType: recipe.MealTypeSnack,
		Macros:   domnutrition.Macros{Calories: 270, Protein: 8, Carbs: 32, Fats: 14},
		Ingredients: []referenceIngredient{
			{Name: "apple", Grams: 180},
			{Name: "peanut butter", Grams: 30},
		},
		Tags: []string{"vegetarian", "vegan", "gluten-free"},
	},
	{
		Name:     "Greek yogurt with almonds",
		MealType: recipe.MealTypeSnack,
		Macros:   domnutrition.Macros{Calories: 220, Protein: 18, Carbs: 14, Fats: 11},
		Ingredients: []referenceIngredient{
			{Name: "greek yogurt", Grams: 170},
			{Name: "almonds", Grams: 15},
		},
		Tags: []string{"vegetarian", "gluten-free"},
	},
	{
		Name:     "Hummus with carrot sticks",
		MealType: recipe.MealTypeSnack,
		Macros:   domnutrition.Macros{Calories: 180, Protein: 6, Carbs: 22, Fats: 8},
		Ingredients: []referenceIngredient{
			{Name: "hummus", Grams: 60},
			{Name: "carrots", Grams: 120},
		},
		Tags: []string{"vegetarian", "vegan", "gluten-free"},
	},
}

// Ingredient keyword lists backing the best-effort dietary filters. A meal
// whose ingredients mention any keyword is excluded for that diet.
var (
	meatKeywords  = []string{"chicken", "beef", "pork", "turkey", "salmon", "tuna", "fish", "shrimp", "bacon", "ham", "lamb"}
	dairyKeywords = []string{"milk", "cheese", "yogurt", "butter", "cream"}
	eggKeywords   = []string{"egg"}
)
