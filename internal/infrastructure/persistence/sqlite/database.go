// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/nutriplan/v1/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database.
// TranslateError maps driver unique-constraint errors to
// gorm.ErrDuplicatedKey, which the repositories rely on.
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&gormModels.ProfileModel{},
		&gormModels.RecipeModel{},
		&gormModels.MealPlanModel{},
		&gormModels.MealSlotModel{},
		&gormModels.FoodModel{},
		&gormModels.FoodLogModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the food reference table with a starter set of
// USDA-derived per-serving values. Skipped when rows already exist.
func SeedDatabase(db *gorm.DB) error {
	var foodCount int64
	db.Model(&gormModels.FoodModel{}).Count(&foodCount)
	if foodCount > 0 {
		return nil // Already seeded
	}

	foods := []gormModels.FoodModel{
		{Name: "Rolled oats", ServingSizeG: 100, Calories: 389, Protein: 16.9, Carbs: 66.3, Fats: 6.9, Category: "grains"},
		{Name: "White rice, cooked", ServingSizeG: 100, Calories: 130, Protein: 2.7, Carbs: 28.2, Fats: 0.3, Category: "grains"},
		{Name: "Whole wheat bread", ServingSizeG: 100, Calories: 247, Protein: 13.0, Carbs: 41.0, Fats: 3.4, Category: "grains", Allergens: gormModels.StringSlice{"gluten"}},
		{Name: "Chicken breast, cooked", ServingSizeG: 100, Calories: 165, Protein: 31.0, Carbs: 0, Fats: 3.6, Category: "protein"},
		{Name: "Salmon, baked", ServingSizeG: 100, Calories: 206, Protein: 22.1, Carbs: 0, Fats: 12.4, Category: "protein", Allergens: gormModels.StringSlice{"fish"}},
		{Name: "Egg, whole", ServingSizeG: 100, Calories: 155, Protein: 12.6, Carbs: 1.1, Fats: 10.6, Category: "protein", Allergens: gormModels.StringSlice{"egg"}},
		{Name: "Whole milk", ServingSizeG: 100, Calories: 61, Protein: 3.2, Carbs: 4.8, Fats: 3.3, Category: "dairy", Allergens: gormModels.StringSlice{"milk"}},
		{Name: "Greek yogurt, plain", ServingSizeG: 100, Calories: 59, Protein: 10.2, Carbs: 3.6, Fats: 0.4, Category: "dairy", Allergens: gormModels.StringSlice{"milk"}},
		{Name: "Banana", ServingSizeG: 100, Calories: 89, Protein: 1.1, Carbs: 22.8, Fats: 0.3, Category: "produce"},
		{Name: "Apple", ServingSizeG: 100, Calories: 52, Protein: 0.3, Carbs: 13.8, Fats: 0.2, Category: "produce"},
		{Name: "Broccoli, steamed", ServingSizeG: 100, Calories: 35, Protein: 2.4, Carbs: 7.2, Fats: 0.4, Category: "produce"},
		{Name: "Spinach, raw", ServingSizeG: 100, Calories: 23, Protein: 2.9, Carbs: 3.6, Fats: 0.4, Category: "produce"},
		{Name: "Almonds", ServingSizeG: 100, Calories: 579, Protein: 21.2, Carbs: 21.6, Fats: 49.9, Category: "pantry", Allergens: gormModels.StringSlice{"tree nuts"}},
		{Name: "Peanut butter", ServingSizeG: 100, Calories: 588, Protein: 25.1, Carbs: 19.6, Fats: 50.4, Category: "pantry", Allergens: gormModels.StringSlice{"peanuts"}},
		{Name: "Olive oil", ServingSizeG: 100, Calories: 884, Protein: 0, Carbs: 0, Fats: 100, Category: "pantry"},
		{Name: "Lentils, cooked", ServingSizeG: 100, Calories: 116, Protein: 9.0, Carbs: 20.1, Fats: 0.4, Category: "protein"},
	}

	for i := range foods {
		foods[i].ID = uuid.New()
		if err := db.Create(&foods[i]).Error; err != nil {
			return fmt.Errorf("failed to seed food %q: %w", foods[i].Name, err)
		}
	}

	return nil
}
