// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProfileModel represents the GORM model for user nutrition profiles
type ProfileModel struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`

	Age           int     `gorm:"default:0"`
	WeightKg      float64 `gorm:"default:0"`
	HeightCm      int     `gorm:"default:0"`
	Gender        string  `gorm:"type:varchar(20)"`
	ActivityLevel string  `gorm:"type:varchar(30)"`
	Goal          string  `gorm:"type:varchar(30)"`

	DietaryPreferences   string `gorm:"type:text"`
	Allergies            string `gorm:"type:text"`
	Dislikes             string `gorm:"type:text"`
	CuisinePreferences   string `gorm:"type:text"`
	PreferredIngredients string `gorm:"type:text"`
	AvailableIngredients string `gorm:"type:text"`

	DailyCalorieTarget int `gorm:"default:0"`
	DailyProteinTarget int `gorm:"default:0"`
	DailyCarbsTarget   int `gorm:"default:0"`
	DailyFatsTarget    int `gorm:"default:0"`

	MealsPerDay      int         `gorm:"default:3"`
	MealDistribution IntFloatMap `gorm:"type:json"`
	MealNames        IntStringMap `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID `gorm:"type:char(36);not null;index"`

	Name        string `gorm:"type:varchar(200);not null"`
	Ingredients string `gorm:"type:text;not null"`
	Steps       string `gorm:"type:text;not null"`

	Calories        int     `gorm:"default:0;index"`
	Protein         float64 `gorm:"default:0"`
	Carbs           float64 `gorm:"default:0"`
	Fats            float64 `gorm:"default:0"`
	PrepTimeMinutes int     `gorm:"default:1"`
	MealType        string  `gorm:"type:varchar(20);not null;index"`

	CreatedAt time.Time `gorm:"index"`
}

// MealPlanModel represents the GORM model for weekly meal plans.
// The composite unique index backs the one-plan-per-user-week invariant.
type MealPlanModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_user_week"`
	WeekStartDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_week"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships
	Slots []MealSlotModel `gorm:"foreignKey:PlanID"`
}

// MealSlotModel represents the GORM model for meal slots
type MealSlotModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	PlanID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_plan_day_meal"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:idx_plan_day_meal;check:day_of_week >= 0 AND day_of_week <= 6"`
	MealType  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_plan_day_meal"`

	RecipeID       *uuid.UUID `gorm:"type:char(36);index"`
	IsLeftover     bool       `gorm:"default:false"`
	OriginalSlotID *uuid.UUID `gorm:"type:char(36)"`
	Notes          string     `gorm:"type:text"`
}

// FoodModel represents the GORM model for USDA-backed reference foods
type FoodModel struct {
	ID           uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name         string      `gorm:"type:varchar(255);not null;index"`
	ServingSizeG float64     `gorm:"not null"`
	Calories     float64     `gorm:"default:0"`
	Protein      float64     `gorm:"default:0"`
	Carbs        float64     `gorm:"default:0"`
	Fats         float64     `gorm:"default:0"`
	Category     string      `gorm:"type:varchar(50);index"`
	Allergens    StringSlice `gorm:"type:json"`
}

// FoodLogModel represents the GORM model for food log entries.
// Macros are denormalized at write time.
type FoodLogModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID `gorm:"type:char(36);not null;index:idx_user_date"`
	FoodID        uuid.UUID `gorm:"type:char(36);not null"`
	FoodName      string    `gorm:"type:varchar(255);not null"`
	Date          time.Time `gorm:"type:date;not null;index:idx_user_date"`
	MealType      string    `gorm:"type:varchar(20);not null"`
	QuantityGrams float64   `gorm:"not null"`
	Calories      float64   `gorm:"default:0"`
	Protein       float64   `gorm:"default:0"`
	Carbs         float64   `gorm:"default:0"`
	Fats          float64   `gorm:"default:0"`
	CreatedAt     time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// IntFloatMap custom type for the meal distribution JSON column
type IntFloatMap map[int]float64

// Scan implements the sql.Scanner interface
func (m *IntFloatMap) Scan(value interface{}) error {
	if value == nil {
		*m = IntFloatMap{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into IntFloatMap", value)
	}
}

// Value implements the driver.Valuer interface
func (m IntFloatMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// IntStringMap custom type for the meal names JSON column
type IntStringMap map[int]string

// Scan implements the sql.Scanner interface
func (m *IntStringMap) Scan(value interface{}) error {
	if value == nil {
		*m = IntStringMap{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into IntStringMap", value)
	}
}

// Value implements the driver.Valuer interface
func (m IntStringMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// TableName methods for custom table names
func (ProfileModel) TableName() string {
	return "profiles"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (MealPlanModel) TableName() string {
	return "meal_plans"
}

func (MealSlotModel) TableName() string {
	return "meal_slots"
}

func (FoodModel) TableName() string {
	return "foods"
}

func (FoodLogModel) TableName() string {
	return "food_logs"
}
