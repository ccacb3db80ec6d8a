package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Create(RecipeToModel(rec)).Error
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model), nil
}

// FindByUserID finds all recipes owned by a user, newest first
func (r *RecipeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToRecipes(models), nil
}

// FindByIDs finds recipes by a set of IDs. Missing IDs are skipped, not
// errors; callers detect gaps by map lookup.
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []RecipeModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToRecipes(models), nil
}

// FindByUserAndCalorieRange finds a user's recipes of a meal type within a
// calorie band, closest to the band midpoint first.
func (r *RecipeRepository) FindByUserAndCalorieRange(ctx context.Context, userID uuid.UUID, mealType recipe.MealType, minCalories, maxCalories int, limit int) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND calories >= ? AND calories <= ?", userID, minCalories, maxCalories)
	if mealType != "" {
		query = query.Where("meal_type = ?", string(mealType))
	}

	midpoint := (minCalories + maxCalories) / 2
	result := query.
		Order(fmt.Sprintf("ABS(calories - %d)", midpoint)).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToRecipes(models), nil
}

// Update updates an existing recipe
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	result := r.db.WithContext(ctx).Save(RecipeToModel(rec))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// Delete deletes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func modelsToRecipes(models []RecipeModel) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes
}
