package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// FoodRepository implements read access to the food reference table
type FoodRepository struct {
	db *gorm.DB
}

// NewFoodRepository creates a new food repository
func NewFoodRepository(db *gorm.DB) outbound.FoodRepository {
	return &FoodRepository{db: db}
}

// FindByID finds a reference food by ID
func (r *FoodRepository) FindByID(ctx context.Context, id uuid.UUID) (*nutrition.Food, error) {
	var model FoodModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToFood(&model), nil
}
