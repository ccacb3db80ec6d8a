package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// FoodLogRepository implements the food log repository interface using GORM
type FoodLogRepository struct {
	db *gorm.DB
}

// NewFoodLogRepository creates a new food log repository
func NewFoodLogRepository(db *gorm.DB) outbound.FoodLogRepository {
	return &FoodLogRepository{db: db}
}

// Create creates a new food log entry
func (r *FoodLogRepository) Create(ctx context.Context, log *nutrition.FoodLog) error {
	return r.db.WithContext(ctx).Create(FoodLogToModel(log)).Error
}

// FindByID finds a food log entry by ID
func (r *FoodLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*nutrition.FoodLog, error) {
	var model FoodLogModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToFoodLog(&model), nil
}

// FindByUserAndDate finds a user's log entries for one calendar date.
func (r *FoodLogRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*nutrition.FoodLog, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var models []FoodLogModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		Order("created_at").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	logs := make([]*nutrition.FoodLog, len(models))
	for i := range models {
		logs[i] = ModelToFoodLog(&models[i])
	}
	return logs, nil
}

// Delete deletes a food log entry by ID
func (r *FoodLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&FoodLogModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}
