package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// MealPlanRepository implements the meal plan repository interface using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create inserts the plan row and its 21 slot rows in one transaction.
// Either all rows land or none do. A unique constraint violation on
// (user_id, week_start_date) surfaces as ErrDuplicateWeek.
func (r *MealPlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	model := MealPlanToModel(plan)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := model.Slots
		model.Slots = nil
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return tx.Create(&slots).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return outbound.ErrDuplicateWeek
		}
		return err
	}
	return nil
}

// FindByUserAndWeek loads a plan with its slots ordered by day and meal.
func (r *MealPlanRepository) FindByUserAndWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*mealplan.MealPlan, error) {
	var model MealPlanModel
	result := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week, CASE meal_type WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 ELSE 2 END")
		}).
		First(&model, "user_id = ? AND week_start_date = ?", userID, weekStart)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToMealPlan(&model), nil
}

// FindSlotByID loads a slot together with its owning plan for ownership
// checks.
func (r *MealPlanRepository) FindSlotByID(ctx context.Context, slotID uuid.UUID) (*mealplan.MealSlot, *mealplan.MealPlan, error) {
	var slotModel MealSlotModel
	result := r.db.WithContext(ctx).First(&slotModel, "id = ?", slotID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil, outbound.ErrNotFound
		}
		return nil, nil, result.Error
	}

	var planModel MealPlanModel
	result = r.db.WithContext(ctx).First(&planModel, "id = ?", slotModel.PlanID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil, outbound.ErrNotFound
		}
		return nil, nil, result.Error
	}

	return ModelToMealSlot(&slotModel), ModelToMealPlan(&planModel), nil
}

// UpdateSlot writes the slot's four mutable fields in one statement.
// Select forces zero values through, so clearing a slot actually nulls
// the recipe reference instead of being skipped as a zero value.
func (r *MealPlanRepository) UpdateSlot(ctx context.Context, slot *mealplan.MealSlot) error {
	model := MealSlotToModel(slot)
	result := r.db.WithContext(ctx).
		Model(&MealSlotModel{}).
		Where("id = ?", slot.ID).
		Select("recipe_id", "is_leftover", "original_slot_id", "notes").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// Delete removes a plan and its slots.
func (r *MealPlanRepository) Delete(ctx context.Context, planID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&MealSlotModel{}, "plan_id = ?", planID).Error; err != nil {
			return err
		}
		result := tx.Delete(&MealPlanModel{}, "id = ?", planID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return outbound.ErrNotFound
		}
		return nil
	})
}
