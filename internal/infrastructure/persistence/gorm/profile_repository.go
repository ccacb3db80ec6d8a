package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutriplan/v1/internal/domain/user"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// ProfileRepository implements the profile repository interface using GORM
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) outbound.ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByUserID finds a profile by the owning user's ID
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	var model ProfileModel
	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToProfile(&model), nil
}

// Save upserts a profile keyed by user ID.
func (r *ProfileRepository) Save(ctx context.Context, profile *user.Profile) error {
	model := ProfileToModel(profile)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}
