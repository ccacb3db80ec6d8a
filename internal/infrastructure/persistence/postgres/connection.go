// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutriplan/v1/internal/infrastructure/config"
	gormModels "github.com/nutriplan/v1/internal/infrastructure/persistence/gorm"
)

// Connect opens a pooled PostgreSQL connection and optionally runs
// auto-migration. TranslateError maps unique-constraint violations to
// gorm.ErrDuplicatedKey for the repositories.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.App.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if cfg.Database.AutoMigrate {
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
	}

	log.Info("PostgreSQL connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Database),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns))

	return db, nil
}
