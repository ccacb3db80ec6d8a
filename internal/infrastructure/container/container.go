// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/nutriplan/v1/internal/application/generation"
	appmealplan "github.com/nutriplan/v1/internal/application/mealplan"
	appnutrition "github.com/nutriplan/v1/internal/application/nutrition"
	"github.com/nutriplan/v1/internal/application/recipes"
	"github.com/nutriplan/v1/internal/application/shopping"
	"github.com/nutriplan/v1/internal/infrastructure/ai/lmstudio"
	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/http/handlers"
	"github.com/nutriplan/v1/internal/infrastructure/http/server"
	"github.com/nutriplan/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/nutriplan/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/postgres"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/redis"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/sqlite"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection. The sqlite driver
// serves development and tests; postgres serves everything else.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "sqlite" {
			logLevel := gormLogger.Silent
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}

			db, err := sqlite.SetupDatabase(cfg.Database.Database, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}

			log.Info("Connected to SQLite database",
				zap.String("path", cfg.Database.Database),
				zap.Bool("in_memory", cfg.Database.Database == ""))
			return db, nil
		}

		return postgres.Connect(cfg, log)
	},
)

// CacheModule provides the optional Redis cache. A missing host means no
// cache; the example picker degrades to direct reads.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.Redis.Host == "" {
			log.Info("Redis not configured, caching disabled")
			return nil
		}
		cache, err := redis.NewCacheRepository(cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, caching disabled", zap.Error(err))
			return nil
		}
		return cache
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewMealPlanRepository,
	gormRepo.NewFoodRepository,
	gormRepo.NewFoodLogRepository,
	gormRepo.NewProfileRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// LLM client, provided both concrete (for health checks) and as the
	// pipeline's AIClient port
	func(cfg *config.Config, log *zap.Logger) *lmstudio.Client {
		return lmstudio.NewClient(cfg.AI, log)
	},
	func(client *lmstudio.Client) outbound.AIClient {
		return client
	},

	// Pipeline metrics
	fx.Annotate(
		monitoring.NewGenerationMetrics,
		fx.As(new(generation.Metrics)),
	),

	// Generation pipeline
	generation.NewPipeline,

	// Nutrition aggregation and food logging
	appnutrition.NewAggregator,
	appnutrition.NewTracker,

	// Recipe use cases
	recipes.NewService,

	// Weekly plan management
	appmealplan.NewManager,

	// Shopping list builder
	shopping.NewBuilder,
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewRecipeHandlers,
	handlers.NewMealPlanHandlers,
	handlers.NewFoodLogHandlers,
	handlers.NewShoppingHandlers,

	func(cfg *config.Config, db *gorm.DB, client *lmstudio.Client) *handlers.HealthHandlers {
		checks := map[string]func() error{
			"database": func() error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Ping()
			},
			"llm": func() error {
				return client.HealthCheck(context.Background())
			},
		}
		return handlers.NewHealthHandlers(cfg.App.Version, checks)
	},

	func(
		h *handlers.HealthHandlers,
		recipeHandlers *handlers.RecipeHandlers,
		mealPlanHandlers *handlers.MealPlanHandlers,
		foodLogHandlers *handlers.FoodLogHandlers,
		shoppingHandlers *handlers.ShoppingHandlers,
	) server.Handlers {
		return server.Handlers{
			Health:   h,
			Recipes:  recipeHandlers,
			MealPlan: mealPlanHandlers,
			FoodLog:  foodLogHandlers,
			Shopping: shoppingHandlers,
		}
	},

	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting NutriPlan application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down NutriPlan application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
