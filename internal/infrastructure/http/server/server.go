// Package server provides the HTTP server wiring the REST API
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/http/handlers"
	"github.com/nutriplan/v1/internal/infrastructure/http/middleware"
	"github.com/nutriplan/v1/internal/infrastructure/monitoring"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// Handlers bundles the API handler groups for route registration
type Handlers struct {
	Health   *handlers.HealthHandlers
	Recipes  *handlers.RecipeHandlers
	MealPlan *handlers.MealPlanHandlers
	FoodLog  *handlers.FoodLogHandlers
	Shopping *handlers.ShoppingHandlers
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, logger *zap.Logger, h Handlers) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
	}
	s.router = s.setupRouter(h)
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupRouter configures the middleware stack and routes
func (s *Server) setupRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	r.Use(middleware.Security())

	r.Get("/health", h.Health.HealthCheck)
	r.Method(http.MethodGet, "/metrics", monitoring.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.config.Auth.JWTSecret))

		r.Route("/recipes", func(r chi.Router) {
			r.Post("/generate", h.Recipes.Generate)
			r.Get("/examples", h.Recipes.Examples)
			r.Get("/", h.Recipes.List)
			r.Post("/", h.Recipes.Save)
			r.Get("/{id}", h.Recipes.Get)
			r.Put("/{id}", h.Recipes.Update)
			r.Delete("/{id}", h.Recipes.Delete)
		})

		r.Route("/meal-plans", func(r chi.Router) {
			r.Get("/by-date", h.MealPlan.ByDate)
			r.Post("/auto-fill", h.MealPlan.AutoFill)
		})

		r.Route("/meal-slots", func(r chi.Router) {
			r.Patch("/{id}", h.MealPlan.UpdateSlot)
			r.Delete("/{id}/clear", h.MealPlan.ClearSlot)
		})

		r.Route("/food-logs", func(r chi.Router) {
			r.Get("/daily-totals", h.FoodLog.DailyTotals)
			r.Post("/", h.FoodLog.Create)
			r.Delete("/{id}", h.FoodLog.Delete)
		})

		r.Get("/shopping-list", h.Shopping.Get)
	})

	return r
}

// Start begins listening for requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting",
		zap.String("addr", s.server.Addr),
		zap.String("environment", s.config.App.Environment))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
