// Package shopping builds consolidated shopping lists from a week's meal
// plan. Leftover slots reuse food already cooked, so only non-leftover
// slot recipes contribute ingredients.
package shopping

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// Item is one consolidated shopping list line. Quantity is zero when the
// ingredient text carried no leading amount; Unit may be empty.
type Item struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	InPantry bool    `json:"in_pantry"`
	Recipes  []string `json:"recipes"`
}

// List is the shopping list for one plan week, grouped by store category.
type List struct {
	WeekStartDate time.Time         `json:"week_start_date"`
	WeekEndDate   time.Time         `json:"week_end_date"`
	Categories    map[string][]Item `json:"categories"`
	TotalItems    int               `json:"total_items"`
}

// Builder assembles shopping lists from plans and their recipes.
type Builder struct {
	plans    outbound.MealPlanRepository
	recipes  outbound.RecipeRepository
	profiles outbound.ProfileRepository
	logger   *zap.Logger
}

// NewBuilder creates a shopping list builder.
func NewBuilder(plans outbound.MealPlanRepository, recipes outbound.RecipeRepository, profiles outbound.ProfileRepository, logger *zap.Logger) *Builder {
	return &Builder{
		plans:    plans,
		recipes:  recipes,
		profiles: profiles,
		logger:   logger.Named("shopping"),
	}
}

// BuildForWeek loads the plan containing date and builds its list. The
// pantry comes from the profile's available ingredients; a missing
// profile just means an empty pantry.
func (b *Builder) BuildForWeek(ctx context.Context, userID uuid.UUID, date time.Time) (*List, error) {
	weekStart := mealplan.MondayOf(date)
	plan, err := b.plans.FindByUserAndWeek(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("meal plan")
		}
		return nil, apperrors.NewDatabaseError("load meal plan", err)
	}

	recipeIDs := collectRecipeIDs(plan)
	recipes, err := b.recipes.FindByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load plan recipes", err)
	}
	recipesByID := make(map[uuid.UUID]*recipe.Recipe, len(recipes))
	for _, r := range recipes {
		recipesByID[r.ID] = r
	}

	var pantry []string
	if profile, err := b.profiles.FindByUserID(ctx, userID); err == nil {
		pantry = profile.PantryItems()
	} else if !errors.Is(err, outbound.ErrNotFound) {
		return nil, apperrors.NewDatabaseError("load profile", err)
	}

	return Build(plan, recipesByID, pantry), nil
}

// Build consolidates the plan's non-leftover slot recipes into a list.
// Lines with the same (name, unit) merge and sum; the same name under a
// different unit stays a separate line because cross-unit conversion is
// not attempted.
func Build(plan *mealplan.MealPlan, recipesByID map[uuid.UUID]*recipe.Recipe, pantry []string) *List {
	type key struct {
		name string
		unit string
	}
	merged := make(map[key]*Item)
	var order []key

	for i := range plan.Slots {
		slot := &plan.Slots[i]
		if slot.RecipeID == nil || slot.IsLeftover {
			continue
		}
		r, ok := recipesByID[*slot.RecipeID]
		if !ok {
			continue
		}
		for _, line := range r.IngredientLines() {
			parsed := parseIngredient(line)
			if parsed.name == "" {
				continue
			}
			k := key{name: parsed.name, unit: parsed.unit}
			item, exists := merged[k]
			if !exists {
				item = &Item{
					Name:     parsed.name,
					Unit:     parsed.unit,
					Category: categoryFor(parsed.name),
					InPantry: inPantry(parsed.name, pantry),
				}
				merged[k] = item
				order = append(order, k)
			}
			item.Quantity += parsed.quantity
			if !containsString(item.Recipes, r.Name) {
				item.Recipes = append(item.Recipes, r.Name)
			}
		}
	}

	list := &List{
		WeekStartDate: plan.WeekStartDate,
		WeekEndDate:   plan.WeekEndDate(),
		Categories:    make(map[string][]Item),
	}
	for _, k := range order {
		item := merged[k]
		list.Categories[item.Category] = append(list.Categories[item.Category], *item)
		list.TotalItems++
	}
	for _, items := range list.Categories {
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	}
	return list
}

func collectRecipeIDs(plan *mealplan.MealPlan) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for i := range plan.Slots {
		slot := &plan.Slots[i]
		if slot.RecipeID == nil || slot.IsLeftover || seen[*slot.RecipeID] {
			continue
		}
		seen[*slot.RecipeID] = true
		ids = append(ids, *slot.RecipeID)
	}
	return ids
}

func inPantry(name string, pantry []string) bool {
	name = strings.ToLower(name)
	for _, have := range pantry {
		if have == "" {
			continue
		}
		if strings.Contains(name, have) || strings.Contains(have, name) {
			return true
		}
	}
	return false
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
