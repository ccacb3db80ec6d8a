package mealplan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/application/generation"
	"github.com/nutriplan/v1/internal/application/nutrition"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// fakePlanRepo is an in-memory MealPlanRepository.
type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[uuid.UUID]*mealplan.MealPlan

	// failNextFind simulates losing a concurrent-create race: the next
	// FindByUserAndWeek reports not found even when the plan exists.
	failNextFind bool
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[uuid.UUID]*mealplan.MealPlan)}
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.plans {
		if existing.UserID == plan.UserID && existing.WeekStartDate.Equal(plan.WeekStartDate) {
			return outbound.ErrDuplicateWeek
		}
	}
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) FindByUserAndWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*mealplan.MealPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNextFind {
		f.failNextFind = false
		return nil, outbound.ErrNotFound
	}
	for _, plan := range f.plans {
		if plan.UserID == userID && plan.WeekStartDate.Equal(weekStart) {
			return plan, nil
		}
	}
	return nil, outbound.ErrNotFound
}

func (f *fakePlanRepo) FindSlotByID(ctx context.Context, slotID uuid.UUID) (*mealplan.MealSlot, *mealplan.MealPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, plan := range f.plans {
		for i := range plan.Slots {
			if plan.Slots[i].ID == slotID {
				return &plan.Slots[i], plan, nil
			}
		}
	}
	return nil, nil, outbound.ErrNotFound
}

func (f *fakePlanRepo) UpdateSlot(ctx context.Context, slot *mealplan.MealSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, plan := range f.plans {
		for i := range plan.Slots {
			if plan.Slots[i].ID == slot.ID {
				plan.Slots[i] = *slot
				return nil
			}
		}
	}
	return outbound.ErrNotFound
}

func (f *fakePlanRepo) Delete(ctx context.Context, planID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.plans, planID)
	return nil
}

// fakeRecipeRepo is an in-memory RecipeRepository.
type fakeRecipeRepo struct {
	mu      sync.Mutex
	recipes map[uuid.UUID]*recipe.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uuid.UUID]*recipe.Recipe)}
}

func (f *fakeRecipeRepo) Create(ctx context.Context, r *recipe.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRecipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.recipes[id]; ok {
		return r, nil
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeRecipeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeRepo) FindByUserAndCalorieRange(ctx context.Context, userID uuid.UUID, mealType recipe.MealType, minCalories, maxCalories, limit int) ([]*recipe.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeRepo) Update(ctx context.Context, r *recipe.Recipe) error { return nil }
func (f *fakeRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.recipes, id)
	return nil
}

// fakeProfileRepo is an in-memory ProfileRepository.
type fakeProfileRepo struct {
	profiles map[uuid.UUID]*user.Profile
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeProfileRepo) Save(ctx context.Context, profile *user.Profile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

// flakyClient fails specific call numbers and answers the rest with a valid
// recipe payload.
type flakyClient struct {
	mu        sync.Mutex
	calls     int
	failCalls map[int]bool
}

func (c *flakyClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failCalls[c.calls] {
		return "", errors.New("model endpoint unavailable")
	}
	return fmt.Sprintf(`{
		"name": "Generated meal %d",
		"ingredients": "1 cup rice, 150g chicken breast",
		"steps": "1. Cook rice. 2. Cook chicken.",
		"calories": 500, "protein": 35, "carbs": 50, "fats": 12,
		"prep_time_minutes": 25, "meal_type": "lunch"
	}`, c.calls), nil
}

type managerFixture struct {
	manager  *Manager
	plans    *fakePlanRepo
	recipes  *fakeRecipeRepo
	profiles *fakeProfileRepo
	client   *flakyClient
	userID   uuid.UUID
}

func newFixture(t *testing.T) *managerFixture {
	t.Helper()
	plans := newFakePlanRepo()
	recipes := newFakeRecipeRepo()
	userID := uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*user.Profile{
		userID: {
			ID: uuid.New(), UserID: userID,
			Goal:               user.GoalMaintainWeight,
			DailyCalorieTarget: 2100,
			DailyProteinTarget: 150,
			DailyCarbsTarget:   240,
			DailyFatsTarget:    70,
			MealsPerDay:        3,
			MealDistribution:   user.MealDistribution{1: 25, 2: 40, 3: 35},
		},
	}}
	client := &flakyClient{failCalls: map[int]bool{}}
	logger := zap.NewNop()
	pipeline := generation.NewPipeline(client, nil, logger)
	aggregator := nutrition.NewAggregator(recipes, nil, logger)

	return &managerFixture{
		manager:  NewManager(plans, recipes, profiles, pipeline, aggregator, logger),
		plans:    plans,
		recipes:  recipes,
		profiles: profiles,
		client:   client,
		userID:   userID,
	}
}

var anyWednesday = time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

func TestResolveWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("creates plan with empty slots on first access", func(t *testing.T) {
		fx := newFixture(t)

		plan, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), plan.WeekStartDate)
		assert.Len(t, plan.Slots, mealplan.SlotsPerWeek)
	})

	t.Run("returns the same plan on repeat access", func(t *testing.T) {
		fx := newFixture(t)

		first, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)
		second, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday.AddDate(0, 0, 2))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("lost creation race re-fetches the winner", func(t *testing.T) {
		fx := newFixture(t)
		winner, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)

		fx.plans.failNextFind = true
		plan, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)

		assert.Equal(t, winner.ID, plan.ID)
		assert.Len(t, fx.plans.plans, 1)
	})
}

func TestNavigate(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	next, err := fx.manager.Navigate(ctx, fx.userID, anyWednesday, true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), next.WeekStartDate)

	prev, err := fx.manager.Navigate(ctx, fx.userID, anyWednesday, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC), prev.WeekStartDate)
}

func TestAssignRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an owned recipe", func(t *testing.T) {
		fx := newFixture(t)
		plan, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)
		r := &recipe.Recipe{ID: uuid.New(), UserID: fx.userID, Name: "Soup"}
		require.NoError(t, fx.recipes.Create(ctx, r))
		slotID := plan.SlotFor(0, mealplan.SlotLunch).ID

		slot, err := fx.manager.AssignRecipe(ctx, fx.userID, slotID, r.ID)
		require.NoError(t, err)

		require.NotNil(t, slot.RecipeID)
		assert.Equal(t, r.ID, *slot.RecipeID)

		// The change is persisted, not just applied to the returned copy.
		stored, _, err := fx.plans.FindSlotByID(ctx, slotID)
		require.NoError(t, err)
		assert.Equal(t, r.ID, *stored.RecipeID)
	})

	t.Run("rejects another user's recipe", func(t *testing.T) {
		fx := newFixture(t)
		plan, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)
		foreign := &recipe.Recipe{ID: uuid.New(), UserID: uuid.New(), Name: "Not yours"}
		require.NoError(t, fx.recipes.Create(ctx, foreign))

		_, err = fx.manager.AssignRecipe(ctx, fx.userID, plan.Slots[0].ID, foreign.ID)
		assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
	})

	t.Run("rejects a slot in another user's plan", func(t *testing.T) {
		fx := newFixture(t)
		otherUser := uuid.New()
		otherPlan, err := fx.manager.ResolveWeek(ctx, otherUser, anyWednesday)
		require.NoError(t, err)
		r := &recipe.Recipe{ID: uuid.New(), UserID: fx.userID}
		require.NoError(t, fx.recipes.Create(ctx, r))

		_, err = fx.manager.AssignRecipe(ctx, fx.userID, otherPlan.Slots[0].ID, r.ID)
		assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
	})

	t.Run("unknown slot", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.manager.AssignRecipe(ctx, fx.userID, uuid.New(), uuid.New())
		assert.True(t, apperrors.Is(err, apperrors.CodeSlotNotFound))
	})

	t.Run("unknown recipe", func(t *testing.T) {
		fx := newFixture(t)
		plan, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)

		_, err = fx.manager.AssignRecipe(ctx, fx.userID, plan.Slots[0].ID, uuid.New())
		assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func TestMarkLeftoverAndClear(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	plan, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
	require.NoError(t, err)
	r := &recipe.Recipe{ID: uuid.New(), UserID: fx.userID, Name: "Chili"}
	require.NoError(t, fx.recipes.Create(ctx, r))

	original := plan.SlotFor(0, mealplan.SlotDinner)
	_, err = fx.manager.AssignRecipe(ctx, fx.userID, original.ID, r.ID)
	require.NoError(t, err)

	leftoverSlotID := plan.SlotFor(1, mealplan.SlotLunch).ID
	leftover, err := fx.manager.MarkLeftover(ctx, fx.userID, leftoverSlotID, original.ID)
	require.NoError(t, err)

	assert.True(t, leftover.IsLeftover)
	require.NotNil(t, leftover.RecipeID)
	assert.Equal(t, r.ID, *leftover.RecipeID)
	require.NotNil(t, leftover.OriginalSlotID)
	assert.Equal(t, original.ID, *leftover.OriginalSlotID)

	t.Run("leftover of an empty slot fails validation", func(t *testing.T) {
		empty := plan.SlotFor(2, mealplan.SlotBreakfast)
		_, err := fx.manager.MarkLeftover(ctx, fx.userID, plan.SlotFor(3, mealplan.SlotLunch).ID, empty.ID)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	t.Run("clear resets the persisted slot", func(t *testing.T) {
		cleared, err := fx.manager.ClearSlot(ctx, fx.userID, leftoverSlotID)
		require.NoError(t, err)
		assert.True(t, cleared.IsEmpty())

		stored, _, err := fx.plans.FindSlotByID(ctx, leftoverSlotID)
		require.NoError(t, err)
		assert.Nil(t, stored.RecipeID)
		assert.False(t, stored.IsLeftover)
		assert.Nil(t, stored.OriginalSlotID)
		assert.Empty(t, stored.Notes)
	})
}

func TestUpdateSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("recipe and leftover are mutually exclusive", func(t *testing.T) {
		fx := newFixture(t)
		recipeID, originalID := uuid.New(), uuid.New()

		_, err := fx.manager.UpdateSlot(ctx, fx.userID, uuid.New(), SlotUpdate{
			RecipeID:       &recipeID,
			OriginalSlotID: &originalID,
		})
		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	t.Run("notes-only update leaves the recipe untouched", func(t *testing.T) {
		fx := newFixture(t)
		plan, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)
		r := &recipe.Recipe{ID: uuid.New(), UserID: fx.userID}
		require.NoError(t, fx.recipes.Create(ctx, r))
		slotID := plan.Slots[0].ID
		_, err = fx.manager.AssignRecipe(ctx, fx.userID, slotID, r.ID)
		require.NoError(t, err)

		notes := "make extra"
		slot, err := fx.manager.UpdateSlot(ctx, fx.userID, slotID, SlotUpdate{Notes: &notes})
		require.NoError(t, err)

		assert.Equal(t, notes, slot.Notes)
		require.NotNil(t, slot.RecipeID)
		assert.Equal(t, r.ID, *slot.RecipeID)
	})
}

func TestAutoFillWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("fills every empty slot", func(t *testing.T) {
		fx := newFixture(t)

		result, err := fx.manager.AutoFillWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)

		assert.Len(t, result.Filled, mealplan.SlotsPerWeek)
		assert.Empty(t, result.Failed)

		// Every generated recipe was persisted and assigned.
		assert.Len(t, fx.recipes.recipes, mealplan.SlotsPerWeek)
		plan, err := fx.plans.FindByUserAndWeek(ctx, fx.userID, mealplan.MondayOf(anyWednesday))
		require.NoError(t, err)
		for _, slot := range plan.Slots {
			assert.False(t, slot.IsEmpty(), "%s %s left empty", slot.DayName(), slot.MealType)
		}
	})

	t.Run("a failed slot is recorded and the pass continues", func(t *testing.T) {
		fx := newFixture(t)
		fx.client.failCalls = map[int]bool{3: true}

		result, err := fx.manager.AutoFillWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)

		assert.Len(t, result.Failed, 1)
		assert.Len(t, result.Filled, mealplan.SlotsPerWeek-1)
		assert.NotEmpty(t, result.Failed[0].Error)
	})

	t.Run("filled slots are skipped", func(t *testing.T) {
		fx := newFixture(t)
		plan, err := fx.manager.ResolveWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)
		r := &recipe.Recipe{ID: uuid.New(), UserID: fx.userID}
		require.NoError(t, fx.recipes.Create(ctx, r))
		_, err = fx.manager.AssignRecipe(ctx, fx.userID, plan.Slots[0].ID, r.ID)
		require.NoError(t, err)

		result, err := fx.manager.AutoFillWeek(ctx, fx.userID, anyWednesday)
		require.NoError(t, err)

		assert.Len(t, result.Filled, mealplan.SlotsPerWeek-1)
	})

	t.Run("missing profile", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.manager.AutoFillWeek(ctx, uuid.New(), anyWednesday)
		assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	})

	t.Run("cancelled context stops the pass", func(t *testing.T) {
		fx := newFixture(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := fx.manager.AutoFillWeek(cancelled, fx.userID, anyWednesday)
		assert.Error(t, err)
	})
}
