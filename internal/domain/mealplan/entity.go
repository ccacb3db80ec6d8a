// Package mealplan contains the weekly meal plan aggregate: a Monday-aligned
// week owning exactly 21 slots (7 days x breakfast/lunch/dinner).
package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// SlotMealType is the meal type of a grid slot. The weekly grid has no
// snack row; snacks exist only on standalone recipes and food logs.
type SlotMealType string

const (
	SlotBreakfast SlotMealType = "breakfast"
	SlotLunch     SlotMealType = "lunch"
	SlotDinner    SlotMealType = "dinner"
)

// SlotMealTypes lists the grid meal types in display order.
var SlotMealTypes = []SlotMealType{SlotBreakfast, SlotLunch, SlotDinner}

const (
	DaysPerWeek  = 7
	SlotsPerWeek = DaysPerWeek * 3
)

var dayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// MondayOf returns the Monday of the week containing t, truncated to a date.
func MondayOf(t time.Time) time.Time {
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday is Sunday-based; the grid is Monday-based.
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// MealPlan is one user's plan for one week. Unique per (user, week start).
type MealPlan struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	WeekStartDate time.Time
	Slots         []MealSlot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewMealPlan creates a plan with all 21 empty slots. weekStart must be the
// Monday of its week.
func NewMealPlan(userID uuid.UUID, weekStart time.Time) (*MealPlan, error) {
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	if !weekStart.Equal(MondayOf(weekStart)) {
		return nil, ErrWeekStartNotMonday
	}

	now := time.Now()
	plan := &MealPlan{
		ID:            uuid.New(),
		UserID:        userID,
		WeekStartDate: weekStart,
		Slots:         make([]MealSlot, 0, SlotsPerWeek),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for day := 0; day < DaysPerWeek; day++ {
		for _, mealType := range SlotMealTypes {
			plan.Slots = append(plan.Slots, MealSlot{
				ID:        uuid.New(),
				PlanID:    plan.ID,
				DayOfWeek: day,
				MealType:  mealType,
			})
		}
	}

	return plan, nil
}

// WeekEndDate is always the Sunday six days after the start.
func (p *MealPlan) WeekEndDate() time.Time {
	return p.WeekStartDate.AddDate(0, 0, DaysPerWeek-1)
}

// SlotFor returns the slot at (day, mealType), or nil when out of range.
func (p *MealPlan) SlotFor(day int, mealType SlotMealType) *MealSlot {
	for i := range p.Slots {
		if p.Slots[i].DayOfWeek == day && p.Slots[i].MealType == mealType {
			return &p.Slots[i]
		}
	}
	return nil
}

// MealSlot is one (day, meal type) cell of the weekly grid. A slot
// references a recipe, it never owns one. OriginalSlotID is a weak
// back-reference for leftover lookups, never an ownership edge.
type MealSlot struct {
	ID             uuid.UUID
	PlanID         uuid.UUID
	DayOfWeek      int
	MealType       SlotMealType
	RecipeID       *uuid.UUID
	IsLeftover     bool
	OriginalSlotID *uuid.UUID
	Notes          string
}

// Date derives the slot's calendar date from the plan's week start.
func (s *MealSlot) Date(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, s.DayOfWeek)
}

// DayName returns the English weekday name for the slot.
func (s *MealSlot) DayName() string {
	if s.DayOfWeek < 0 || s.DayOfWeek >= DaysPerWeek {
		return ""
	}
	return dayNames[s.DayOfWeek]
}

// IsEmpty reports whether the slot has no recipe assigned.
func (s *MealSlot) IsEmpty() bool {
	return s.RecipeID == nil
}

// Assign sets the slot's recipe reference. Leftover state is untouched
// unless the slot was a leftover, in which case the link is dropped.
func (s *MealSlot) Assign(recipeID uuid.UUID) {
	id := recipeID
	s.RecipeID = &id
	s.IsLeftover = false
	s.OriginalSlotID = nil
}

// MarkLeftover links the slot to another slot's recipe. The recipe
// reference is copied, not duplicated as a new recipe.
func (s *MealSlot) MarkLeftover(original *MealSlot) error {
	if original == nil || original.RecipeID == nil {
		return ErrOriginalSlotEmpty
	}
	if original.ID == s.ID {
		return ErrLeftoverSelfReference
	}
	recipeID := *original.RecipeID
	originalID := original.ID
	s.RecipeID = &recipeID
	s.IsLeftover = true
	s.OriginalSlotID = &originalID
	return nil
}

// Clear resets all four mutable fields together.
func (s *MealSlot) Clear() {
	s.RecipeID = nil
	s.IsLeftover = false
	s.OriginalSlotID = nil
	s.Notes = ""
}
