package mealplan

import "errors"

var (
	ErrWeekStartNotMonday    = errors.New("week start date must be a Monday")
	ErrOriginalSlotEmpty     = errors.New("original slot has no recipe to reuse")
	ErrLeftoverSelfReference = errors.New("a slot cannot be a leftover of itself")
)
