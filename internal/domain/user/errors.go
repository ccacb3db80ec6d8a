package user

import "errors"

var (
	ErrInvalidMealsPerDay = errors.New("meals per day must be between 1 and 6")
	ErrInvalidMealIndex   = errors.New("meal distribution keys must be within 1..meals_per_day")
	ErrNegativePercentage = errors.New("meal distribution percentages must be non-negative")
)
