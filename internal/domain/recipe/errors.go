package recipe

import "errors"

var (
	ErrNameRequired    = errors.New("recipe name is required")
	ErrNameTooLong     = errors.New("recipe name must be 200 characters or less")
	ErrNoIngredients   = errors.New("recipe must have at least one ingredient")
	ErrNoSteps         = errors.New("recipe must have at least one step")
	ErrNegativeMacro   = errors.New("nutrition values must be non-negative")
	ErrInvalidPrepTime = errors.New("preparation time must be at least 1 minute")
	ErrInvalidMealType = errors.New("meal type must be breakfast, lunch, dinner or snack")
)
