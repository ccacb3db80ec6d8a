package nutrition

import "errors"

var (
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero grams")
	ErrInvalidServingSize = errors.New("food serving size must be greater than zero")
)
