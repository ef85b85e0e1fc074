package service

import "errors"

// Messages match what the UI shows the user verbatim.
var (
	ErrShoppingListNotFound = errors.New("Shopping list not found")
	ErrItemNotFound         = errors.New("Item not found")
	ErrRecipeNotFound       = errors.New("Recipe not found")
	ErrInvalidServings      = errors.New("servings must be positive")
)
