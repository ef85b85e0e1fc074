package model

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string   `json:"name"`
	Amount   float64  `json:"amount"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
}
