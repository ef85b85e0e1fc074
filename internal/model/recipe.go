package model

import (
	"fmt"
	"strings"
	"time"
)

// Recipe is a stored recipe in the user's collection.
type Recipe struct {
	ID           int          `json:"Id"`
	Title        string       `json:"title"`
	Source       string       `json:"source,omitempty"`
	SourceURL    string       `json:"sourceUrl,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	PrepTime     int          `json:"prepTime"`
	CookTime     int          `json:"cookTime"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Tags         []string     `json:"tags"`
	Notes        string       `json:"notes,omitempty"`
	DateAdded    time.Time    `json:"dateAdded"`
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// HasTag reports whether the recipe carries tag exactly.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ValidationError describes a field that failed input validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the fields a recipe must carry before it is stored.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ValidationError{Field: "title", Message: "is required"}
	}
	if r.Servings < 1 {
		return ValidationError{Field: "servings", Message: "must be at least 1"}
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return ValidationError{Field: "time", Message: "must not be negative"}
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return ValidationError{Field: fmt.Sprintf("ingredients[%d].name", i), Message: "is required"}
		}
		if ing.Amount < 0 {
			return ValidationError{Field: fmt.Sprintf("ingredients[%d].amount", i), Message: "must not be negative"}
		}
		if ing.Category != "" && !ing.Category.IsValid() {
			return ValidationError{Field: fmt.Sprintf("ingredients[%d].category", i), Message: "is not a known category"}
		}
	}
	return nil
}
