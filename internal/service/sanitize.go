package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pageza/recipe-vault/backend/internal/model"
)

// textPolicy removes every element. Recipe fields are plain text.
var textPolicy = bluemonday.StrictPolicy()

// plainText strips markup from user-entered text. Text without '<' is
// returned as is so entities and ampersands survive untouched.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func plainTexts(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = plainText(s)
	}
	return out
}

// sanitizeRecipe returns r with markup stripped from its text fields.
// URLs are left alone. Input slices are not modified.
func sanitizeRecipe(r model.Recipe) model.Recipe {
	r.Title = plainText(r.Title)
	r.Source = plainText(r.Source)
	r.Notes = plainText(r.Notes)
	r.Instructions = plainTexts(r.Instructions)
	r.Tags = plainTexts(r.Tags)
	if r.Ingredients != nil {
		ings := make([]model.Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			ing.Name = plainText(ing.Name)
			ing.Unit = plainText(ing.Unit)
			ings[i] = ing
		}
		r.Ingredients = ings
	}
	return r
}
