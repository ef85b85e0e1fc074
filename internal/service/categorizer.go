package service

import (
	"strings"

	"github.com/pageza/recipe-vault/backend/internal/model"
)

type categoryKeywords struct {
	category model.Category
	keywords []string
}

// Order matters: the first category with a matching keyword wins.
var categoryRules = []categoryKeywords{
	{model.CategoryProduce, []string{
		"tomato", "onion", "garlic", "lettuce", "carrot", "potato", "apple", "banana",
		"lemon", "lime", "bell pepper", "zucchini", "eggplant", "spinach", "cucumber",
		"celery", "mushroom", "avocado", "ginger", "broccoli", "asparagus", "berries",
		"orange", "cabbage", "kale", "squash", "shallot", "scallion", "leek",
	}},
	{model.CategoryMeat, []string{
		"chicken", "beef", "pork", "turkey", "lamb", "bacon", "sausage", "ham",
		"salmon", "fish", "shrimp", "tuna", "steak", "prosciutto",
	}},
	{model.CategoryDairy, []string{
		"milk", "cheese", "butter", "cream", "yogurt", "egg", "feta", "parmesan", "mozzarella",
	}},
	{model.CategoryPantry, []string{
		"flour", "sugar", "salt", "pepper", "oil", "vinegar", "rice", "pasta", "quinoa",
		"honey", "sauce", "spice", "cinnamon", "paprika", "cornstarch", "baking", "bread",
		"oat", "almond", "walnut", "tahini", "stock", "broth", "water",
	}},
	{model.CategoryHerbs, []string{
		"basil", "parsley", "cilantro", "oregano", "thyme", "rosemary", "dill", "mint",
		"sage", "chive", "bay leaf",
	}},
	{model.CategoryCanned, []string{
		"canned", "beans", "chickpea", "olives", "tomato paste",
	}},
	{model.CategoryFrozen, []string{
		"frozen", "pie crust", "puff pastry", "ice cream",
	}},
}

// Categorize assigns a category to an ingredient by keyword matching on
// its lower-cased name. Names matching nothing fall back to pantry.
func Categorize(name string) model.Category {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryPantry
}

// CategorizeMissing fills in the category of every ingredient that has none.
// The input slice is not modified.
func CategorizeMissing(ingredients []model.Ingredient) []model.Ingredient {
	out := make([]model.Ingredient, len(ingredients))
	for i, ing := range ingredients {
		if ing.Category == "" {
			ing.Category = Categorize(ing.Name)
		}
		out[i] = ing
	}
	return out
}
