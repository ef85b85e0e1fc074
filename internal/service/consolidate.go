package service

import (
	"strings"

	"github.com/pageza/recipe-vault/backend/internal/model"
)

// ConsolidateIngredients merges the ingredients of recipes into shopping
// list items. Names are matched case-insensitively. The first unit seen for
// a name owns the bare key; other units are kept as separate entries keyed
// by name and unit. Same-unit amounts are summed, including repeats of a
// secondary unit: Butter 1 cup, 2 tbsp and 3 tbsp yields 1 cup and 5 tbsp.
// Items come back unchecked in first-insertion order.
func ConsolidateIngredients(recipes []model.Recipe) []model.ShoppingListItem {
	entries := make(map[string]*model.ShoppingListItem)
	var order []string

	put := func(key string, ing model.Ingredient) {
		entries[key] = &model.ShoppingListItem{Ingredient: ing}
		order = append(order, key)
	}

	for _, recipe := range recipes {
		for _, ing := range recipe.Ingredients {
			key := strings.ToLower(ing.Name)
			existing, ok := entries[key]
			switch {
			case !ok:
				put(key, ing)
			case existing.Unit == ing.Unit:
				existing.Amount += ing.Amount
			default:
				unitKey := key + "_" + ing.Unit
				if other, ok := entries[unitKey]; ok && other.Unit == ing.Unit {
					other.Amount += ing.Amount
				} else if !ok {
					put(unitKey, ing)
				} else {
					// unitKey is taken by an ingredient literally named like it
					other.Amount = ing.Amount
					other.Name = ing.Name
					other.Unit = ing.Unit
					other.Category = ing.Category
				}
			}
		}
	}

	items := make([]model.ShoppingListItem, 0, len(order))
	for _, key := range order {
		items = append(items, *entries[key])
	}
	return items
}
