package model

import "time"

// ShoppingListItem is a consolidated ingredient with its checked state.
type ShoppingListItem struct {
	Ingredient
	Checked bool `json:"checked"`
}

// ShoppingList is a named, dated list of items to buy.
type ShoppingList struct {
	ID          int                `json:"Id"`
	Name        string             `json:"name"`
	CreatedDate time.Time          `json:"createdDate"`
	Items       []ShoppingListItem `json:"items"`
}

// CheckedCount returns how many items are checked off.
func (l ShoppingList) CheckedCount() int {
	n := 0
	for _, item := range l.Items {
		if item.Checked {
			n++
		}
	}
	return n
}

// IndexedItem is an item together with its position in the list.
type IndexedItem struct {
	Index int              `json:"index"`
	Item  ShoppingListItem `json:"item"`
}

// CategoryGroup holds the items of one category.
type CategoryGroup struct {
	Category Category      `json:"category"`
	Items    []IndexedItem `json:"items"`
}

// GroupItemsByCategory buckets items by category, keeping each item's
// original index so toggles can address it. Items without a category go
// to CategoryOther. Groups appear in first-seen order.
func GroupItemsByCategory(items []ShoppingListItem) []CategoryGroup {
	var groups []CategoryGroup
	pos := make(map[Category]int)
	for i, item := range items {
		cat := item.Category
		if cat == "" {
			cat = CategoryOther
		}
		idx, ok := pos[cat]
		if !ok {
			idx = len(groups)
			pos[cat] = idx
			groups = append(groups, CategoryGroup{Category: cat})
		}
		groups[idx].Items = append(groups[idx].Items, IndexedItem{Index: i, Item: item})
	}
	return groups
}

// Stats summarises progress across all shopping lists.
type Stats struct {
	ActiveLists       int `json:"activeLists"`
	TotalItems        int `json:"totalItems"`
	CheckedItems      int `json:"checkedItems"`
	CompletionPercent int `json:"completionPercent"`
}
